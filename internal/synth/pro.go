package synth

import (
	"github.com/tigerprompts/pkg/models"
)

// Section names touched by the pro expansion.
const (
	headingConstraints  = "Constraints"
	headingProcess      = "Process"
	headingQuality      = "Quality"
	headingVerification = "Verification Steps"
	headingPitfalls     = "Common Pitfalls to Avoid"
)

var proProcess = []string{
	"Restate the task in your own words and confirm the goal",
	"List the inputs, constraints, and open questions",
	"Break the work into small, verifiable steps",
	"Execute each step and check it against the constraints",
	"Cross-check the result against the original request",
	"Refine for clarity, completeness, and correctness",
	"Run the verification steps below",
	"Deliver the final output in the requested format",
}

var proConstraints = []string{
	"Do not omit any part of the requested output",
	"Flag uncertainty explicitly instead of guessing",
	"Keep terminology consistent throughout",
}

var proQuality = []string{
	"Every requirement in the Task section is addressed",
	"No placeholders, ellipses, or unfinished parts",
	"Output matches the Output Format section exactly",
	"Facts, numbers, and names are double-checked",
}

var (
	verifyGeneral = []string{
		"Re-read the task and tick off each requirement",
		"Check the output against every constraint",
		"Confirm the format matches what was requested",
	}
	verifyCode = []string{
		"Trace the code with a normal input, an edge case, and an invalid input",
		"Confirm every identifier used is defined or imported",
		"Confirm no section of the code was truncated",
		"Confirm existing filenames and signatures are unchanged",
	}
)

var (
	pitfallsGeneral = []string{
		"Answering a different question than the one asked",
		"Vague statements without concrete detail",
		"Ignoring stated constraints or format",
	}
	pitfallsCode = []string{
		"Truncating code with \"...\" or \"rest of code here\"",
		"Using hooks or helpers without importing them",
		"Swallowing errors silently",
		"Renaming files or functions the caller depends on",
	}
)

// ProExpand deepens a deep-tier document. It replaces the process with a
// longer checklist, extends the constraints and quality bar, and inserts
// verification and pitfall sections after the quality bar. Sections that
// are missing are left alone; the new sections are appended when there is
// no quality bar. Expanding an already expanded document changes nothing.
func ProExpand(doc Document, taskType models.TaskType, coding bool) Document {
	out := doc.Clone()
	if out.Has(headingVerification) {
		return out
	}
	coding = coding || taskType == models.TaskCode

	if i := out.Index(headingConstraints); i >= 0 {
		s := &out.Sections[i]
		s.Lines = append(s.Lines, "**Additional constraints:**")
		s.Lines = append(s.Lines, bullets(proConstraints)...)
	}

	if i := out.Index(headingProcess); i >= 0 {
		out.Sections[i].Lines = numbered(proProcess)
	}

	verify := verifyGeneral
	pitfalls := pitfallsGeneral
	if coding {
		verify = append(append([]string(nil), verifyGeneral...), verifyCode...)
		pitfalls = append(append([]string(nil), pitfallsCode...), pitfallsGeneral...)
	}

	q := out.Index(headingQuality)
	if q >= 0 {
		out.Sections[q].Lines = append(out.Sections[q].Lines, bullets(proQuality)...)
	}
	out.InsertAfter(q,
		Section{Heading: headingVerification, Lines: numbered(verify)},
		Section{Heading: headingPitfalls, Lines: bullets(pitfalls)},
	)
	return out
}

// ProExpandText applies ProExpand to already serialized text. Text without
// any "## " sections is returned unchanged.
func ProExpandText(text string, taskType models.TaskType, coding bool) string {
	doc := ParseDocument(text)
	if len(doc.Sections) == 0 {
		return text
	}
	return ProExpand(doc, taskType, coding).String()
}
