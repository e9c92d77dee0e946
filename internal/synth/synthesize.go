package synth

import (
	"math/rand/v2"
	"strings"

	"github.com/tigerprompts/pkg/models"
)

const (
	// DeepTitle is the top-level heading of every deep document.
	DeepTitle = "ENHANCED PROMPT (TPEM)"
	// CodingBanner opens deep documents synthesized in coding mode.
	CodingBanner = "**💻 VIBE CODING MODE ACTIVE**"
)

// Synthesizer builds enhanced prompts. The zero value is ready to use and
// fully deterministic. A Synthesizer carrying a random source varies the
// role phrasing and is not safe for concurrent use.
type Synthesizer struct {
	rng *rand.Rand
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithRand enables phrasing variation drawn from r. Pass a seeded source
// for reproducible output.
func WithRand(r *rand.Rand) Option {
	return func(s *Synthesizer) { s.rng = r }
}

// NewRand returns a seeded random source for WithRand.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// New returns a Synthesizer configured by opts.
func New(opts ...Option) *Synthesizer {
	s := &Synthesizer{}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Synthesize restructures prompt with the deterministic default phrasing.
func Synthesize(prompt string, taskType models.TaskType, scaffold models.Scaffold, depth models.Depth, code *models.CodeContext) string {
	var s Synthesizer
	return s.Synthesize(prompt, taskType, scaffold, depth, code)
}

// Synthesize restructures prompt at the given depth. A non-nil code
// context turns on coding mode.
func (s *Synthesizer) Synthesize(prompt string, taskType models.TaskType, scaffold models.Scaffold, depth models.Depth, code *models.CodeContext) string {
	if depth == models.DepthDeep {
		return s.Deep(prompt, taskType, scaffold, code).String()
	}
	return s.Light(prompt, taskType, scaffold, code)
}

// Light returns the role line followed by the prompt, plus the first two
// key requirements when the prompt is highly ambiguous.
func (s *Synthesizer) Light(prompt string, taskType models.TaskType, scaffold models.Scaffold, code *models.CodeContext) string {
	lines := []string{s.role(taskType, code), "", prompt}
	if scaffold.NeedsExamples {
		reqs := constraintsFor(taskType, code)
		if len(reqs) > 2 {
			reqs = reqs[:2]
		}
		lines = append(lines, "", "Key requirements:")
		lines = append(lines, bullets(reqs)...)
	}
	return strings.Join(lines, "\n")
}

// Deep builds the full sectioned document.
func (s *Synthesizer) Deep(prompt string, taskType models.TaskType, scaffold models.Scaffold, code *models.CodeContext) Document {
	coding := code != nil
	p := profileFor(taskType)

	doc := Document{Title: DeepTitle}
	if coding {
		doc.Preamble = []string{CodingBanner}
	}

	doc.Add("Role & Context", s.role(taskType, code))
	doc.Add("Task", prompt)

	if coding {
		if files := code.Files(); len(files) > 0 {
			lines := []string{"**Never change these filenames:**"}
			for _, f := range files {
				lines = append(lines, "- `"+f+"`")
			}
			doc.Add("File Definitions", lines...)
		}
		if strings.TrimSpace(code.ExistingCode) != "" {
			doc.Add("Existing Code Context",
				"```",
				strings.TrimRight(code.ExistingCode, "\r\n"),
				"```",
				"",
				"**CRITICAL:** Study the code above. Match its style, patterns, and conventions exactly.",
			)
		}
	}

	if coding {
		doc.Add("Constraints", codingConstraints(code)...)
	} else {
		doc.Add("Constraints", bullets(constraintsFor(taskType, nil))...)
	}

	doc.Add("Process", numbered(p.process)...)

	output := bullets(p.output)
	if scaffold.NeedsExamples {
		output = append(output, "- Include at least one concrete example")
	}
	doc.Add("Output Format", output...)

	quality := bullets(qualityBar)
	if scaffold.NeedsVerification {
		quality = append(quality, "- Verify every result (re-check calculations, code paths, or extracted values)")
	}
	if coding || taskType == models.TaskCode {
		quality = append(quality,
			"- Code runs without modification (no placeholders or missing imports)",
			"- Errors are handled explicitly",
		)
	}
	doc.Add("Quality Bar", quality...)

	if scaffold.NeedsAssumptions {
		doc.Add("Assumptions", append([]string{"Where the task leaves details open, assume:"}, bullets(assumptions)...)...)
	}

	return doc
}

// constraintsFor returns the constraint list, preferring the coding list
// in coding mode or for code tasks.
func constraintsFor(taskType models.TaskType, code *models.CodeContext) []string {
	if code != nil || taskType == models.TaskCode {
		return codingBaseConstraints
	}
	return profileFor(taskType).constraints
}

func (s *Synthesizer) role(taskType models.TaskType, code *models.CodeContext) string {
	if code != nil {
		taskType = models.TaskCode
	}
	return s.pick(profileFor(taskType).roles)
}

func (s *Synthesizer) pick(variants []string) string {
	if s.rng == nil || len(variants) == 1 {
		return variants[0]
	}
	return variants[s.rng.IntN(len(variants))]
}
