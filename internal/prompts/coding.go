package prompts

import (
	"strings"

	"github.com/tigerprompts/pkg/models"
)

// BuildCodingUserPrompt appends the coding session context to prompt for
// the remote model: protected file names, existing code, languages and the
// testing requirement. A nil context returns prompt unchanged.
func BuildCodingUserPrompt(prompt string, code *models.CodeContext) string {
	if code == nil {
		return prompt
	}
	sections := []string{prompt}

	if files := code.Files(); len(files) > 0 {
		sections = append(sections, "\n\n## File Definitions", "**CRITICAL: Never change these filenames:**")
		for _, f := range files {
			sections = append(sections, "- `"+f+"`")
		}
	}

	if strings.TrimSpace(code.ExistingCode) != "" {
		sections = append(sections,
			"\n\n## Existing Code Context",
			"```",
			strings.TrimRight(code.ExistingCode, "\r\n"),
			"```",
			"**CRITICAL:** Study the code above. Match its style, patterns, and conventions exactly.",
		)
	}

	if langs := nonEmpty(code.Languages); len(langs) > 0 {
		sections = append(sections, "\n\n## Languages: "+strings.Join(langs, ", "))
	}

	if code.NeedsTesting {
		sections = append(sections, "\n\n## Requirements: Include comprehensive test cases")
	}

	return strings.Join(sections, "\n")
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
