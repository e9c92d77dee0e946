package synth

import (
	"strconv"
	"strings"

	"github.com/tigerprompts/pkg/models"
)

const codingRole = "You are a senior software engineer with 15+ years of experience in production systems."

// codingBaseConstraints applies to every coding prompt; the first two lead
// the light-tier key requirements.
var codingBaseConstraints = []string{
	"Complete code (no truncation/placeholders)",
	"Radical transparency (state what you changed and what you could not do)",
	"Explicit change communication",
	"Match existing code style",
	"Include all imports and dependencies",
}

var (
	criticalRules = []string{
		"Complete code only: no truncation, ellipses, or \"rest of code here\" placeholders",
		"Include all imports and dependencies",
		"Radical transparency: say what you changed and what you could not do",
	}
	changeRules = []string{
		"Never change the existing filenames or public signatures",
		"Match the existing code style, patterns, and conventions exactly",
		"List every function you modified and why",
		"Preserve existing behavior unless told otherwise",
	}
	architectureRules = []string{
		"Design the feature as a self-contained module with clear interfaces",
		"Keep separation of concerns between data, logic, and presentation",
		"Avoid breaking changes to existing callers",
	}
	testingRules = []string{
		"Include comprehensive test cases",
		"Cover normal input, edge cases, and error paths",
		"Tests must run without modification",
	}
)

// languageRules holds best-practice bullets keyed by lower-cased language name.
var languageRules = map[string][]string{
	"javascript": {
		"Use const/let, never var",
		"Handle promise rejections with try/catch or .catch()",
		"Use strict equality (===)",
	},
	"typescript": {
		"Keep strict typing; avoid any",
		"Export explicit interfaces for public shapes",
		"Handle promise rejections with try/catch or .catch()",
	},
	"react": {
		"Import every hook you use from react",
		"Keep components pure; put side effects in useEffect",
		"Give list items stable keys",
	},
	"python": {
		"Follow PEP 8",
		"Use type hints on public functions",
		"Raise specific exceptions, never bare except",
	},
	"go": {
		"Return errors explicitly and wrap them with context",
		"Run gofmt on all code",
		"Pass context.Context to blocking calls",
	},
	"java": {
		"Follow standard Java naming conventions",
		"Use try-with-resources for closeable resources",
		"Prefer immutable value objects",
	},
	"rust": {
		"Propagate errors with Result and ?",
		"Avoid unwrap outside tests",
		"Keep clippy warnings at zero",
	},
	"html": {
		"Use semantic elements",
		"Include alt text and labels for accessibility",
	},
	"css": {
		"Avoid !important",
		"Use consistent class naming",
	},
	"sql": {
		"Use parameterized queries",
		"Name columns explicitly instead of SELECT *",
	},
}

// codingConstraints builds the tiered constraint lines for coding mode.
// Tiers are added only when the context calls for them.
func codingConstraints(code *models.CodeContext) []string {
	var lines []string
	tier := func(title string, rules []string) {
		lines = append(lines, "**"+title+":**")
		lines = append(lines, bullets(rules)...)
	}

	tier("Critical", criticalRules)
	if strings.TrimSpace(code.ExistingCode) != "" {
		tier("Change management", changeRules)
	}
	if code.IsNewFeature {
		tier("Architecture", architectureRules)
	}
	if code.NeedsTesting {
		tier("Testing", testingRules)
	}
	for _, lang := range code.Languages {
		lang = strings.TrimSpace(lang)
		if lang == "" {
			continue
		}
		rules, ok := languageRules[strings.ToLower(lang)]
		if !ok {
			rules = []string{"Follow idiomatic " + lang + " conventions"}
		}
		tier(lang+" best practices", rules)
	}
	return lines
}

func bullets(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = "- " + it
	}
	return out
}

func numbered(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = strconv.Itoa(i+1) + ". " + it
	}
	return out
}
