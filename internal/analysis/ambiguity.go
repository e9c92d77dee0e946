package analysis

import (
	"regexp"
	"strings"

	"github.com/tigerprompts/internal/textstat"
)

// AmbiguityRule is one additive penalty of the ambiguity score.
type AmbiguityRule struct {
	Name    string
	Penalty float64
	// Triggered receives the lower-cased text and the original text.
	Triggered func(lower, raw string) bool
}

var (
	audiencePattern   = regexp.MustCompile(`(for|to|audience|users|readers|customers|people|team)`)
	formatPattern     = regexp.MustCompile(`(format|structure|json|markdown|list|table|style|output)`)
	vagueVerbPattern  = regexp.MustCompile(`(improve|better|optimize|enhance|fix|good)`)
	digitPattern      = regexp.MustCompile(`\d`)
	constraintPattern = regexp.MustCompile(`(must|should|tone|style|length|words|characters|require|need)`)
	connectivePattern = regexp.MustCompile(`(about|regarding|for|on|with|using|that|which)`)
)

// minWords is the word count below which a prompt is considered too short.
const minWords = 5

// AmbiguityRules lists the penalties in evaluation order. Patterns match
// substrings, not whole words.
var AmbiguityRules = []AmbiguityRule{
	{
		Name:    "no_audience",
		Penalty: 0.10,
		Triggered: func(lower, _ string) bool {
			return !audiencePattern.MatchString(lower)
		},
	},
	{
		Name:    "no_format",
		Penalty: 0.10,
		Triggered: func(lower, _ string) bool {
			return !formatPattern.MatchString(lower)
		},
	},
	{
		Name:    "vague_goal",
		Penalty: 0.20,
		Triggered: func(lower, raw string) bool {
			return vagueVerbPattern.MatchString(lower) && !digitPattern.MatchString(raw)
		},
	},
	{
		Name:    "no_constraints",
		Penalty: 0.10,
		Triggered: func(lower, _ string) bool {
			return !constraintPattern.MatchString(lower)
		},
	},
	{
		Name:    "too_short",
		Penalty: 0.15,
		Triggered: func(_, raw string) bool {
			return textstat.WordCount(raw) < minWords
		},
	},
	{
		Name:    "no_context",
		Penalty: 0.15,
		Triggered: func(lower, _ string) bool {
			return !connectivePattern.MatchString(lower)
		},
	},
}

// ScoreAmbiguity returns a heuristic estimate in [0, 1] of how much context
// text is missing. Higher means more ambiguous.
func ScoreAmbiguity(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	for _, r := range AmbiguityRules {
		if r.Triggered(lower, text) {
			score += r.Penalty
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}

// TriggeredRules returns the names of the ambiguity rules text triggers.
func TriggeredRules(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, r := range AmbiguityRules {
		if r.Triggered(lower, text) {
			out = append(out, r.Name)
		}
	}
	return out
}
