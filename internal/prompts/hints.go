package prompts

import (
	"slices"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// ModelHints describes the models offered by the hosted proxy.
var ModelHints = map[string]string{
	"gpt-4o-mini":   "⚡ Fast & efficient",
	"gpt-4o":        "💎 Best quality & reasoning",
	"claude-sonnet": "🔮 Creative & thorough",
	"copilot":       "⚡ Code-focused",
}

// Hint returns the hint for model and whether the model is a known one.
func Hint(model string) (string, bool) {
	h, ok := ModelHints[model]
	return h, ok
}

// KnownModels returns the hinted model names, sorted.
func KnownModels() []string {
	names := make([]string, 0, len(ModelHints))
	for m := range ModelHints {
		names = append(names, m)
	}
	slices.Sort(names)
	return names
}
