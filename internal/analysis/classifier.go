// Package analysis classifies raw prompts into task types and estimates how
// much context they are missing.
package analysis

import (
	"strings"

	"github.com/tigerprompts/pkg/models"
)

// TaskKeywords pairs a task type with the keywords that vote for it.
type TaskKeywords struct {
	Type     models.TaskType
	Keywords []string
}

// DefaultTaskKeywords is the classification table. Order matters: when two
// task types tie, the one listed first wins.
var DefaultTaskKeywords = []TaskKeywords{
	{models.TaskGenerate, []string{"write", "create", "generate", "draft", "compose", "blog", "email", "ad", "post"}},
	{models.TaskTransform, []string{"rewrite", "translate", "summarize", "condense", "expand", "paraphrase"}},
	{models.TaskAnalyze, []string{"analyze", "explain", "compare", "diagnose", "critique", "evaluate", "assess"}},
	{models.TaskPlan, []string{"plan", "strategy", "roadmap", "outline", "brief", "campaign"}},
	{models.TaskExtract, []string{"extract", "parse", "structure", "table", "json", "list", "entity"}},
	{models.TaskCode, []string{"code", "function", "script", "debug", "refactor", "test", "program", "algorithm"}},
	{models.TaskMath, []string{"calculate", "solve", "compute", "derive", "proof", "formula"}},
	{models.TaskImage, []string{"image", "picture", "photo", "visual", "illustration", "art"}},
}

// Classify returns the task type whose keywords occur most often in text.
// Keywords match as plain substrings of the lower-cased text, so "ad"
// matches "read". With no hits at all the result is generate.
func Classify(text string) models.TaskType {
	return ClassifyWith(DefaultTaskKeywords, text)
}

// ClassifyWith classifies text against a custom keyword table.
func ClassifyWith(table []TaskKeywords, text string) models.TaskType {
	lower := strings.ToLower(text)
	best := models.TaskGenerate
	bestScore := 0

	for _, entry := range table {
		score := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = entry.Type
		}
	}

	return best
}

// Scores returns the keyword hit count of every task type, in table order.
// It is used for explanations; Classify is the decision function.
func Scores(text string) map[models.TaskType]int {
	lower := strings.ToLower(text)
	out := make(map[models.TaskType]int, len(DefaultTaskKeywords))
	for _, entry := range DefaultTaskKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				out[entry.Type]++
			}
		}
	}
	return out
}
