// Package pqs computes the Prompt Quality Score: a weighted blend of six
// heuristic sub-metrics, each in [0, 1]. Every function here is a pure
// function of its input text.
package pqs

import (
	"regexp"
	"strings"

	"github.com/tigerprompts/internal/textstat"
)

// Weights of the sub-metrics. They sum to 1.
const (
	WeightClarity            = 0.25
	WeightStructure          = 0.20
	WeightConstraintDensity  = 0.15
	WeightModelCompatibility = 0.15
	WeightGoalAlignment      = 0.15
	WeightCognitiveLoad      = 0.10
)

var (
	objectivePattern   = regexp.MustCompile(`(?i)\b(objective|goal|task|need|want)\b`)
	placeholderPattern = regexp.MustCompile(`(?i)\b(something|thing|stuff|it|that)\b`)
	constraintPattern  = regexp.MustCompile(`(?i)\b(must|should|need|require|format|style|tone|length|audience)\b`)
	injectionPattern   = regexp.MustCompile(`(?i)<script|eval\(`)
	actionVerbPattern  = regexp.MustCompile(`(?i)\b(create|generate|write|analyze|build|explain)\b`)
)

// Breakdown holds the individual sub-metrics of a prompt.
type Breakdown struct {
	Clarity            float64 `json:"clarity"`
	Structure          float64 `json:"structure"`
	ConstraintDensity  float64 `json:"constraint_density"`
	ModelCompatibility float64 `json:"model_compatibility"`
	GoalAlignment      float64 `json:"goal_alignment"`
	CognitiveLoad      float64 `json:"cognitive_load"`
}

// Total returns the weighted sum of the sub-metrics clamped to [0, 1].
func (b Breakdown) Total() float64 {
	sum := b.Clarity*WeightClarity +
		b.Structure*WeightStructure +
		b.ConstraintDensity*WeightConstraintDensity +
		b.ModelCompatibility*WeightModelCompatibility +
		b.GoalAlignment*WeightGoalAlignment +
		b.CognitiveLoad*WeightCognitiveLoad
	return textstat.Clamp01(sum)
}

// Evaluate computes every sub-metric of text.
func Evaluate(text string) Breakdown {
	return Breakdown{
		Clarity:            Clarity(text),
		Structure:          Structure(text),
		ConstraintDensity:  ConstraintDensity(text),
		ModelCompatibility: ModelCompatibility(text),
		GoalAlignment:      GoalAlignment(text),
		CognitiveLoad:      CognitiveLoad(text),
	}
}

// Score returns the Prompt Quality Score of text in [0, 1].
func Score(text string) float64 {
	return Evaluate(text).Total()
}

// Clarity rewards length, an explicit objective and the absence of vague
// placeholder nouns.
func Clarity(text string) float64 {
	score := 0.3
	if textstat.Length(text) > 20 {
		score += 0.2
	}
	if objectivePattern.MatchString(text) {
		score += 0.2
	}
	if !placeholderPattern.MatchString(text) {
		score += 0.3
	}
	return textstat.Clamp01(score)
}

// Structure rewards line breaks, markdown headings or bullets, and fenced
// code or tables.
func Structure(text string) float64 {
	score := 0.2
	if strings.Contains(text, "\n") {
		score += 0.3
	}
	if strings.Contains(text, "##") || strings.Contains(text, "- ") {
		score += 0.3
	}
	if strings.Contains(text, "```") || strings.Contains(text, "|") {
		score += 0.2
	}
	return textstat.Clamp01(score)
}

// ConstraintDensity is 0.15 per constraint keyword occurrence, capped at 1.
func ConstraintDensity(text string) float64 {
	n := len(constraintPattern.FindAllStringIndex(text, -1))
	return textstat.Clamp01(float64(n) * 0.15)
}

// ModelCompatibility penalizes very long, non-ASCII or script-like input.
func ModelCompatibility(text string) float64 {
	score := 0.5
	if textstat.Length(text) < 2000 {
		score += 0.2
	}
	if textstat.IsASCII(text) {
		score += 0.15
	}
	if !injectionPattern.MatchString(text) {
		score += 0.15
	}
	return textstat.Clamp01(score)
}

// GoalAlignment rewards an action verb and a prompt longer than eight words.
func GoalAlignment(text string) float64 {
	score := 0.4
	if actionVerbPattern.MatchString(text) {
		score += 0.3
	}
	if textstat.WordCount(text) > 8 {
		score += 0.3
	}
	return textstat.Clamp01(score)
}

// CognitiveLoad maps average words per sentence onto a step function.
// Higher is better: shorter sentences are easier to follow.
func CognitiveLoad(text string) float64 {
	words := textstat.WordCount(text)
	sentences := textstat.SentenceCount(text)
	if sentences == 0 {
		sentences = 1
	}
	avg := float64(words) / float64(sentences)

	switch {
	case avg < 20:
		return 0.9
	case avg < 30:
		return 0.7
	case avg < 40:
		return 0.5
	default:
		return 0.3
	}
}
