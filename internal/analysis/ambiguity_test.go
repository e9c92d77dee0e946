package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreAmbiguity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"single vague verb", "fix", 0.8},
		{"digit suppresses vague penalty", "fix 3 bugs", 0.6},
		{"empty prompt", "", 0.6},
		{
			"fully specified",
			"Write a blog post for developers about testing; the output must use markdown format with a friendly tone",
			0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ScoreAmbiguity(tt.in), 1e-9)
		})
	}
}

func TestScoreAmbiguityUsesLowerCaseForKeywords(t *testing.T) {
	assert.InDelta(t, ScoreAmbiguity("make it better for USERS"), ScoreAmbiguity("make it better for users"), 1e-9)
}

func TestScoreAmbiguityIsClamped(t *testing.T) {
	corpus := []string{
		"", " ", "fix", "good", "IMPROVE", "a b c d e f g",
		"Improve the thing. Make it better, optimize and enhance.",
		"日本語のテキスト", "\n\n\n", "1234567890",
	}
	for _, in := range corpus {
		got := ScoreAmbiguity(in)
		assert.GreaterOrEqual(t, got, 0.0, in)
		assert.LessOrEqual(t, got, 1.0, in)
	}
}

func TestTriggeredRules(t *testing.T) {
	assert.Equal(t,
		[]string{"no_audience", "no_format", "vague_goal", "no_constraints", "too_short", "no_context"},
		TriggeredRules("fix"),
	)
	assert.NotContains(t, TriggeredRules("fix issue 42"), "vague_goal")
}

func TestAmbiguityRulePenaltiesSumBelowOne(t *testing.T) {
	total := 0.0
	for _, r := range AmbiguityRules {
		total += r.Penalty
	}
	assert.InDelta(t, 0.8, total, 1e-9)
}
