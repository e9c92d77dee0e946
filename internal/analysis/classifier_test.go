package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tigerprompts/pkg/models"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want models.TaskType
	}{
		{"empty defaults to generate", "", models.TaskGenerate},
		{"no keywords defaults to generate", "hello there", models.TaskGenerate},
		{"generate", "Write a blog post", models.TaskGenerate},
		{"code beats substring hit", "Refactor this function and add a unit test", models.TaskCode},
		{"transform", "translate this paragraph", models.TaskTransform},
		{"math", "solve for x", models.TaskMath},
		{"extract", "extract entities as json", models.TaskExtract},
		{"analyze", "analyze and compare both options", models.TaskAnalyze},
		{"tie keeps first task type", "plan the code", models.TaskPlan},
		{"substring containment", "study the artwork", models.TaskImage},
		{"substring tie resolves to generate", "read the article", models.TaskGenerate},
		{"case insensitive", "DEBUG THIS SCRIPT", models.TaskCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestClassifyWithCustomTable(t *testing.T) {
	table := []TaskKeywords{
		{models.TaskMath, []string{"sum"}},
		{models.TaskImage, []string{"sum"}},
	}
	assert.Equal(t, models.TaskMath, ClassifyWith(table, "sum these"))
	assert.Equal(t, models.TaskGenerate, ClassifyWith(nil, "sum these"))
}

func TestScores(t *testing.T) {
	scores := Scores("write a blog post")
	assert.Equal(t, 3, scores[models.TaskGenerate])
	assert.Zero(t, scores[models.TaskCode])
}

func TestClassifyTableCoversEveryTaskType(t *testing.T) {
	seen := map[models.TaskType]bool{}
	for _, entry := range DefaultTaskKeywords {
		assert.NotEmpty(t, entry.Keywords, entry.Type)
		seen[entry.Type] = true
	}
	for _, tt := range models.TaskTypes {
		assert.True(t, seen[tt], "missing keywords for %s", tt)
	}
}
