package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerprompts/pkg/models"
)

func TestProExpand(t *testing.T) {
	var s Synthesizer
	base := s.Deep("write a report", models.TaskAnalyze, models.Scaffold{}, nil)
	pro := ProExpand(base, models.TaskAnalyze, false)

	assert.Equal(t, []string{
		"Role & Context", "Task", "Constraints", "Process", "Output Format",
		"Quality Bar", "Verification Steps", "Common Pitfalls to Avoid",
	}, pro.Headings())

	process, _ := pro.Section("Process")
	assert.Len(t, process.Lines, len(proProcess))
	assert.Equal(t, "8. Deliver the final output in the requested format", process.Lines[7])

	cons, _ := pro.Section("Constraints")
	assert.Contains(t, cons.Lines, "**Additional constraints:**")

	quality, _ := pro.Section("Quality Bar")
	base1, _ := base.Section("Quality Bar")
	assert.Len(t, quality.Lines, len(base1.Lines)+len(proQuality))

	// input untouched
	assert.Len(t, base.Sections, 6)
	assert.Greater(t, len(pro.String()), len(base.String()))
}

func TestProExpandCoding(t *testing.T) {
	var s Synthesizer
	doc := ProExpand(s.Deep("fix it", models.TaskCode, models.Scaffold{}, nil), models.TaskCode, false)
	pit, ok := doc.Section("Common Pitfalls to Avoid")
	require.True(t, ok)
	assert.Contains(t, strings.Join(pit.Lines, "\n"), "rest of code here")
}

func TestProExpandIdempotent(t *testing.T) {
	var s Synthesizer
	once := ProExpand(s.Deep("plan a trip", models.TaskPlan, models.Scaffold{}, nil), models.TaskPlan, false)
	twice := ProExpand(once, models.TaskPlan, false)
	assert.Equal(t, once.String(), twice.String())
}

func TestProExpandText(t *testing.T) {
	plain := "Just a refined sentence."
	assert.Equal(t, plain, ProExpandText(plain, models.TaskGenerate, false))

	llmOut := "## Role\nYou are a writer.\n\n## Quality Criteria\n- Good"
	got := ProExpandText(llmOut, models.TaskGenerate, false)
	doc := ParseDocument(got)
	assert.Equal(t, []string{"Role", "Quality Criteria", "Verification Steps", "Common Pitfalls to Avoid"}, doc.Headings())
}
