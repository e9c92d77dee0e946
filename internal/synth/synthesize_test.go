package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerprompts/pkg/models"
)

func TestBuildScaffold(t *testing.T) {
	tests := []struct {
		name      string
		ambiguity float64
		task      models.TaskType
		want      models.Scaffold
	}{
		{"clear generate", 0.0, models.TaskGenerate, models.Scaffold{}},
		{"at assumptions threshold", 0.35, models.TaskGenerate, models.Scaffold{}},
		{"above assumptions threshold", 0.4, models.TaskPlan, models.Scaffold{NeedsAssumptions: true}},
		{"at examples threshold", 0.5, models.TaskAnalyze, models.Scaffold{NeedsAssumptions: true}},
		{"very vague", 0.8, models.TaskImage, models.Scaffold{NeedsAssumptions: true, NeedsExamples: true}},
		{"code verifies", 0.0, models.TaskCode, models.Scaffold{NeedsVerification: true}},
		{"math verifies", 0.0, models.TaskMath, models.Scaffold{NeedsVerification: true}},
		{"extract verifies", 0.6, models.TaskExtract, models.Scaffold{true, true, true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildScaffold(tt.ambiguity, tt.task))
		})
	}
}

func TestLight(t *testing.T) {
	t.Run("role and prompt only", func(t *testing.T) {
		got := Synthesize("write something", models.TaskGenerate, models.Scaffold{}, models.DepthLight, nil)
		assert.Equal(t, "You are an expert content creator and writer with deep knowledge of persuasive communication.\n\nwrite something", got)
	})

	t.Run("key requirements when ambiguous", func(t *testing.T) {
		got := Synthesize("write something", models.TaskGenerate, models.Scaffold{NeedsExamples: true}, models.DepthLight, nil)
		assert.True(t, strings.HasSuffix(got, "Key requirements:\n- Clear and specific output\n- Address all requirements"), got)
	})

	t.Run("coding context overrides role", func(t *testing.T) {
		got := Synthesize("make a list", models.TaskGenerate, models.Scaffold{NeedsExamples: true}, models.DepthLight, &models.CodeContext{})
		assert.True(t, strings.HasPrefix(got, codingRole))
		assert.Contains(t, got, "- Complete code (no truncation/placeholders)")
		assert.NotContains(t, got, "## ")
	})
}

func TestDeepSectionOrder(t *testing.T) {
	order := []string{"Role", "Task", "Constraints", "Process", "Output Format", "Quality Bar"}
	scaffolds := []models.Scaffold{{}, {true, true, true}}
	codes := []*models.CodeContext{nil, {ExistingCode: "const x = 1", Languages: []string{"JavaScript"}, FileDefinitions: "a.js"}}

	for _, task := range models.TaskTypes {
		for _, sc := range scaffolds {
			for _, code := range codes {
				out := Synthesize("do the thing", task, sc, models.DepthDeep, code)
				pos := 0
				for _, name := range order {
					i := strings.Index(out[pos:], name)
					require.GreaterOrEqual(t, i, 0, "task %s: %q missing after offset %d", task, name, pos)
					pos += i + len(name)
				}
			}
		}
	}
}

func TestDeepHeadings(t *testing.T) {
	var s Synthesizer
	doc := s.Deep("write something", models.TaskGenerate, models.Scaffold{}, nil)
	assert.Equal(t, []string{"Role & Context", "Task", "Constraints", "Process", "Output Format", "Quality Bar"}, doc.Headings())
	assert.Empty(t, doc.Preamble)
	assert.Equal(t, DeepTitle, doc.Title)

	out := doc.String()
	assert.True(t, strings.HasPrefix(out, "# ENHANCED PROMPT (TPEM)\n\n## Role & Context\n"))
	assert.Contains(t, out, "## Process\n1. Identify the audience and purpose\n")
	assert.NotContains(t, out, "File Definitions")
	assert.NotContains(t, out, "Existing Code Context")
	assert.NotContains(t, out, CodingBanner)
}

func TestDeepAssumptionsAndExamples(t *testing.T) {
	var s Synthesizer
	doc := s.Deep("write", models.TaskGenerate, models.Scaffold{NeedsAssumptions: true, NeedsExamples: true}, nil)
	assert.Equal(t, []string{
		"Role & Context", "Task", "Constraints", "Process", "Output Format", "Quality Bar", "Assumptions",
	}, doc.Headings())
	out, ok := doc.Section("Output Format")
	require.True(t, ok)
	assert.Contains(t, out.Lines, "- Include at least one concrete example")

	pro := ProExpand(doc, models.TaskGenerate, false)
	assert.Equal(t, []string{
		"Role & Context", "Task", "Constraints", "Process", "Output Format", "Quality Bar",
		"Verification Steps", "Common Pitfalls to Avoid", "Assumptions",
	}, pro.Headings())
}

func TestDeepCodingKeepsIndentation(t *testing.T) {
	var s Synthesizer
	code := &models.CodeContext{ExistingCode: "    indented()\n  x()\n\n"}
	doc := s.Deep("extend it", models.TaskCode, models.Scaffold{}, code)

	sec, ok := doc.Section("Existing Code Context")
	require.True(t, ok)
	assert.Equal(t, "    indented()\n  x()", sec.Lines[1])

	blank := &models.CodeContext{ExistingCode: " \n\t"}
	assert.False(t, s.Deep("extend it", models.TaskCode, models.Scaffold{}, blank).Has("Existing Code Context"))
}

func TestDeepCodingMode(t *testing.T) {
	code := &models.CodeContext{
		ExistingCode:    "function add(a, b) { return a + b }",
		Languages:       []string{"JavaScript", "Elixir"},
		IsNewFeature:    true,
		NeedsTesting:    true,
		FileDefinitions: "app.js, utils.js ,",
	}
	var s Synthesizer
	doc := s.Deep("add a subtract function", models.TaskGenerate, models.Scaffold{}, code)

	assert.Equal(t, []string{CodingBanner}, doc.Preamble)
	assert.Equal(t, []string{
		"Role & Context", "Task", "File Definitions", "Existing Code Context",
		"Constraints", "Process", "Output Format", "Quality Bar",
	}, doc.Headings())

	files, _ := doc.Section("File Definitions")
	assert.Equal(t, []string{"**Never change these filenames:**", "- `app.js`", "- `utils.js`"}, files.Lines)

	cons, _ := doc.Section("Constraints")
	joined := strings.Join(cons.Lines, "\n")
	for _, tier := range []string{"**Critical:**", "**Change management:**", "**Architecture:**", "**Testing:**", "**JavaScript best practices:**", "**Elixir best practices:**"} {
		assert.Contains(t, joined, tier)
	}
	assert.Contains(t, joined, "- Follow idiomatic Elixir conventions")

	role, _ := doc.Section("Role & Context")
	assert.Equal(t, []string{codingRole}, role.Lines)
}

func TestCodingTiersAreConditional(t *testing.T) {
	lines := strings.Join(codingConstraints(&models.CodeContext{}), "\n")
	assert.Contains(t, lines, "**Critical:**")
	assert.NotContains(t, lines, "**Change management:**")
	assert.NotContains(t, lines, "**Architecture:**")
	assert.NotContains(t, lines, "**Testing:**")
}

func TestDeepCodingEmptyContextOmitsCodeSections(t *testing.T) {
	var s Synthesizer
	doc := s.Deep("build it", models.TaskCode, models.Scaffold{}, &models.CodeContext{ExistingCode: "   "})
	assert.False(t, doc.Has("File Definitions"))
	assert.False(t, doc.Has("Existing Code Context"))
	assert.Equal(t, []string{CodingBanner}, doc.Preamble)
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	a := Synthesize("plan a launch", models.TaskPlan, models.Scaffold{NeedsAssumptions: true}, models.DepthDeep, nil)
	b := Synthesize("plan a launch", models.TaskPlan, models.Scaffold{NeedsAssumptions: true}, models.DepthDeep, nil)
	assert.Equal(t, a, b)
}

func TestSeededVariation(t *testing.T) {
	gen := func(seed uint64) string {
		s := New(WithRand(NewRand(seed)))
		return s.Synthesize("write a story", models.TaskGenerate, models.Scaffold{}, models.DepthLight, nil)
	}
	assert.Equal(t, gen(7), gen(7))

	role := strings.SplitN(gen(7), "\n", 2)[0]
	assert.Contains(t, profiles[models.TaskGenerate].roles, role)
}
