package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerprompts/pkg/models"
)

func TestSystemPromptFor(t *testing.T) {
	assert.Equal(t, LightSystemPrompt, SystemPromptFor(models.DepthLight))
	assert.Equal(t, DeepSystemPrompt, SystemPromptFor(models.DepthDeep))
	assert.Equal(t, LightSystemPrompt, SystemPromptFor(""))
	assert.Contains(t, DeepSystemPrompt, "## Quality Criteria")
}

func TestTemplatesRegistry(t *testing.T) {
	assert.Equal(t, []string{
		"fresh-session", "code-feature", "fix-bug", "draft-email", "write-content",
		"analyze-data", "research", "social-media", "brainstorm",
	}, Keys())

	coding := 0
	for _, tpl := range Templates() {
		assert.NotEmpty(t, tpl.Name)
		assert.NotEmpty(t, tpl.Context)
		assert.Contains(t, []models.Depth{models.DepthLight, models.DepthDeep}, tpl.Depth)
		if tpl.Coding {
			coding++
		}
	}
	assert.Equal(t, 3, coding)

	_, ok := Lookup("nope")
	assert.False(t, ok)
	tpl, ok := Lookup(" Fix-Bug ")
	require.True(t, ok)
	assert.Equal(t, "Fix Bug", tpl.Name)
}

func TestTemplateApply(t *testing.T) {
	tpl, ok := Lookup("social-media")
	require.True(t, ok)

	out := tpl.Apply("launch our app", nil)
	assert.True(t, strings.HasSuffix(out, "\n\nlaunch our app"))
	assert.Contains(t, out, "- Platform (Instagram, Twitter, LinkedIn, etc.)")
	assert.NotContains(t, out, "{{VAR:")

	out = tpl.Apply("launch our app", map[string]string{"platform": "LinkedIn"})
	assert.Contains(t, out, "- Platform (LinkedIn)")

	email, _ := Lookup("draft-email")
	assert.Contains(t, email.Apply("x", nil), "- Recipient context\n")
}

func TestRender(t *testing.T) {
	body := "Langs: {{VAR:langs|join=\", \"}}; Owner: {{VAR:owner|default=\"nobody\"}}; Empty: [{{VAR:none}}]"
	out := Render(body, map[string]string{"langs": "go\n\npython\n"})
	assert.Equal(t, "Langs: go, python; Owner: nobody; Empty: []", out)
}

func TestParsePlaceholders_OptionsParsing(t *testing.T) {
	body := "Intro {{VAR:title|default=\"(untitled)\"}} -- list {{VAR:list|join=\", \"}} -- policy {{VAR:policy|default='be kind\\nrespect'}}"
	phs := ParsePlaceholders(body)
	require.Len(t, phs, 3)

	assert.Equal(t, "title", phs[0].Name)
	assert.Equal(t, "(untitled)", phs[0].Options["default"])
	assert.Equal(t, ", ", phs[1].Options["join"])
	assert.Equal(t, "be kind\nrespect", phs[2].Options["default"])
}

func TestBuildCodingUserPrompt(t *testing.T) {
	assert.Equal(t, "hello", BuildCodingUserPrompt("hello", nil))
	assert.Equal(t, "hello", BuildCodingUserPrompt("hello", &models.CodeContext{}))

	out := BuildCodingUserPrompt("add login", &models.CodeContext{
		ExistingCode:    "const a = 1;",
		Languages:       []string{"JavaScript", " ", "CSS"},
		NeedsTesting:    true,
		FileDefinitions: "index.js,style.css",
	})
	want := strings.Join([]string{
		"add login",
		"\n\n## File Definitions",
		"**CRITICAL: Never change these filenames:**",
		"- `index.js`",
		"- `style.css`",
		"\n\n## Existing Code Context",
		"```",
		"const a = 1;",
		"```",
		"**CRITICAL:** Study the code above. Match its style, patterns, and conventions exactly.",
		"\n\n## Languages: JavaScript, CSS",
		"\n\n## Requirements: Include comprehensive test cases",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestBuildCodingUserPromptKeepsIndentation(t *testing.T) {
	out := BuildCodingUserPrompt("add a method", &models.CodeContext{
		ExistingCode: "    def run(self):\n        pass\n",
	})
	assert.Contains(t, out, "```\n    def run(self):\n        pass\n```")
}

func TestModelHints(t *testing.T) {
	h, ok := Hint("gpt-4o")
	assert.True(t, ok)
	assert.Contains(t, h, "Best quality")
	_, ok = Hint("my-local-model")
	assert.False(t, ok)
	assert.Equal(t, []string{"claude-sonnet", "copilot", "gpt-4o", "gpt-4o-mini"}, KnownModels())
	_, ok = Hint(DefaultModel)
	assert.True(t, ok)
}
