package pipeline

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerprompts/internal/llm"
	"github.com/tigerprompts/internal/pqs"
	"github.com/tigerprompts/internal/prompts"
	"github.com/tigerprompts/internal/synth"
	"github.com/tigerprompts/pkg/models"
)

// stubCompleter records the last request and replies with a fixed text.
type stubCompleter struct {
	reply string
	err   error
	last  llm.CompletionRequest
	calls int
}

func (s *stubCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	s.last = req
	s.calls++
	return s.reply, s.err
}

func TestEnhanceLocalLight(t *testing.T) {
	rec, err := New().Enhance(context.Background(), "write something", EnhancementOptions{})
	require.NoError(t, err)

	assert.Equal(t, ModeLocalLight, rec.Mode)
	assert.Equal(t, models.TaskGenerate, rec.TaskType)
	assert.Equal(t, "write something", rec.Original)
	assert.InDelta(t, 0.46, rec.PQSBefore, 0.01)
	assert.Equal(t, pqs.Score(rec.Enhanced), rec.PQSAfter)
	assert.InDelta(t, rec.PQSAfter-rec.PQSBefore, rec.DeltaQ, 1e-12)
	assert.Nil(t, rec.Explanation)
	assert.True(t, strings.HasSuffix(rec.Enhanced, "Key requirements:\n- Clear and specific output\n- Address all requirements"))
}

func TestEnhanceLocalDeepAndPro(t *testing.T) {
	e := New()
	deep, err := e.Enhance(context.Background(), "write a blog post about Go for beginners", EnhancementOptions{Depth: models.DepthDeep})
	require.NoError(t, err)
	assert.Equal(t, ModeLocalDeep, deep.Mode)
	assert.True(t, strings.HasPrefix(deep.Enhanced, "# ENHANCED PROMPT (TPEM)"))
	assert.NotContains(t, deep.Enhanced, "Verification Steps")

	pro, err := e.Enhance(context.Background(), "write a blog post about Go for beginners", EnhancementOptions{Depth: models.DepthDeep, Pro: true})
	require.NoError(t, err)
	assert.Equal(t, ModeLocalPro, pro.Mode)
	assert.Contains(t, pro.Enhanced, "## Verification Steps")
	assert.Contains(t, pro.Enhanced, "## Common Pitfalls to Avoid")
	assert.Greater(t, len(pro.Enhanced), len(deep.Enhanced))
}

func TestEnhanceProIgnoredOnLight(t *testing.T) {
	e := New()
	plain, err := e.Enhance(context.Background(), "summarize this", EnhancementOptions{})
	require.NoError(t, err)
	pro, err := e.Enhance(context.Background(), "summarize this", EnhancementOptions{Pro: true})
	require.NoError(t, err)
	assert.Equal(t, plain, pro)
}

func TestEnhanceCodingDoesNotMutateContext(t *testing.T) {
	code := &models.CodeContext{ExistingCode: "def f(): pass", Languages: []string{"Python"}, FileDefinitions: "app.py"}
	snapshot := *code
	snapshot.Languages = append([]string(nil), code.Languages...)

	rec, err := New().Enhance(context.Background(), "add a cache", EnhancementOptions{Depth: models.DepthDeep, Code: code})
	require.NoError(t, err)
	assert.Contains(t, rec.Enhanced, synth.CodingBanner)
	assert.Contains(t, rec.Enhanced, "- `app.py`")
	assert.Equal(t, snapshot, *code)
}

func TestEnhanceTemplate(t *testing.T) {
	rec, err := New().Enhance(context.Background(), "login button does nothing", EnhancementOptions{Template: "fix-bug", Explain: true})
	require.NoError(t, err)

	// fix-bug defaults to deep and turns coding mode on
	assert.Equal(t, ModeLocalDeep, rec.Mode)
	assert.Contains(t, rec.Enhanced, synth.CodingBanner)
	assert.Contains(t, rec.Enhanced, "This is a debugging request.")
	assert.Equal(t, "login button does nothing", rec.Original)
	assert.Equal(t, pqs.Score("login button does nothing"), rec.PQSBefore)
	assert.Contains(t, rec.Explanation, "Template: Fix Bug")

	_, err = New().Enhance(context.Background(), "x", EnhancementOptions{Template: "missing"})
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestEnhanceTemplateDepthOverride(t *testing.T) {
	rec, err := New().Enhance(context.Background(), "ideas", EnhancementOptions{Template: "analyze-data", Depth: models.DepthLight})
	require.NoError(t, err)
	assert.Equal(t, ModeLocalLight, rec.Mode)
}

func TestLocalExplanation(t *testing.T) {
	rec, err := New().Enhance(context.Background(), "fix", EnhancementOptions{Explain: true, Code: &models.CodeContext{}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"⚡ Local Mode: Enhanced via TPEM (light)",
		"💻 Vibe Coding Mode: Applied coding-specific constraints",
		"Task Classification: generate",
		"Ambiguity Score: 0.80",
		"PQS Improvement: " + fmtFloat(rec.PQSBefore) + " → " + fmtFloat(rec.PQSAfter),
		"Enhancement: Added structure, constraints, and process steps",
	}, rec.Explanation)
}

func TestEnhanceRemote(t *testing.T) {
	stub := &stubCompleter{reply: "  Write a concise blog post about Go generics for beginners.  "}
	e := New(WithCompleter(stub), WithDefaultModel("gpt-4o"))

	rec, err := e.Enhance(context.Background(), "write about generics", EnhancementOptions{UseLLM: true, Explain: true})
	require.NoError(t, err)

	assert.Equal(t, ModeLLMLight, rec.Mode)
	assert.Equal(t, "Write a concise blog post about Go generics for beginners.", rec.Enhanced)
	assert.Equal(t, prompts.LightSystemPrompt, stub.last.SystemPrompt)
	assert.Equal(t, "write about generics", stub.last.UserPrompt)
	assert.Equal(t, "gpt-4o", stub.last.Model)
	assert.Equal(t, llm.DefaultMaxTokens, stub.last.MaxTokens)

	require.Len(t, rec.Explanation, 3)
	assert.Equal(t, "🤖 LLM Mode: Enhanced via gpt-4o (light)", rec.Explanation[0])
	assert.Equal(t, "Length Change: +38 characters", rec.Explanation[2])
}

func TestEnhanceRemoteDeepCodingPro(t *testing.T) {
	stub := &stubCompleter{reply: "# ENHANCED PROMPT\n\n## Role & Context\nEngineer.\n\n## Process\n1. Do it\n\n## Quality Criteria\n- Works"}
	e := New(WithCompleter(stub))

	code := &models.CodeContext{NeedsTesting: true, Languages: []string{"Go"}}
	rec, err := e.Enhance(context.Background(), "write a parser", EnhancementOptions{
		UseLLM: true, Depth: models.DepthDeep, Pro: true, Model: "claude-sonnet", MaxTokens: 500, Code: code,
	})
	require.NoError(t, err)

	assert.Equal(t, ModeLLMPro, rec.Mode)
	assert.Equal(t, prompts.DeepSystemPrompt, stub.last.SystemPrompt)
	assert.Equal(t, "claude-sonnet", stub.last.Model)
	assert.Equal(t, 500, stub.last.MaxTokens)
	assert.Contains(t, stub.last.UserPrompt, "## Languages: Go")
	assert.Contains(t, stub.last.UserPrompt, "## Requirements: Include comprehensive test cases")

	doc := synth.ParseDocument(rec.Enhanced)
	assert.Equal(t, []string{"Role & Context", "Process", "Quality Criteria", "Verification Steps", "Common Pitfalls to Avoid"}, doc.Headings())
}

func TestEnhanceRemoteFailure(t *testing.T) {
	stub := &stubCompleter{err: &llm.AdapterError{Message: "quota exceeded", StatusCode: 429}}
	rec, err := New(WithCompleter(stub)).Enhance(context.Background(), "write", EnhancementOptions{UseLLM: true})
	assert.Nil(t, rec)
	require.Error(t, err)
	assert.True(t, llm.IsAdapterError(err))
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 1, stub.calls)
}

func TestEnhanceRemoteWithoutCompleter(t *testing.T) {
	rec, err := New().Enhance(context.Background(), "write", EnhancementOptions{UseLLM: true})
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, ErrNoCompleter)
}

func TestRun(t *testing.T) {
	stub := &stubCompleter{reply: "Here is your answer.\n"}
	e := New(WithCompleter(stub))

	out, err := e.Run(context.Background(), "# ENHANCED PROMPT (TPEM)\n...", "")
	require.NoError(t, err)
	assert.Equal(t, "Here is your answer.", out)
	assert.Equal(t, prompts.RunSystemPrompt, stub.last.SystemPrompt)
	assert.Equal(t, prompts.DefaultModel, stub.last.Model)

	_, err = New().Run(context.Background(), "x", "")
	assert.ErrorIs(t, err, ErrNoCompleter)
}

func TestEnhanceEmptyPromptIsTotal(t *testing.T) {
	rec, err := New().Enhance(context.Background(), "", EnhancementOptions{Depth: models.DepthDeep})
	require.NoError(t, err)
	assert.Equal(t, models.TaskGenerate, rec.TaskType)
	assert.NotEmpty(t, rec.Enhanced)
}


func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
