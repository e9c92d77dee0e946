package mcptools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog/log"

	"github.com/tigerprompts/internal/pipeline"
	"github.com/tigerprompts/internal/prompts"
	"github.com/tigerprompts/pkg/models"
)

// EnhanceTool handles the enhance_prompt MCP tool.
type EnhanceTool struct {
	enhancer *pipeline.Enhancer
}

// NewEnhanceTool creates an EnhanceTool backed by enhancer.
func NewEnhanceTool(enhancer *pipeline.Enhancer) *EnhanceTool {
	return &EnhanceTool{enhancer: enhancer}
}

// Definition returns the MCP tool definition for registration.
func (t *EnhanceTool) Definition() mcp.Tool {
	return mcp.NewTool("enhance_prompt",
		mcp.WithDescription(
			"Rewrite a raw prompt into a structured, high-quality prompt. "+
				"'light' adds a role and key requirements; 'deep' produces a full sectioned "+
				"prompt (role, task, assumptions, constraints, process, output format, quality bar). "+
				"Set coding=true to add vibe-coding constraints for code generation.",
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The raw prompt text."),
		),
		mcp.WithString("depth",
			mcp.Description("Synthesis depth. Defaults to the template's depth, else light."),
			mcp.Enum(string(models.DepthLight), string(models.DepthDeep)),
		),
		mcp.WithBoolean("pro",
			mcp.Description("Expand a deep result with verification steps and common pitfalls."),
		),
		mcp.WithBoolean("use_llm",
			mcp.Description("Let the configured language model write the enhancement."),
		),
		mcp.WithBoolean("explain",
			mcp.Description("Append the explanation of what was changed."),
		),
		mcp.WithString("template",
			mcp.Description("Task template whose context is prepended to the prompt."),
			mcp.Enum(prompts.Keys()...),
		),
		mcp.WithObject("template_vars",
			mcp.Description("Values for the template placeholders, e.g. {\"stack\": \"Go + Postgres\"}."),
		),
		mcp.WithBoolean("coding",
			mcp.Description("Enable coding mode."),
		),
		mcp.WithString("existing_code",
			mcp.Description("Code the change must integrate with. Implies coding mode."),
		),
		mcp.WithString("file_definitions",
			mcp.Description("Comma separated file names that must not be renamed. Implies coding mode."),
		),
		mcp.WithArray("languages",
			mcp.Description("Languages in use. Implies coding mode."),
			mcp.Items(map[string]interface{}{"type": "string"}),
		),
		mcp.WithBoolean("needs_testing",
			mcp.Description("Require tests with the code."),
		),
		mcp.WithBoolean("is_new_feature",
			mcp.Description("The change is a new feature rather than a modification."),
		),
	)
}

// Handle processes the enhance_prompt tool call.
func (t *EnhanceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt := req.GetString("prompt", "")
	if strings.TrimSpace(prompt) == "" {
		return mcp.NewToolResultError("'prompt' is required"), nil
	}

	opts := pipeline.EnhancementOptions{
		Pro:          boolArg(req, "pro", false),
		UseLLM:       boolArg(req, "use_llm", false),
		Explain:      boolArg(req, "explain", false),
		Template:     req.GetString("template", ""),
		TemplateVars: stringMapArg(req, "template_vars"),
		Code:         codeContext(req),
	}
	if d := req.GetString("depth", ""); d != "" {
		opts.Depth = models.ParseDepth(d)
	}

	rec, err := t.enhancer.Enhance(ctx, prompt, opts)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownTemplate) || errors.Is(err, pipeline.ErrNoCompleter) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		log.Error().Err(err).Msg("enhance_prompt failed")
		return mcp.NewToolResultError(fmt.Sprintf("enhancement failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(rec.Enhanced)
	sb.WriteString("\n\n---\n")
	fmt.Fprintf(&sb, "_Mode: %s · Task: %s · PQS %s → %s_\n",
		rec.Mode, rec.TaskType, pct(rec.PQSBefore), pct(rec.PQSAfter))
	for _, line := range rec.Explanation {
		fmt.Fprintf(&sb, "- %s\n", line)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// codeContext returns nil unless coding mode was asked for, explicitly or
// through one of the coding fields.
func codeContext(req mcp.CallToolRequest) *models.CodeContext {
	code := &models.CodeContext{
		ExistingCode:    req.GetString("existing_code", ""),
		FileDefinitions: req.GetString("file_definitions", ""),
		Languages:       stringsArg(req, "languages"),
		NeedsTesting:    boolArg(req, "needs_testing", false),
		IsNewFeature:    boolArg(req, "is_new_feature", false),
	}
	enabled := boolArg(req, "coding", false) ||
		strings.TrimSpace(code.ExistingCode) != "" ||
		strings.TrimSpace(code.FileDefinitions) != "" ||
		len(code.Languages) > 0
	if !enabled {
		return nil
	}
	return code
}
