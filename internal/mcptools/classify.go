package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tigerprompts/internal/analysis"
	"github.com/tigerprompts/internal/synth"
	"github.com/tigerprompts/pkg/models"
)

// ClassifyTool handles the classify_prompt MCP tool.
type ClassifyTool struct{}

// NewClassifyTool creates a ClassifyTool.
func NewClassifyTool() *ClassifyTool {
	return &ClassifyTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ClassifyTool) Definition() mcp.Tool {
	return mcp.NewTool("classify_prompt",
		mcp.WithDescription(
			"Classify a raw prompt into a task type (generate, transform, analyze, plan, "+
				"extract, code, math, image) and report how ambiguous it is. "+
				"Call this before rewriting a prompt to see which context is missing.",
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The raw prompt text."),
		),
	)
}

// Handle processes the classify_prompt tool call.
func (t *ClassifyTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt := req.GetString("prompt", "")
	if strings.TrimSpace(prompt) == "" {
		return mcp.NewToolResultError("'prompt' is required"), nil
	}

	taskType := analysis.Classify(prompt)
	ambiguity := analysis.ScoreAmbiguity(prompt)
	scaffold := synth.BuildScaffold(ambiguity, taskType)
	scores := analysis.Scores(prompt)

	var sb strings.Builder
	sb.WriteString("# Prompt Classification\n\n")
	fmt.Fprintf(&sb, "- **Task type:** %s\n", taskType)
	fmt.Fprintf(&sb, "- **Ambiguity:** %.2f\n", ambiguity)
	fmt.Fprintf(&sb, "- **Needs assumptions:** %t\n", scaffold.NeedsAssumptions)
	fmt.Fprintf(&sb, "- **Needs examples:** %t\n", scaffold.NeedsExamples)
	fmt.Fprintf(&sb, "- **Needs verification:** %t\n", scaffold.NeedsVerification)

	if rules := analysis.TriggeredRules(prompt); len(rules) > 0 {
		sb.WriteString("\n## Missing Context\n\n")
		for _, r := range rules {
			fmt.Fprintf(&sb, "- %s\n", r)
		}
	}

	sb.WriteString("\n## Keyword Hits\n\n")
	for _, tt := range models.TaskTypes {
		if n := scores[tt]; n > 0 {
			fmt.Fprintf(&sb, "- %s: %d\n", tt, n)
		}
	}

	return mcp.NewToolResultText(sb.String()), nil
}
