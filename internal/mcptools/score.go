package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tigerprompts/internal/pqs"
)

// ScoreTool handles the score_prompt MCP tool.
type ScoreTool struct{}

// NewScoreTool creates a ScoreTool.
func NewScoreTool() *ScoreTool {
	return &ScoreTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ScoreTool) Definition() mcp.Tool {
	return mcp.NewTool("score_prompt",
		mcp.WithDescription(
			"Compute the Prompt Quality Score (0-100%) of a prompt with its six "+
				"sub-metrics: clarity, structure, constraint density, model compatibility, "+
				"goal alignment and cognitive load.",
		),
		mcp.WithString("prompt",
			mcp.Required(),
			mcp.Description("The prompt text to score."),
		),
	)
}

// Handle processes the score_prompt tool call.
func (t *ScoreTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt := req.GetString("prompt", "")
	if strings.TrimSpace(prompt) == "" {
		return mcp.NewToolResultError("'prompt' is required"), nil
	}

	b := pqs.Evaluate(prompt)

	var sb strings.Builder
	sb.WriteString("# Prompt Quality Score\n\n")
	fmt.Fprintf(&sb, "**PQS:** %s\n\n", pct(b.Total()))
	sb.WriteString("| Metric | Score | Weight |\n|---|---|---|\n")
	rows := []struct {
		name          string
		score, weight float64
	}{
		{"Clarity", b.Clarity, pqs.WeightClarity},
		{"Structure", b.Structure, pqs.WeightStructure},
		{"Constraint density", b.ConstraintDensity, pqs.WeightConstraintDensity},
		{"Model compatibility", b.ModelCompatibility, pqs.WeightModelCompatibility},
		{"Goal alignment", b.GoalAlignment, pqs.WeightGoalAlignment},
		{"Cognitive load", b.CognitiveLoad, pqs.WeightCognitiveLoad},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %.2f | %.2f |\n", r.name, r.score, r.weight)
	}

	return mcp.NewToolResultText(sb.String()), nil
}
