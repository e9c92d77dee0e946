package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/tigerprompts/internal/scanner"
)

// ScanTool handles the scan_code MCP tool.
type ScanTool struct{}

// NewScanTool creates a ScanTool.
func NewScanTool() *ScanTool {
	return &ScanTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ScanTool) Definition() mcp.Tool {
	return mcp.NewTool("scan_code",
		mcp.WithDescription(
			"Scan AI-generated code for truncation markers, missing framework imports, "+
				"undefined functions, unhandled async calls, debug residue and leftover TODOs. "+
				"Returns a score out of 100 and, when issues exist, a follow-up prompt to send "+
				"back to the model that wrote the code.",
		),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("The source code to scan."),
		),
	)
}

// Handle processes the scan_code tool call.
func (t *ScanTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code := req.GetString("code", "")
	if strings.TrimSpace(code) == "" {
		return mcp.NewToolResultError("'code' is required"), nil
	}

	res := scanner.Scan(code)

	var sb strings.Builder
	status := "PASSED"
	if !res.Passed {
		status = "FAILED"
	}
	fmt.Fprintf(&sb, "# Code Scan: %s (score %d/100)\n\n", status, res.Score)
	fmt.Fprintf(&sb, "Critical: %d · Warnings: %d\n", res.CriticalCount(), res.WarningCount())

	if res.FollowUpPrompt != nil {
		sb.WriteString("\n")
		sb.WriteString(*res.FollowUpPrompt)
	} else {
		sb.WriteString("\nNo issues found.\n")
	}

	return mcp.NewToolResultText(sb.String()), nil
}
