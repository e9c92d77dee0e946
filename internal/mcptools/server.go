package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/tigerprompts/internal/pipeline"
)

// NewServer creates the MCP server with every tool registered. A nil
// enhancer means local-only enhancement.
func NewServer(version string, enhancer *pipeline.Enhancer) *server.MCPServer {
	if enhancer == nil {
		enhancer = pipeline.New()
	}

	s := server.NewMCPServer(
		"tigerprompts",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	classifyTool := NewClassifyTool()
	s.AddTool(classifyTool.Definition(), classifyTool.Handle)

	scoreTool := NewScoreTool()
	s.AddTool(scoreTool.Definition(), scoreTool.Handle)

	enhanceTool := NewEnhanceTool(enhancer)
	s.AddTool(enhanceTool.Definition(), enhanceTool.Handle)

	scanTool := NewScanTool()
	s.AddTool(scanTool.Definition(), scanTool.Handle)

	return s
}

const instructions = `TigerPrompts improves prompts before they are sent to a model and checks the code that comes back.

- Use classify_prompt and score_prompt to see what a prompt is missing.
- Use enhance_prompt to rewrite a vague prompt; pass coding=true with languages and file_definitions for code tasks.
- Use scan_code on generated code; if it fails, send the returned follow-up prompt back to the model.`
