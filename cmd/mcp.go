package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/mcptools"
)

// MCPCommand returns the command serving the MCP tools over stdio.
func MCPCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve classify, score, enhance and scan tools over MCP stdio",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			enhancer, err := newEnhancer(c.Context, cfg, llmOptional)
			if err != nil {
				return err
			}

			// Stdout carries the protocol; logs stay on stderr.
			log.Info().Str("version", c.App.Version).Msg("Starting MCP server on stdio")
			return server.ServeStdio(mcptools.NewServer(c.App.Version, enhancer))
		},
	}
}
