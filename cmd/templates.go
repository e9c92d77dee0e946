package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/aiconnectors"
	"github.com/tigerprompts/internal/prompts"
)

// TemplatesCommand returns the templates command
func TemplatesCommand() *cli.Command {
	return &cli.Command{
		Name:  "templates",
		Usage: "List task templates",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Show each template's context and placeholders",
			},
		},
		Action: func(c *cli.Context) error {
			w := c.App.Writer
			for _, t := range prompts.Templates() {
				mode := ""
				if t.Coding {
					mode = " 💻"
				}
				fmt.Fprintf(w, "%-14s %-22s %-5s%s\n", t.Key, t.Name, t.Depth, mode)
				if !c.Bool("verbose") {
					continue
				}
				for _, p := range prompts.ParsePlaceholders(t.Context) {
					fmt.Fprintf(w, "    --var %s=...\n", p.Name)
				}
				for _, line := range strings.Split(t.Context, "\n") {
					fmt.Fprintf(w, "    │ %s\n", line)
				}
			}
			return nil
		},
	}
}

// ModelsCommand returns the models command
func ModelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "models",
		Usage: "List known models, or the models of a local Ollama server",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "ollama",
				Usage: "Query the Ollama server instead",
			},
			&cli.StringFlag{
				Name:  "ollama-url",
				Usage: "Ollama base URL (default: llm.base_url, else " + aiconnectors.DefaultOllamaURL + ")",
			},
		},
		Action: func(c *cli.Context) error {
			w := c.App.Writer
			if !c.Bool("ollama") {
				for _, m := range prompts.KnownModels() {
					hint, _ := prompts.Hint(m)
					fmt.Fprintf(w, "%-14s %s\n", m, hint)
				}
				return nil
			}

			baseURL := c.String("ollama-url")
			if baseURL == "" {
				if cfg, err := loadConfig(c); err == nil && cfg.LLM.BaseURL != "" {
					baseURL = cfg.LLM.BaseURL
				}
			}
			models, err := aiconnectors.FetchOllamaModels(c.Context, baseURL)
			if err != nil {
				return fmt.Errorf("failed to list ollama models: %w", err)
			}
			for _, m := range models {
				fmt.Fprintln(w, m.Name)
			}
			return nil
		},
	}
}
