package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/config"
)

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize a new configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "tigerprompts.toml",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration file",
				Action: runConfigValidate,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration with secrets masked",
				Action: runConfigShow,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	outputPath := c.String("output")

	if err := config.InitConfig(outputPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Created configuration file at %s\n", outputPath)
	return nil
}

func runConfigValidate(c *cli.Context) error {
	if _, err := loadConfig(c); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, "Configuration is valid")
	return nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	w := c.App.Writer
	fmt.Fprintln(w, "=== Configuration ===")
	fmt.Fprintf(w, "depth:       %s (pro: %v, explain: %v, use_llm: %v)\n",
		cfg.General.Depth, cfg.General.Pro, cfg.General.Explain, cfg.General.UseLLM)
	fmt.Fprintf(w, "coding:      %v %v\n", cfg.Coding.Enabled, cfg.Coding.Languages)
	fmt.Fprintf(w, "provider:    %s\n", cfg.LLM.Provider)
	if cfg.LLM.Provider == config.ProviderProxy {
		fmt.Fprintf(w, "endpoint:    %s\n", cfg.LLM.Endpoint)
	} else if cfg.LLM.BaseURL != "" {
		fmt.Fprintf(w, "base_url:    %s\n", cfg.LLM.BaseURL)
	}
	fmt.Fprintf(w, "api_key:     %s\n", maskSecret(cfg.LLM.APIKey))
	fmt.Fprintf(w, "model:       %s (max_tokens %d)\n", cfg.LLM.Model, cfg.LLM.MaxTokens)
	fmt.Fprintf(w, "server:      :%d (%.1f req/s, burst %d)\n", cfg.Server.Port, cfg.Server.RateLimit, cfg.Server.Burst)
	fmt.Fprintf(w, "history:     %s (keep %d)\n", cfg.History.Path, cfg.History.Limit)

	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(w, "⚠ %v\n", err)
	}
	return nil
}
