package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/pipeline"
)

// RunCommand returns the run command
func RunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Send a prompt to the configured LLM and print the reply",
		ArgsUsage: "PROMPT|-",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Model to request (default: llm.model)",
			},
		},
		Action: runRun,
	}
}

func runRun(c *cli.Context) error {
	prompt, err := readInput(c)
	if err != nil {
		return err
	}
	if strings.TrimSpace(prompt) == "" {
		return pipeline.ErrEmptyPrompt
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	enhancer, err := newEnhancer(c.Context, cfg, llmRequired)
	if err != nil {
		return err
	}

	reply, err := enhancer.Run(c.Context, prompt, c.String("model"))
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	fmt.Fprintln(c.App.Writer, reply)
	return nil
}
