package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/config"
	"github.com/tigerprompts/internal/pipeline"
	"github.com/tigerprompts/pkg/models"
)

// EnhanceCommand returns the enhance command
func EnhanceCommand() *cli.Command {
	return &cli.Command{
		Name:      "enhance",
		Aliases:   []string{"e"},
		Usage:     "Enhance a prompt",
		ArgsUsage: "PROMPT|-",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "depth",
				Aliases: []string{"d"},
				Usage:   "Synthesis depth: light or deep (default: general.depth)",
			},
			&cli.BoolFlag{
				Name:  "pro",
				Usage: "Pro expansion for deep results",
			},
			&cli.BoolFlag{
				Name:  "llm",
				Usage: "Let the configured LLM write the enhancement",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Model to request (default: llm.model)",
			},
			&cli.BoolFlag{
				Name:  "explain",
				Usage: "Print what was changed",
			},
			&cli.StringFlag{
				Name:    "template",
				Aliases: []string{"t"},
				Usage:   "Task template `KEY` (see 'templates')",
			},
			&cli.StringSliceFlag{
				Name:  "var",
				Usage: "Template variable `NAME=VALUE` (repeatable)",
			},
			&cli.StringFlag{
				Name:  "code",
				Usage: "Existing code `FILE` for coding mode",
			},
			&cli.StringFlag{
				Name:  "files",
				Usage: "Comma separated file names that must not be renamed",
			},
			&cli.StringSliceFlag{
				Name:  "lang",
				Usage: "Language in use (repeatable)",
			},
			&cli.BoolFlag{
				Name:  "tests",
				Usage: "Require tests with the code",
			},
			&cli.BoolFlag{
				Name:  "new-feature",
				Usage: "The change is a new feature",
			},
			&cli.BoolFlag{
				Name:  "coding",
				Usage: "Enable coding mode without other coding flags",
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the result to history",
			},
			&cli.BoolFlag{
				Name:  "run",
				Usage: "Send the enhanced prompt to the LLM and print the reply",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the full record as JSON",
			},
		},
		Action: runEnhance,
	}
}

func runEnhance(c *cli.Context) error {
	prompt, err := readInput(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	opts, err := enhancementOptions(c, cfg)
	if err != nil {
		return err
	}
	needLLM := opts.UseLLM || c.Bool("run")
	if needLLM && strings.TrimSpace(prompt) == "" {
		return pipeline.ErrEmptyPrompt
	}

	use := llmOff
	if needLLM {
		use = llmRequired
	}
	enhancer, err := newEnhancer(c.Context, cfg, use)
	if err != nil {
		return err
	}

	rec, err := enhancer.Enhance(c.Context, prompt, opts)
	if err != nil {
		return fmt.Errorf("enhancement failed: %w", err)
	}

	var saved *models.SavedPrompt
	if c.Bool("save") {
		store, err := openHistory(cfg)
		if err != nil {
			return err
		}
		defer store.Close()
		sp, err := store.Save(c.Context, rec.Original, rec.Enhanced)
		if err != nil {
			return fmt.Errorf("failed to save prompt: %w", err)
		}
		saved = &sp
	}

	var reply string
	if c.Bool("run") {
		reply, err = enhancer.Run(c.Context, rec.Enhanced, opts.Model)
		if err != nil {
			return fmt.Errorf("run failed: %w", err)
		}
	}

	w := c.App.Writer
	if c.Bool("json") {
		return printJSON(w, struct {
			*models.PromptRecord
			Saved  *models.SavedPrompt `json:"saved,omitempty"`
			Output string              `json:"output,omitempty"`
		}{rec, saved, reply})
	}

	fmt.Fprintln(w, rec.Enhanced)
	if cfg.General.ShowPQS || opts.Explain {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "PQS: %.0f%% → %.0f%% (Δ %+.0f%%) · %s\n",
			rec.PQSBefore*100, rec.PQSAfter*100, rec.DeltaQ*100, rec.Mode)
	}
	for _, line := range rec.Explanation {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if saved != nil {
		fmt.Fprintf(w, "Saved as %s\n", saved.ID)
	}
	if reply != "" {
		fmt.Fprintln(w, "\n--- Response ---")
		fmt.Fprintln(w, reply)
	}
	return nil
}

// enhancementOptions merges command flags over the configuration.
func enhancementOptions(c *cli.Context, cfg *config.Config) (pipeline.EnhancementOptions, error) {
	opts := pipeline.EnhancementOptions{
		Pro:       c.Bool("pro") || cfg.General.Pro,
		UseLLM:    c.Bool("llm") || cfg.General.UseLLM,
		Explain:   c.Bool("explain") || cfg.General.Explain,
		Model:     c.String("model"),
		MaxTokens: cfg.LLM.MaxTokens,
		Template:  c.String("template"),
	}

	// An unset depth lets a template choose.
	switch {
	case c.IsSet("depth"):
		opts.Depth = models.ParseDepth(c.String("depth"))
	case opts.Template == "" && cfg.General.Depth != "":
		opts.Depth = models.ParseDepth(cfg.General.Depth)
	}

	vars, err := parseVars(c.StringSlice("var"))
	if err != nil {
		return opts, err
	}
	opts.TemplateVars = vars

	code, err := codeContext(c, cfg)
	if err != nil {
		return opts, err
	}
	opts.Code = code
	return opts, nil
}

func parseVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --var %q, expected NAME=VALUE", p)
		}
		vars[strings.TrimSpace(name)] = value
	}
	return vars, nil
}

// codeContext returns nil unless coding mode is on through the config or
// any coding flag.
func codeContext(c *cli.Context, cfg *config.Config) (*models.CodeContext, error) {
	code := &models.CodeContext{
		FileDefinitions: cfg.Coding.FileDefinitions,
		Languages:       cfg.Coding.Languages,
		NeedsTesting:    cfg.Coding.NeedsTesting || c.Bool("tests"),
		IsNewFeature:    cfg.Coding.IsNewFeature || c.Bool("new-feature"),
	}
	if c.IsSet("files") {
		code.FileDefinitions = c.String("files")
	}
	if langs := c.StringSlice("lang"); len(langs) > 0 {
		code.Languages = langs
	}
	if path := c.String("code"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read code file: %w", err)
		}
		code.ExistingCode = string(data)
	}

	enabled := cfg.Coding.Enabled || c.Bool("coding") ||
		c.IsSet("files") || c.IsSet("lang") || c.IsSet("code") ||
		c.Bool("tests") || c.Bool("new-feature")
	if !enabled {
		return nil, nil
	}
	return code, nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
