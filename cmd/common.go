package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/aiconnectors"
	"github.com/tigerprompts/internal/config"
	"github.com/tigerprompts/internal/history"
	"github.com/tigerprompts/internal/llm"
	"github.com/tigerprompts/internal/logging"
	"github.com/tigerprompts/internal/pipeline"
	"github.com/tigerprompts/internal/prompts"
)

// GlobalFlags are the flags accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Load configuration from `FILE` (default: ./tigerprompts.toml, then ~/.tigerprompts.toml)",
			EnvVars: []string{"TIGERPROMPTS_CONFIG"},
		},
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "Load environment variables from `FILE` before reading the configuration",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "Log level (debug, info, warn, error); overrides general.log_level",
		},
		&cli.BoolFlag{
			Name:  "pretty-log",
			Usage: "Human readable log output on stderr",
		},
	}
}

// Before runs ahead of every command: it loads the env file and sets up
// logging from the configured level.
func Before(c *cli.Context) error {
	if path := c.String("env-file"); path != "" {
		if err := LoadEnvFile(path); err != nil {
			return fmt.Errorf("failed to load env file: %w", err)
		}
	}

	level := c.String("log-level")
	if level == "" {
		if cfg, err := config.LoadConfig(c.String("config")); err == nil {
			level = cfg.General.LogLevel
		}
	}
	logging.Setup(level, c.Bool("pretty-log"), c.App.ErrWriter)
	return nil
}

// Commands returns every top-level command.
func Commands() []*cli.Command {
	return []*cli.Command{
		EnhanceCommand(),
		ScoreCommand(),
		ScanCommand(),
		RunCommand(),
		HistoryCommand(),
		APICommand(),
		MCPCommand(),
		ConfigCommand(),
		TemplatesCommand(),
		ModelsCommand(),
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// NewCompleter builds the LLM adapter selected by cfg and the model name
// requests should carry.
func NewCompleter(ctx context.Context, cfg *config.Config) (llm.Completer, string, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	timeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second

	if provider == "" || provider == config.ProviderProxy {
		var opts []llm.ProxyOption
		if cfg.LLM.APIKey != "" {
			opts = append(opts, llm.WithAPIKey(cfg.LLM.APIKey))
		}
		if timeout > 0 {
			opts = append(opts, llm.WithTimeout(timeout))
		}
		model := cfg.LLM.Model
		if model == "" {
			model = prompts.DefaultModel
		}
		return llm.Logged(config.ProviderProxy, llm.NewProxyClient(cfg.LLM.Endpoint, opts...)), model, nil
	}

	p, ok := aiconnectors.ParseProvider(provider)
	if !ok {
		return nil, "", fmt.Errorf("unsupported llm provider %q", cfg.LLM.Provider)
	}

	// Proxy model names mean nothing to other providers.
	model := cfg.LLM.Model
	if _, hinted := prompts.Hint(model); hinted && p != aiconnectors.ProviderOpenAI {
		model = ""
	}

	conn, err := aiconnectors.NewConnector(ctx, aiconnectors.ConnectorOptions{
		Provider:    p,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       model,
		Temperature: cfg.LLM.Temperature,
	})
	if err != nil {
		return nil, "", err
	}
	return llm.Logged(string(p), conn), conn.GetModel(), nil
}

// llmUse says whether a command needs the remote path.
type llmUse int

const (
	llmOff llmUse = iota
	llmOptional
	llmRequired
)

// newEnhancer builds the pipeline. With llmOptional a completer that
// cannot be built only disables the remote path.
func newEnhancer(ctx context.Context, cfg *config.Config, use llmUse) (*pipeline.Enhancer, error) {
	opts := []pipeline.Option{pipeline.WithMaxTokens(cfg.LLM.MaxTokens)}
	if use == llmOff {
		return pipeline.New(opts...), nil
	}

	completer, model, err := NewCompleter(ctx, cfg)
	switch {
	case err == nil:
		opts = append(opts, pipeline.WithCompleter(completer), pipeline.WithDefaultModel(model))
	case use == llmRequired:
		return nil, fmt.Errorf("failed to set up LLM: %w", err)
	default:
		log.Warn().Err(err).Msg("LLM unavailable; only local enhancement will work")
	}

	return pipeline.New(opts...), nil
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	store, err := history.Open(cfg.History.Path, cfg.History.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

// readInput returns the command arguments joined by spaces, or stdin when
// there are none or the only argument is "-".
func readInput(c *cli.Context) (string, error) {
	args := c.Args().Slice()
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		in := c.App.Reader
		if in == nil {
			in = os.Stdin
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
	return strings.Join(args, " "), nil
}

// readFileArg reads the file named by the first argument, or stdin for
// "-" or no argument.
func readFileArg(c *cli.Context) (string, error) {
	path := c.Args().First()
	if path == "" || path == "-" {
		return readInput(c)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
