package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/api"
)

// APICommand returns the CLI command for starting the API server
func APICommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"api"},
		Usage:   "Start the TigerPrompts HTTP API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (default: server.port)",
			},
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Disable the saved prompt routes",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			port := cfg.Server.Port
			if c.IsSet("port") {
				port = c.Int("port")
			}

			enhancer, err := newEnhancer(c.Context, cfg, llmOptional)
			if err != nil {
				return err
			}

			var store api.HistoryStore
			if !c.Bool("no-history") {
				s, err := openHistory(cfg)
				if err != nil {
					return err
				}
				defer s.Close()
				store = s
			}

			server := api.NewServer(api.Options{
				Port:      port,
				RateLimit: cfg.Server.RateLimit,
				Burst:     cfg.Server.Burst,
			}, enhancer, store)
			return server.Start()
		},
	}
}
