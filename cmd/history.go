package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage saved prompts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List saved prompts, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Print as JSON"},
				},
				Action: runHistoryList,
			},
			{
				Name:      "show",
				Usage:     "Print a saved enhanced prompt",
				ArgsUsage: "ID",
				Action:    runHistoryShow,
			},
			{
				Name:      "delete",
				Usage:     "Delete a saved prompt",
				ArgsUsage: "ID",
				Action:    runHistoryDelete,
			},
		},
	}
}

func runHistoryList(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	items, err := store.List(c.Context)
	if err != nil {
		return err
	}

	w := c.App.Writer
	if c.Bool("json") {
		return printJSON(w, items)
	}
	if len(items) == 0 {
		fmt.Fprintln(w, "No saved prompts")
		return nil
	}
	for _, p := range items {
		fmt.Fprintf(w, "%s  %s  %s\n", p.ID, p.Timestamp, p.Original)
	}
	return nil
}

func runHistoryShow(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing required argument: ID")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.Get(c.Context, c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, p.Enhanced)
	return nil
}

func runHistoryDelete(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing required argument: ID")
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	store, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	id := c.Args().First()
	if err := store.Delete(c.Context, id); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Deleted %s\n", id)
	return nil
}
