package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/scanner"
	"github.com/tigerprompts/pkg/models"
)

// ScanCommand returns the scan command
func ScanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Scan AI-generated code for truncation, missing imports and other issues",
		ArgsUsage: "FILE|-",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the result as JSON",
			},
		},
		Action: runScan,
	}
}

func runScan(c *cli.Context) error {
	code, err := readFileArg(c)
	if err != nil {
		return err
	}

	res := scanner.Scan(code)
	w := c.App.Writer
	if c.Bool("json") {
		return printJSON(w, res)
	}

	status := "✅ PASSED"
	if !res.Passed {
		status = "❌ FAILED"
	}
	fmt.Fprintf(w, "%s  score %d/100  (rules %s)\n", status, res.Score, scanner.RulesVersion)

	for _, i := range res.Issues {
		icon := "🟡"
		if i.Type == models.SeverityCritical {
			icon = "🔴"
		}
		if i.Line > 0 {
			fmt.Fprintf(w, "%s [%s] line %d: %s\n", icon, i.Category, i.Line, i.Problem)
		} else {
			fmt.Fprintf(w, "%s [%s] %s\n", icon, i.Category, i.Problem)
		}
	}

	if res.FollowUpPrompt != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, *res.FollowUpPrompt)
	}
	return nil
}
