package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/internal/analysis"
	"github.com/tigerprompts/internal/pqs"
	"github.com/tigerprompts/internal/synth"
	"github.com/tigerprompts/pkg/models"
)

// ScoreCommand returns the score command
func ScoreCommand() *cli.Command {
	return &cli.Command{
		Name:      "score",
		Usage:     "Classify a prompt and report its ambiguity and quality score",
		ArgsUsage: "TEXT|-",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the report as JSON",
			},
		},
		Action: runScore,
	}
}

// ScoreReport is the output of the score command.
type ScoreReport struct {
	TaskType  models.TaskType `json:"task_type"`
	Ambiguity float64         `json:"ambiguity"`
	Triggered []string        `json:"triggered"`
	Scaffold  models.Scaffold `json:"scaffold"`
	PQS       float64         `json:"pqs"`
	Breakdown pqs.Breakdown   `json:"breakdown"`
}

func newScoreReport(text string) ScoreReport {
	taskType := analysis.Classify(text)
	ambiguity := analysis.ScoreAmbiguity(text)
	b := pqs.Evaluate(text)
	triggered := analysis.TriggeredRules(text)
	if triggered == nil {
		triggered = []string{}
	}
	return ScoreReport{
		TaskType:  taskType,
		Ambiguity: ambiguity,
		Triggered: triggered,
		Scaffold:  synth.BuildScaffold(ambiguity, taskType),
		PQS:       b.Total(),
		Breakdown: b,
	}
}

func runScore(c *cli.Context) error {
	text, err := readInput(c)
	if err != nil {
		return err
	}

	report := newScoreReport(text)
	w := c.App.Writer
	if c.Bool("json") {
		return printJSON(w, report)
	}

	fmt.Fprintf(w, "Task type:  %s\n", report.TaskType)
	fmt.Fprintf(w, "Ambiguity:  %.2f", report.Ambiguity)
	if len(report.Triggered) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(report.Triggered, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "PQS:        %.0f%%\n", report.PQS*100)
	fmt.Fprintf(w, "  clarity             %.2f\n", report.Breakdown.Clarity)
	fmt.Fprintf(w, "  structure           %.2f\n", report.Breakdown.Structure)
	fmt.Fprintf(w, "  constraint density  %.2f\n", report.Breakdown.ConstraintDensity)
	fmt.Fprintf(w, "  model compatibility %.2f\n", report.Breakdown.ModelCompatibility)
	fmt.Fprintf(w, "  goal alignment      %.2f\n", report.Breakdown.GoalAlignment)
	fmt.Fprintf(w, "  cognitive load      %.2f\n", report.Breakdown.CognitiveLoad)
	return nil
}
