package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tigerprompts/cmd"
)

const (
	version = "0.1.0"
)

func main() {
	app := &cli.App{
		Name:     "tigerprompts",
		Usage:    "Turn rough prompts into structured ones and check the code models send back",
		Version:  version,
		Flags:    cmd.GlobalFlags(),
		Before:   cmd.Before,
		Commands: cmd.Commands(),
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
