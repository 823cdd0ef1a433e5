package main

import (
	"os"

	"github.com/idilsaglam/compare/internal/cli"
)

func main() {
	// Flags and subcommands are parsed by the CLI runner.
	os.Exit(cli.Run(os.Args[1:], cli.Options{
		Out: os.Stdout,
		Err: os.Stderr,
	}))
}
