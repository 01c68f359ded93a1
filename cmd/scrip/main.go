// Package main is the entry point for the scrip CLI.
package main

import (
	"os"

	"github.com/scriplabs/scrip/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
