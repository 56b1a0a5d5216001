// Package main is the entry point for the Atomix CLI.
package main

import (
	"os"

	"github.com/algointent/atomix/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
