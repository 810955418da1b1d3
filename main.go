package main

import (
	"os"

	"github.com/4wadia/focusflow/cmd"
	"github.com/4wadia/focusflow/internal/cli"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
