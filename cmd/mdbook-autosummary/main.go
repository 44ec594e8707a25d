package main

import (
	"errors"
	"os"

	"github.com/autosummary-dev/mdbook-autosummary/internal/cli"
	"github.com/autosummary-dev/mdbook-autosummary/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	if err := cli.NewRootCommand(version).Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		logging.Error(err.Error())
		os.Exit(1)
	}
}
