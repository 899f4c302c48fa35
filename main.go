package main

import (
	"os"

	"github.com/cfkit-labs/cfkit/internal/cli"
	"github.com/cfkit-labs/cfkit/internal/errs"
)

// version, commit, and date are set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := cli.Execute(version, commit, date); err != nil {
		os.Exit(errs.ExitCode(err))
	}
}
