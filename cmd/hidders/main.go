// Package main is the entry point for the hidders CLI.
package main

import (
	"os"

	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/cli"
	"github.com/HIDDERS-OFFICIAL/hidders-dev/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	if err := cli.NewRootCommand(info).Execute(); err != nil {
		logging.Default().Error("command failed", logging.FieldError, err)
		return 1
	}
	return 0
}
