// Package main provides the entry point for the devops CLI.
package main

import (
	"context"
	"os"

	"github.com/rrajen/sfdx-utility-plugins/internal/cli"
	"github.com/rrajen/sfdx-utility-plugins/internal/signal"
)

// Set at build time via ldflags.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	h := signal.NewHandler(context.Background())
	err := cli.Execute(h.Context(), cli.BuildInfo{Version: version, Commit: commit, Date: date})
	interrupted := h.Received() != nil
	h.Stop()

	if interrupted {
		os.Exit(signal.ExitInterrupted)
	}
	os.Exit(cli.ExitCodeForError(err))
}
