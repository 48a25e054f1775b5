// Package main is the entry point for the create-ts-cli-app CLI.
//
// All functionality lives in the internal/cli package. Build-time
// variables (version, commit, date) are injected via ldflags and default
// to "dev", "none", and "unknown" during development.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/canseyran/create-ts-cli-app/internal/cli"
)

// version, commit, and date are set at build time via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.Version = version
	cli.Commit = commit
	cli.Date = date

	// An interrupt cancels the context, which kills a running git clone
	// or package-manager child instead of leaving it orphaned.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := cli.NewRootCommand()
	rootCmd.SetContext(ctx)
	code := cli.Run(rootCmd)

	stop()
	os.Exit(int(code))
}
