// Package main provides the onboarding CLI: an interactive profile form, a
// non-interactive submit and a single corporation number check.
package main

import (
	"context"
	"io"
	"os"
)

const version = "0.1.0"

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// run executes one command line. The metrics server and meter provider started
// by the pre-run are released even when the command fails.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd, teardown := newRootCmd()
	defer teardown()

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}
