// Package testutil provides helpers for exercising CLI commands in tests.
package testutil

import (
	"context"
	"testing"

	"github.com/urfave/cli/v3"
)

// RunCommand executes a command under a throwaway test application.
func RunCommand(t *testing.T, command *cli.Command, args []string) error {
	t.Helper()
	return RunCommandWithContext(context.Background(), t, command, args)
}

// RunCommandWithContext executes a command with a custom context.
func RunCommandWithContext(ctx context.Context, t *testing.T, command *cli.Command, args []string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "test",
		Commands: []*cli.Command{command},
	}

	fullArgs := append([]string{"test", command.Name}, args...)

	return app.Run(ctx, fullArgs)
}
