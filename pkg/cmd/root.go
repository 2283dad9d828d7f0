package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run creates and executes the main riverfmt CLI application. The default
// action reads SQL from standard input and writes the river-aligned result
// to standard output; subcommands cover file and directory formatting.
//
// Exit behavior follows the filter contract: 0 on success, 1 when the input
// is empty or when formatting fails. On failure the diagnostic goes to the
// log stream and, for anything other than empty input, the original
// unformatted text has already been echoed so no input is lost.
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := &cli.Command{
		Name:  "riverfmt",
		Usage: "Reformat SQL into a column-aligned river layout",
		Description: `riverfmt right-aligns every clause keyword (SELECT, FROM, WHERE, ...)
to a single shared column, the "river", with clause bodies starting one
column to its right. It reads SQL from standard input by default; the fmt
subcommand formats files or directory trees instead.`,
		Version: p.Version.Version,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return formatStream(cmd.Reader, cmd.Writer)
		},
		Commands: p.Commands,
	}

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}
