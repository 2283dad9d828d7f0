// Package cmd provides the CLI commands for the riverfmt tool.
//
// The root command is a plain text filter: it reads SQL from standard input
// and writes the river-aligned result to standard output, exiting 1 when
// the input is empty or formatting fails. The fmt subcommand formats files
// or directory trees of .sql files, optionally in place with -w.
//
// Each command is implemented as a function returning a *cli.Command,
// following the urfave/cli/v3 pattern, and registered with the application
// through the fx module in fx.go. The formatter itself carries no
// configuration: output depends only on the input text.
package cmd
