package cmd

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/riverfmt/riverfmt/pkg/consts"
	"github.com/riverfmt/riverfmt/pkg/format"
	"github.com/urfave/cli/v3"
)

// fmtCmd creates a CLI command for river-formatting SQL files. It provides
// goimports-like behavior: format a single file or a whole directory tree of
// .sql files, writing to stdout by default or back to the source files with
// the -w flag.
//
// Examples:
//
//	# Format single file to stdout
//	riverfmt fmt query.sql
//
//	# Format single file in-place
//	riverfmt fmt -w query.sql
//
//	# Format all SQL files in a directory tree in-place
//	riverfmt fmt -w queries/
func fmtCmd() *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			return formatPath(cmd.Args().First(), cmd.Bool("write"), cmd.Writer)
		},
	}
}

// formatStream implements the default filter mode: read the whole input,
// format it, and write the result. Empty input is reported as an error with
// nothing echoed; any other failure echoes the original text to w first so
// no input is ever silently lost.
func formatStream(r io.Reader, w io.Writer) error {
	input, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "failed to read standard input")
	}

	sql := string(input)
	var buf strings.Builder
	if err := format.Format(&buf, sql); err != nil {
		if errors.Is(err, format.ErrEmptyInput) {
			return err
		}

		fmt.Fprint(w, sql)
		return errors.Wrap(err, "failed to format SQL")
	}

	warnRiverViolations(sql, buf.String())

	if _, err := fmt.Fprintln(w, buf.String()); err != nil {
		return errors.Wrap(err, "failed to write formatted SQL")
	}
	return nil
}

// warnRiverViolations surfaces the advisory verification pass. Warnings
// never change the output or the exit code.
func warnRiverViolations(sql, formatted string) {
	rivers := format.Analyze(sql)
	for _, v := range format.Verify(formatted, rivers) {
		slog.Warn("river line verification failed",
			"line", v.Line,
			"position", v.Position,
			"text", v.Text,
		)
	}
}

// formatPath dispatches to file or directory formatting based on the path
// type.
func formatPath(path string, writeBack bool, writer io.Writer) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to access path: %s", path)
	}

	if info.IsDir() {
		return formatDirectory(path, writeBack, writer)
	}

	return formatFile(path, writeBack, writer)
}

// formatDirectory recursively formats every .sql file under dir, in walk
// order for consistent behavior across platforms.
func formatDirectory(dir string, writeBack bool, writer io.Writer) error {
	var sqlFiles []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			sqlFiles = append(sqlFiles, path)
		}

		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to walk directory: %s", dir)
	}

	if len(sqlFiles) == 0 {
		return errors.Errorf("no SQL files found in directory: %s", dir)
	}

	for _, sqlFile := range sqlFiles {
		if err := formatFile(sqlFile, writeBack, writer); err != nil {
			return errors.Wrapf(err, "failed to format file: %s", sqlFile)
		}
	}

	return nil
}

// formatFile formats a single SQL file and either writes to stdout or back
// to the file.
func formatFile(path string, writeBack bool, writer io.Writer) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read file: %s", path)
	}

	var buf strings.Builder
	if err := format.Format(&buf, string(content)); err != nil {
		return errors.Wrapf(err, "failed to format SQL in file: %s", path)
	}

	formatted := buf.String() + "\n"

	if writeBack {
		if err := os.WriteFile(path, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", path)
		}
		return nil
	}

	if _, err := fmt.Fprint(writer, formatted); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}

	return nil
}
