package format_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/riverfmt/riverfmt/pkg/format"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/golden"
)

func TestGoldenFiles(t *testing.T) {
	// Find all *.in.sql files
	pattern := filepath.Join("testdata", "*.in.sql")
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.NotEmpty(t, matches, "No *.in.sql files found in testdata directory")

	for _, inputFile := range matches {
		// Derive output filename: "example.in.sql" -> "example.sql"
		basename := filepath.Base(inputFile)
		outputName := strings.TrimSuffix(basename, ".in.sql") + ".sql"

		t.Run(outputName, func(t *testing.T) {
			inputSQL, err := os.ReadFile(inputFile)
			require.NoError(t, err, "Failed to read input file %s", inputFile)

			var buf strings.Builder
			err = Format(&buf, string(inputSQL))
			require.NoError(t, err)

			// Add final newline for proper file ending
			result := buf.String() + "\n"

			golden.Assert(t, result, outputName)
		})
	}
}
