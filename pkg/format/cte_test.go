package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanCTEs(t *testing.T) {
	t.Run("two ctes and a main query", func(t *testing.T) {
		entries := scanCTEs("WITH a AS (SELECT 1 FROM t), b AS (SELECT 2 FROM u) SELECT x FROM a;")
		require.Len(t, entries, 3)
		require.Equal(t, CTEEntry{Name: "a", HasParens: true}, entries[0])
		require.Equal(t, CTEEntry{Name: "b", HasParens: true}, entries[1])
		require.Equal(t, CTEEntry{}, entries[2])
	})

	t.Run("single cte without main query", func(t *testing.T) {
		entries := scanCTEs("WITH a AS (SELECT 1 FROM t)")
		require.Len(t, entries, 1)
		require.Equal(t, "a", entries[0].Name)
	})

	t.Run("alias without brackets is not a cte", func(t *testing.T) {
		require.Empty(t, scanCTEs("SELECT id AS user_id FROM t"))
	})

	t.Run("no ctes", func(t *testing.T) {
		require.Empty(t, scanCTEs("SELECT a FROM t"))
	})
}

func TestPostprocessBrackets_MergesOpenParenOntoAS(t *testing.T) {
	lines := []string{
		"         WITH a AS",
		"              (",
		"                 SELECT 1",
	}

	out := postprocessBrackets(lines, nil)
	require.Equal(t, []string{
		"         WITH a AS (",
		"                 SELECT 1",
	}, out)
}

func TestPostprocessBrackets_LeavesSubqueryParenAlone(t *testing.T) {
	lines := []string{
		"         FROM",
		"              (",
		"                 SELECT b",
	}

	require.Equal(t, lines, postprocessBrackets(lines, nil))
}

func TestPostprocessBrackets_BlankSeparators(t *testing.T) {
	entries := []CTEEntry{
		{Name: "a", HasParens: true},
		{Name: "b", HasParens: true},
		{},
	}

	lines := []string{
		"         WITH a AS (",
		"                 SELECT 1",
		"              )",
		"            , b AS (",
		"                 SELECT 2",
		"              )",
		"       SELECT x",
	}

	out := postprocessBrackets(lines, entries)
	require.Equal(t, []string{
		"         WITH a AS (",
		"                 SELECT 1",
		"              )",
		"",
		"            , b AS (",
		"                 SELECT 2",
		"              )",
		"",
		"       SELECT x",
	}, out)
}

func TestPostprocessBrackets_FewerThanTwoEntries(t *testing.T) {
	entries := []CTEEntry{{Name: "a", HasParens: true}}

	lines := []string{
		"         WITH a AS (",
		"                 SELECT 1",
		"              )",
		"       SELECT x",
	}

	require.Equal(t, lines, postprocessBrackets(lines, entries))
}
