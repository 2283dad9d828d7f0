package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnalyze_Primary(t *testing.T) {
	tests := []struct {
		name    string
		sql     string
		primary int
	}{
		{name: "three clauses", sql: "SELECT a, b FROM t WHERE x = 1", primary: 13},
		{name: "single short clause", sql: "FROM a", primary: 11},
		{name: "compound clause dominates", sql: "SELECT a FROM t GROUP BY x", primary: 15},
		{name: "join variant dominates", sql: "SELECT a FROM t FULL OUTER JOIN u ON a = b", primary: 22},
		{name: "empty input", sql: "", primary: 7},
		{name: "whitespace only", sql: "   \n\t", primary: 7},
		{name: "no recognizable clauses", sql: "hello world", primary: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.primary, Analyze(tt.sql).Primary)
		})
	}
}

func TestAnalyze_GlobalSharing(t *testing.T) {
	// Two statements in one document share one river: the shorter
	// statement's clauses pad to the column the longer vocabulary dictates.
	short := "SELECT a FROM t"
	long := "SELECT b FROM u FULL OUTER JOIN v ON b = c"

	require.Equal(t, 13, Analyze(short).Primary)
	require.Equal(t, 22, Analyze(long).Primary)
	require.Equal(t, 22, Analyze(short+";\n"+long).Primary)
}

func TestAnalyze_Secondary(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		secondary int
	}{
		{
			name:      "case when overrides",
			sql:       "SELECT x FROM t WHERE y = CASE WHEN a THEN 1 ELSE 0 END",
			secondary: 23, // primary 13 + fixed gap 10
		},
		{
			name:      "subquery formula",
			sql:       "SELECT a FROM (SELECT b FROM t2) x",
			secondary: 23, // primary 13 + len(SELECT) + 4
		},
		{
			name:      "subquery formula uses the longest subquery clause",
			sql:       "SELECT a FROM t WHERE EXISTS (WHERE q)",
			secondary: 22, // primary 13 + len(WHERE) + 4
		},
		{
			name:      "neither family defaults to the case gap",
			sql:       "SELECT a FROM t",
			secondary: 23,
		},
		{
			name:      "case when overrides the subquery formula",
			sql:       "SELECT a FROM t WHERE EXISTS (WHERE q) AND CASE WHEN b THEN 1 END = 1",
			secondary: 23, // the fixed gap wins over 13 + len(WHERE) + 4
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.secondary, Analyze(tt.sql).Secondary)
		})
	}
}

func TestAnalyze_CommentsIgnored(t *testing.T) {
	// Commented-out keywords never influence the inventory.
	rivers := Analyze("SELECT a FROM t -- FULL OUTER JOIN happens elsewhere")
	require.Equal(t, 13, rivers.Primary)

	rivers = Analyze("-- just a comment")
	require.Equal(t, 7, rivers.Primary)
}

func TestStripComments(t *testing.T) {
	require.Equal(t, "SELECT a \nFROM t", stripComments("SELECT a -- keep going\nFROM t"))
	require.Equal(t, "", stripComments("-- everything is commented"))
}
