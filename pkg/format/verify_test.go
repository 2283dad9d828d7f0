package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	rivers := RiverPosition{Primary: 13, Secondary: 23}

	t.Run("clean output passes", func(t *testing.T) {
		rendered := strings.Join([]string{
			"       SELECT a",
			"         FROM t",
			"        WHERE x = 1",
		}, "\n")
		require.Empty(t, Verify(rendered, rivers))
	})

	t.Run("short lines always pass", func(t *testing.T) {
		require.Empty(t, Verify("FROM t", rivers))
	})

	t.Run("occupied river column is reported", func(t *testing.T) {
		bad := strings.Repeat("x", 20)
		violations := Verify("       SELECT a\n"+bad, rivers)
		require.Len(t, violations, 1)
		require.Equal(t, 2, violations[0].Line)
		require.Equal(t, 13, violations[0].Position)
		require.Equal(t, bad, violations[0].Text)
	})

	t.Run("case family lines are exempt", func(t *testing.T) {
		line := strings.Repeat("x", 20) + " THEN 1"
		require.Empty(t, Verify(line, rivers))
	})

	t.Run("empty output passes", func(t *testing.T) {
		require.Empty(t, Verify("", rivers))
	})
}
