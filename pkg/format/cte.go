package format

import (
	"regexp"
	"strings"
)

// CTEEntry tracks one common-table-expression definition: its name and
// whether its body carries a bracket pair that must stay adjacent in the
// rendered output. An entry with an empty name is the synthetic "main query"
// that follows the last CTE.
type CTEEntry struct {
	Name      string
	HasParens bool
}

var (
	cteHeaderRe = regexp.MustCompile(`(?i)\b([A-Za-z_][A-Za-z0-9_]*)\s+AS\s*\(`)
	mainQueryRe = regexp.MustCompile(`(?i)\b(SELECT|INSERT\s+INTO|UPDATE|DELETE)\b`)
)

// scanCTEs inventories name-AS-parenthesized-body definitions in the
// (comment-stripped) document, appending a synthetic main-query entry when
// top-level statement content follows the last CTE body.
func scanCTEs(doc string) []CTEEntry {
	matches := cteHeaderRe.FindAllStringSubmatchIndex(doc, -1)
	if len(matches) == 0 {
		return nil
	}

	entries := make([]CTEEntry, 0, len(matches)+1)
	for _, m := range matches {
		entries = append(entries, CTEEntry{Name: doc[m[2]:m[3]], HasParens: true})
	}

	last := matches[len(matches)-1]
	rest := doc[closingParen(doc, last[1]-1):]
	if mainQueryRe.MatchString(rest) {
		entries = append(entries, CTEEntry{})
	}

	return entries
}

// closingParen returns the index one past the paren that balances the open
// paren at start, or len(doc) when the document ends first.
func closingParen(doc string, start int) int {
	depth := 0
	for i := start; i < len(doc); i++ {
		switch doc[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(doc)
}

// postprocessBrackets runs after all lines are rendered. It merges a bare
// open-paren line onto a preceding line ending in AS, and, when the document
// holds two or more CTE entries, inserts a blank separator line between a
// closing bracket and the sibling CTE or main query that follows it.
func postprocessBrackets(rendered []string, entries []CTEEntry) []string {
	merged := make([]string, 0, len(rendered))
	for _, line := range rendered {
		if strings.TrimSpace(line) == "(" && len(merged) > 0 {
			prev := strings.ToUpper(strings.TrimSpace(merged[len(merged)-1]))
			if prev == "AS" || strings.HasSuffix(prev, " AS") {
				merged[len(merged)-1] += " ("
				continue
			}
		}
		merged = append(merged, line)
	}

	if len(entries) < 2 {
		return merged
	}

	out := make([]string, 0, len(merged)+len(entries))
	for i, line := range merged {
		out = append(out, line)

		trimmed := strings.TrimSpace(line)
		if trimmed != ")" && trimmed != ");" {
			continue
		}
		if i+1 < len(merged) && startsSibling(merged[i+1]) {
			out = append(out, "")
		}
	}

	return out
}

// startsSibling reports whether a rendered line opens the next CTE
// definition (comma continuation) or the main query (top-level statement
// clause).
func startsSibling(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, ",") {
		return true
	}

	spec, _, ok := matchPhrase(strings.Fields(trimmed))
	if !ok {
		return false
	}
	switch spec.Display {
	case "SELECT", "SELECT DISTINCT", "INSERT INTO", "UPDATE", "DELETE", "WITH",
		"CREATE TABLE", "CREATE TEMP TABLE":
		return true
	}
	return false
}
