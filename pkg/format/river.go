package format

import "strings"

// Alignment constants. These are contractual: the margin and the secondary
// gaps are fixed properties of the river layout, not tunables.
const (
	// leftMargin is the fixed margin reserved ahead of the longest clause.
	leftMargin = 7

	// caseGap is the distance from the primary to the secondary river when a
	// CASE block drives the secondary alignment. It also serves as the
	// default when no CASE or subquery construct is present.
	caseGap = 10

	// subqueryGap is added beyond the longest subquery-introducing clause
	// when only subqueries drive the secondary alignment.
	subqueryGap = 4
)

// RiverPosition holds the two alignment columns computed for a document.
// Primary is the column every ordinary clause keyword ends at; Secondary is
// used by CASE-family keywords and by clauses nested inside parentheses.
//
// Both values are computed once per document and shared by every statement
// in it, so identical clause text always aligns identically throughout.
type RiverPosition struct {
	Primary   int
	Secondary int
}

// Analyze scans the entire document exactly once and derives both river
// columns. It must run before any line is rendered: the columns depend on
// the global maximum clause length across the whole input.
func Analyze(sql string) RiverPosition {
	doc := stripComments(sql)

	primary := leftMargin
	if max := maxLength(scanClauses(doc)); max > 0 {
		primary = leftMargin + max
	}

	secondary := primary + caseGap
	casePresent, caseCompound := scanCaseFamily(doc)
	if !caseCompound {
		if subs := scanSubqueryClauses(doc); len(subs) > 0 && !casePresent {
			secondary = primary + maxLength(subs) + subqueryGap
		}
	}

	return RiverPosition{Primary: primary, Secondary: secondary}
}

// stripComments removes line comments so commented-out keywords never
// influence the clause inventory.
func stripComments(sql string) string {
	lines := strings.Split(sql, "\n")
	for i, line := range lines {
		if idx := strings.Index(line, commentMarker); idx >= 0 {
			lines[i] = line[:idx]
		}
	}
	return strings.Join(lines, "\n")
}

func maxLength(texts []string) int {
	max := 0
	for _, t := range texts {
		if len(t) > max {
			max = len(t)
		}
	}
	return max
}
