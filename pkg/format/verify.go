package format

import (
	"regexp"
	"strings"
)

// Violation reports one rendered line whose primary river column is not
// whitespace. Line numbers are 1-based; Position is the zero-based column
// that was checked.
type Violation struct {
	Line     int
	Position int
	Text     string
}

var caseExemptRe = regexp.MustCompile(`(?i)\b(WHEN|THEN|ELSE|END)\b`)

// Verify is a non-corrective sanity pass over rendered output: the character
// at the primary river column must be a space on every line long enough to
// reach it. Lines carrying CASE-family keywords are exempt because they
// legitimately occupy the secondary column. Violations are advisory; the
// output is never altered.
func Verify(rendered string, rp RiverPosition) []Violation {
	var violations []Violation

	for i, line := range splitRendered(rendered) {
		if len(line) <= rp.Primary {
			continue
		}
		if line[rp.Primary] == ' ' {
			continue
		}
		if caseExemptRe.MatchString(line) {
			continue
		}
		violations = append(violations, Violation{
			Line:     i + 1,
			Position: rp.Primary,
			Text:     line,
		})
	}

	return violations
}

func splitRendered(rendered string) []string {
	if rendered == "" {
		return nil
	}
	return strings.Split(rendered, "\n")
}
