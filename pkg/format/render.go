package format

import "strings"

// renderLines turns the logical-line sequence into rendered text lines. The
// subquery context is threaded explicitly as a parenthesis depth: per line
// it grows by the net open-paren count and is clamped at zero. Two merges
// consume a single token of lookahead: WHEN (or CASE WHEN) followed by THEN,
// and a close-paren line followed by a standalone semicolon.
func renderLines(lines []logicalLine, rp RiverPosition) []string {
	out := make([]string, 0, len(lines))
	depth := 0

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if isWhenLine(line) && i+1 < len(lines) && isThenLine(lines[i+1]) {
			merged := renderClause(line, rp, depth) + " THEN"
			if c := lines[i+1].content; c != "" {
				merged += " " + c
			}
			out = append(out, merged)
			depth = nextDepth(depth, line.content+lines[i+1].content)
			i++
			continue
		}

		if line.kind == lineCloseParen && i+1 < len(lines) && lines[i+1].kind == lineSemicolon {
			out = append(out, pad(rp.Primary+1)+");")
			depth = nextDepth(depth, ")")
			i++
			continue
		}

		out = append(out, renderLine(line, rp, depth))
		depth = nextDepth(depth, rawText(line))
	}

	return out
}

// renderLine renders a single logical line. It never fails: anything that
// matches no rule lands one column right of the primary river.
func renderLine(line logicalLine, rp RiverPosition, depth int) string {
	switch line.kind {
	case lineClause:
		return renderClause(line, rp, depth)
	case lineComma:
		if line.content == "" {
			return pad(rp.Primary-1) + ","
		}
		return pad(rp.Primary-1) + ", " + line.content
	case lineComment:
		return renderComment(line, rp)
	case lineOpenParen:
		return pad(rp.Primary+1) + "("
	case lineCloseParen:
		return pad(rp.Primary+1) + ")"
	case lineSemicolon:
		return pad(rp.Primary+1) + ";"
	default:
		return pad(rp.Primary+1) + line.content
	}
}

// renderClause right-aligns the clause keyword to its river and appends the
// clause body one space after it. CASE-family keywords (except the bare
// CASE) use the secondary river, as do ordinary clauses while the threaded
// parenthesis depth is positive. AND/OR stay on the primary river at any
// depth.
func renderClause(line logicalLine, rp RiverPosition, depth int) string {
	river := rp.Primary
	switch {
	case line.clause.Kind == KindCase && line.clause.Display != "CASE":
		river = rp.Secondary
	case line.clause.Kind == KindClause && depth > 0:
		river = rp.Secondary
	}

	content := line.content
	if strings.HasPrefix(line.clause.Display, "SELECT") {
		// Only the first projected item survives on a SELECT line. Lossy on
		// purpose: the behavior is load-bearing and documented, see the
		// idempotence test before changing it.
		if idx := strings.Index(content, ","); idx >= 0 {
			content = strings.TrimSpace(content[:idx])
		}
	}

	s := pad(river-len(line.clause.Display)) + line.clause.Display
	if content != "" {
		s += " " + content
	}
	return s
}

// renderComment normalizes the marker to "-- " and aligns the comment to the
// primary river. When the text after the marker begins with a recognized
// clause keyword, marker plus keyword are treated as one clause text for
// alignment, so commented-out clauses line up with live ones.
func renderComment(line logicalLine, rp RiverPosition) string {
	rest := strings.TrimSpace(strings.TrimPrefix(line.content, commentMarker))
	if rest == "" {
		return pad(rp.Primary-len(commentMarker)) + commentMarker
	}

	words := strings.Fields(rest)
	if spec, n, ok := matchPhrase(words); ok {
		text := commentMarker + " " + spec.Display
		s := pad(rp.Primary-len(text)) + text
		if remainder := strings.Join(words[n:], " "); remainder != "" {
			s += " " + remainder
		}
		return s
	}

	return pad(rp.Primary-len(commentMarker)) + commentMarker + " " + rest
}

func isWhenLine(line logicalLine) bool {
	return line.kind == lineClause &&
		(line.clause.Display == "WHEN" || line.clause.Display == "CASE WHEN")
}

func isThenLine(line logicalLine) bool {
	return line.kind == lineClause && line.clause.Display == "THEN"
}

// rawText is the text a line contributes to parenthesis-depth tracking.
// Comments never affect depth.
func rawText(line logicalLine) string {
	if line.kind == lineComment {
		return ""
	}
	return line.content
}

func nextDepth(depth int, text string) int {
	depth += strings.Count(text, "(") - strings.Count(text, ")")
	if depth < 0 {
		return 0
	}
	return depth
}

func pad(n int) string {
	if n < 0 {
		n = 0
	}
	return strings.Repeat(" ", n)
}
