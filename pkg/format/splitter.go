package format

import (
	"strings"
	"unicode"
)

// commentMarker introduces a line comment.
const commentMarker = "--"

type lineKind int

const (
	lineClause lineKind = iota
	lineComma
	lineSemicolon
	lineComment
	lineOpenParen
	lineCloseParen
	lineContent
)

// logicalLine is one unit of the line-splitting phase, destined to become
// exactly one rendered output line (or, after lookahead merges, part of one).
type logicalLine struct {
	kind    lineKind
	clause  ClauseSpec // valid when kind == lineClause
	content string
}

type tokenType int

const (
	tokWord tokenType = iota
	tokComma
	tokSemi
	tokComment
)

type token struct {
	typ  tokenType
	text string
}

// tokenize produces the raw token stream. Commas and semicolons are
// singleton tokens even when glued to a word; whitespace and newlines are
// discardable separators. A comment runs to the end of its physical line
// and is carried as a single token.
func tokenize(sql string) []token {
	var tokens []token

	for _, raw := range strings.Split(sql, "\n") {
		line := raw
		comment := ""
		if idx := strings.Index(line, commentMarker); idx >= 0 {
			comment = strings.TrimSpace(line[idx:])
			line = line[:idx]
		}

		var word strings.Builder
		flushWord := func() {
			if word.Len() > 0 {
				tokens = append(tokens, token{typ: tokWord, text: word.String()})
				word.Reset()
			}
		}

		for _, r := range line {
			switch {
			case r == ',':
				flushWord()
				tokens = append(tokens, token{typ: tokComma, text: ","})
			case r == ';':
				flushWord()
				tokens = append(tokens, token{typ: tokSemi, text: ";"})
			case unicode.IsSpace(r):
				flushWord()
			default:
				word.WriteRune(r)
			}
		}
		flushWord()

		if comment != "" {
			tokens = append(tokens, token{typ: tokComment, text: comment})
		}
	}

	return tokens
}

// lineBuilder accumulates the line currently being assembled.
type lineBuilder struct {
	active bool
	kind   lineKind
	clause ClauseSpec
	parts  []string
}

// splitLines re-tokenizes the document into logical lines. Each line is
// anchored by at most one clause keyword, a leading comma, a semicolon, a
// comment, a structural bracket, or free-form content. Compound keywords
// (GROUP BY, ORDER BY, UNION ALL, join variants, CASE WHEN) are fused by
// greedy lookahead before classification.
func splitLines(sql string) []logicalLine {
	tokens := tokenize(sql)

	var out []logicalLine
	var cur lineBuilder
	depth := 0 // structural brackets opened for subqueries and CTE bodies

	flush := func() {
		if cur.active {
			out = append(out, logicalLine{
				kind:    cur.kind,
				clause:  cur.clause,
				content: strings.Join(cur.parts, " "),
			})
			cur = lineBuilder{}
		}
	}
	emit := func(kind lineKind, content string) {
		flush()
		out = append(out, logicalLine{kind: kind, content: content})
	}
	appendWord := func(w string) {
		if !cur.active {
			cur = lineBuilder{active: true, kind: lineContent}
		}
		cur.parts = append(cur.parts, w)
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok.typ {
		case tokComment:
			emit(lineComment, tok.text)

		case tokComma:
			// SELECT keeps its projection list on one logical line so the
			// renderer can apply the first-item rule to it.
			if cur.active && cur.kind == lineClause && strings.HasPrefix(cur.clause.Display, "SELECT") {
				if len(cur.parts) == 0 {
					cur.parts = append(cur.parts, ",")
				} else {
					cur.parts[len(cur.parts)-1] += ","
				}
				continue
			}
			flush()
			cur = lineBuilder{active: true, kind: lineComma}

		case tokSemi:
			emit(lineSemicolon, ";")

		case tokWord:
			word := tok.text

			// Trailing close parens that terminate a structural bracket are
			// split off and emitted as standalone close-paren lines.
			closers := 0
			if depth > 0 {
				closers = unbalancedClosers(word)
				if closers > depth {
					closers = depth
				}
				word = word[:len(word)-closers]
			}

			// A structural "(" glued to the keyword it introduces.
			for len(word) > 1 && word[0] == '(' && startsClauseWord(word[1:]) {
				emit(lineOpenParen, "(")
				depth++
				word = word[1:]
			}
			if word == "(" && phraseStartsClause(peekWords(tokens, i+1, 3)) {
				emit(lineOpenParen, "(")
				depth++
				word = ""
			}

			if word != "" {
				words := append([]string{word}, peekWords(tokens, i+1, 2)...)
				if spec, n, ok := matchPhrase(words); ok && spec.Splits {
					flush()
					cur = lineBuilder{active: true, kind: lineClause, clause: spec}
					i += n - 1
				} else {
					appendWord(word)
				}
			}

			for ; closers > 0; closers-- {
				emit(lineCloseParen, ")")
				depth--
			}
		}
	}

	flush()
	return out
}

// peekWords returns up to n consecutive upcoming word-token texts starting
// at index i, stopping at the first non-word token.
func peekWords(tokens []token, i, n int) []string {
	var words []string
	for ; i < len(tokens) && len(words) < n; i++ {
		if tokens[i].typ != tokWord {
			break
		}
		words = append(words, tokens[i].text)
	}
	return words
}

// startsClauseWord reports whether the single word is a clause keyword that
// can introduce a parenthesized subquery.
func startsClauseWord(word string) bool {
	spec, ok := classify(word)
	return ok && spec.Kind == KindClause && spec.Splits
}

// phraseStartsClause reports whether the upcoming words begin with a clause
// keyword (possibly compound).
func phraseStartsClause(words []string) bool {
	if len(words) == 0 {
		return false
	}
	spec, _, ok := matchPhrase(words)
	return ok && spec.Kind == KindClause && spec.Splits
}

// unbalancedClosers counts how many of the word's trailing close parens are
// not balanced by open parens inside the same word, e.g. 1 for "t2)" and 0
// for "count(a)".
func unbalancedClosers(word string) int {
	opens := strings.Count(word, "(")
	closes := strings.Count(word, ")")
	unbalanced := closes - opens
	if unbalanced <= 0 {
		return 0
	}

	trailing := 0
	for i := len(word) - 1; i >= 0 && word[i] == ')'; i-- {
		trailing++
	}
	if unbalanced < trailing {
		return unbalanced
	}
	return trailing
}
