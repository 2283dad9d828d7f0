package format

import (
	"regexp"
	"strings"
)

// ClauseKind discriminates how a recognized clause participates in alignment.
type ClauseKind int

const (
	// KindClause is an ordinary left clause, right-aligned to the primary river.
	KindClause ClauseKind = iota

	// KindLogical marks AND/OR, which open their own lines but always align
	// against the primary river regardless of subquery depth.
	KindLogical

	// KindCase marks the CASE family. Everything except the bare CASE keyword
	// aligns to the secondary river.
	KindCase
)

// ClauseSpec is one entry in the ordered keyword table: the pattern words it
// matches (case-insensitive, whitespace-normalized) and the canonical display
// text it produces.
type ClauseSpec struct {
	Words   []string
	Display string
	Kind    ClauseKind

	// Splits reports whether the keyword opens a new logical line when it
	// appears mid-stream. AS is recognized for the clause inventory but must
	// never break "id AS user_id" style aliases apart.
	Splits bool
}

// clauseTable is tried in order, so longer phrases out-rank the shorter
// phrases they subsume (FULL OUTER JOIN before FULL JOIN before JOIN).
var clauseTable = []ClauseSpec{
	{Words: []string{"FULL", "OUTER", "JOIN"}, Display: "FULL OUTER JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"LEFT", "OUTER", "JOIN"}, Display: "LEFT OUTER JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"RIGHT", "OUTER", "JOIN"}, Display: "RIGHT OUTER JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"CREATE", "TEMP", "TABLE"}, Display: "CREATE TEMP TABLE", Kind: KindClause, Splits: true},
	{Words: []string{"SELECT", "DISTINCT"}, Display: "SELECT DISTINCT", Kind: KindClause, Splits: true},
	{Words: []string{"INNER", "JOIN"}, Display: "INNER JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"LEFT", "JOIN"}, Display: "LEFT JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"RIGHT", "JOIN"}, Display: "RIGHT JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"FULL", "JOIN"}, Display: "FULL JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"CROSS", "JOIN"}, Display: "CROSS JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"GROUP", "BY"}, Display: "GROUP BY", Kind: KindClause, Splits: true},
	{Words: []string{"ORDER", "BY"}, Display: "ORDER BY", Kind: KindClause, Splits: true},
	{Words: []string{"UNION", "ALL"}, Display: "UNION ALL", Kind: KindClause, Splits: true},
	{Words: []string{"INSERT", "INTO"}, Display: "INSERT INTO", Kind: KindClause, Splits: true},
	{Words: []string{"CREATE", "TABLE"}, Display: "CREATE TABLE", Kind: KindClause, Splits: true},
	{Words: []string{"CASE", "WHEN"}, Display: "CASE WHEN", Kind: KindCase, Splits: true},
	{Words: []string{"SELECT"}, Display: "SELECT", Kind: KindClause, Splits: true},
	{Words: []string{"FROM"}, Display: "FROM", Kind: KindClause, Splits: true},
	{Words: []string{"WHERE"}, Display: "WHERE", Kind: KindClause, Splits: true},
	{Words: []string{"HAVING"}, Display: "HAVING", Kind: KindClause, Splits: true},
	{Words: []string{"LIMIT"}, Display: "LIMIT", Kind: KindClause, Splits: true},
	{Words: []string{"JOIN"}, Display: "JOIN", Kind: KindClause, Splits: true},
	{Words: []string{"UNION"}, Display: "UNION", Kind: KindClause, Splits: true},
	{Words: []string{"WITH"}, Display: "WITH", Kind: KindClause, Splits: true},
	{Words: []string{"AS"}, Display: "AS", Kind: KindClause, Splits: false},
	{Words: []string{"UPDATE"}, Display: "UPDATE", Kind: KindClause, Splits: true},
	{Words: []string{"SET"}, Display: "SET", Kind: KindClause, Splits: true},
	{Words: []string{"DELETE"}, Display: "DELETE", Kind: KindClause, Splits: true},
	{Words: []string{"DECLARE"}, Display: "DECLARE", Kind: KindClause, Splits: true},
	{Words: []string{"DO"}, Display: "DO", Kind: KindClause, Splits: true},
	{Words: []string{"AND"}, Display: "AND", Kind: KindLogical, Splits: true},
	{Words: []string{"OR"}, Display: "OR", Kind: KindLogical, Splits: true},
	{Words: []string{"CASE"}, Display: "CASE", Kind: KindCase, Splits: true},
	{Words: []string{"WHEN"}, Display: "WHEN", Kind: KindCase, Splits: true},
	{Words: []string{"THEN"}, Display: "THEN", Kind: KindCase, Splits: true},
	{Words: []string{"ELSE"}, Display: "ELSE", Kind: KindCase, Splits: true},
	{Words: []string{"END"}, Display: "END", Kind: KindCase, Splits: true},
}

// clauseRegexps holds one compiled pattern per table entry, in table order,
// used for the whole-document inventory scan.
var clauseRegexps = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(clauseTable))
	for i, spec := range clauseTable {
		res[i] = regexp.MustCompile(`(?i)\b` + strings.Join(spec.Words, `\s+`) + `\b`)
	}
	return res
}()

// subqueryRegexps match a clause keyword immediately following an open
// parenthesis, the shape that introduces a parenthesized subquery.
var subqueryRegexps = func() []*regexp.Regexp {
	var res []*regexp.Regexp
	for _, spec := range clauseTable {
		if spec.Kind != KindClause {
			continue
		}
		res = append(res, regexp.MustCompile(`\(\s*(?i:`+strings.Join(spec.Words, `\s+`)+`)\b`))
	}
	return res
}()

// classify matches text against the table, anchored to the full candidate.
// Matching is case-insensitive and whitespace-normalized, so "group   by"
// classifies as GROUP BY.
func classify(text string) (ClauseSpec, bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ClauseSpec{}, false
	}

	for _, spec := range clauseTable {
		if len(spec.Words) != len(words) {
			continue
		}
		if wordsMatch(spec.Words, words) {
			return spec, true
		}
	}

	return ClauseSpec{}, false
}

// matchPhrase finds the longest table entry whose pattern is a prefix of
// words. It returns the entry and the number of words consumed. Table order
// guarantees compound keywords win over their single-word components.
func matchPhrase(words []string) (ClauseSpec, int, bool) {
	for _, spec := range clauseTable {
		if len(spec.Words) > len(words) {
			continue
		}
		if wordsMatch(spec.Words, words[:len(spec.Words)]) {
			return spec, len(spec.Words), true
		}
	}

	return ClauseSpec{}, 0, false
}

func wordsMatch(pattern, words []string) bool {
	for i, p := range pattern {
		if !strings.EqualFold(p, words[i]) {
			return false
		}
	}
	return true
}

// scanClauses collects the distinct canonical clause texts appearing anywhere
// in the (comment-stripped) document: every ordinary clause pattern found by
// a contains search, plus comma and AND/OR when they begin a line.
// CASE-family keywords feed the secondary inventory instead.
func scanClauses(doc string) []string {
	seen := make(map[string]bool)
	var texts []string

	add := func(text string) {
		if !seen[text] {
			seen[text] = true
			texts = append(texts, text)
		}
	}

	// AND/OR and commas join the inventory only when they begin a line; the
	// contains scan covers ordinary clauses.
	for i, spec := range clauseTable {
		if spec.Kind != KindClause {
			continue
		}
		if clauseRegexps[i].MatchString(doc) {
			add(spec.Display)
		}
	}

	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, ","):
			add(",")
		case hasWordPrefix(line, "AND"):
			add("AND")
		case hasWordPrefix(line, "OR"):
			add("OR")
		}
	}

	return texts
}

// scanCaseFamily reports whether any CASE-family keyword occurs in doc, and
// whether the compound "CASE WHEN" fragment occurs.
func scanCaseFamily(doc string) (present, compound bool) {
	for i, spec := range clauseTable {
		if spec.Kind != KindCase {
			continue
		}
		if clauseRegexps[i].MatchString(doc) {
			present = true
			if spec.Display == "CASE WHEN" {
				compound = true
			}
		}
	}
	return present, compound
}

// scanSubqueryClauses collects the distinct clause texts that appear
// immediately after an open parenthesis.
func scanSubqueryClauses(doc string) []string {
	seen := make(map[string]bool)
	var texts []string

	i := 0
	for _, spec := range clauseTable {
		if spec.Kind != KindClause {
			continue
		}
		if subqueryRegexps[i].MatchString(doc) && !seen[spec.Display] {
			seen[spec.Display] = true
			texts = append(texts, spec.Display)
		}
		i++
	}

	return texts
}

func hasWordPrefix(line, word string) bool {
	if len(line) <= len(word) {
		return strings.EqualFold(line, word)
	}
	return strings.EqualFold(line[:len(word)], word) && line[len(word)] == ' '
}
