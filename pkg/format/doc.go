// Package format reformats raw SQL source text into a column-aligned "river"
// layout: clause keywords (SELECT, FROM, WHERE, JOIN, ...) are right-aligned
// so their trailing edge touches a single global column, and every clause
// body begins one column to its right.
//
// There is no parser behind this. Formatting is driven entirely by an
// ordered keyword table and positional arithmetic, which keeps the engine
// total over its input: constructs it does not recognize land one column
// right of the river instead of failing.
//
// The pipeline runs in two phases. Analyze scans the whole document once and
// derives the primary river column (and a secondary column for CASE blocks
// and parenthesized subqueries) from every clause keyword found anywhere in
// the input. Rendering then splits the text into logical lines and aligns
// each one against those fixed columns. The global pass is mandatory:
// multiple statements in one document share a single pair of river columns,
// so identical clause text always aligns identically.
//
// Usage:
//
//	// Object API
//	formatter := format.New()
//	var buf bytes.Buffer
//	err := formatter.Format(&buf, "SELECT a, b FROM t WHERE x = 1")
//
//	// Functional API
//	err = format.Format(&buf, sql)
//
//	// Advisory verification of rendered output
//	violations := format.Verify(buf.String(), format.Analyze(sql))
//
// Verify never alters output; it reports lines whose primary river column is
// not whitespace so callers can surface them as warnings.
package format
