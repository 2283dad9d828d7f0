package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyInput is returned when the document is empty or whitespace-only.
// Callers treat it as a deliberate no-op case rather than producing empty
// output.
var ErrEmptyInput = errors.New("no SQL input provided")

// Formatter reformats raw SQL text into the river layout. It holds no state
// between documents: every call runs the full two-phase pipeline (global
// analysis, then line rendering) against the text it receives.
type Formatter struct{}

// New creates a new Formatter.
func New() *Formatter {
	return &Formatter{}
}

// Format writes the river-aligned rendition of sql to w. It returns
// ErrEmptyInput for empty or whitespace-only documents and otherwise never
// fails on the content itself: unrecognized constructs fall through to the
// default alignment rule.
func (f *Formatter) Format(w io.Writer, sql string) error {
	if strings.TrimSpace(sql) == "" {
		return ErrEmptyInput
	}

	rivers := Analyze(sql)
	rendered := renderLines(splitLines(sql), rivers)
	rendered = postprocessBrackets(rendered, scanCTEs(stripComments(sql)))

	if _, err := io.WriteString(w, strings.Join(rendered, "\n")); err != nil {
		return errors.Wrap(err, "failed to write formatted SQL")
	}
	return nil
}

// Format writes the river-aligned rendition of sql to w (convenience
// function).
func Format(w io.Writer, sql string) error {
	return New().Format(w, sql)
}
