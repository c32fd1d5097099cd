package records

import (
	"iter"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Walker turns the extracted text of a page into records.
type Walker struct {
	matcher *Matcher
}

// NewWalker returns a walker that matches lines with m.
func NewWalker(m *Matcher) *Walker {
	if m == nil {
		m = NewMatcher()
	}
	return &Walker{matcher: m}
}

// Walk yields the records found in text in line order. Pages without
// extractable text arrive as "" and yield nothing.
//
// Lines are trimmed and composed to NFC before matching.
func (w *Walker) Walk(text string) iter.Seq[Record] {
	return func(yield func(Record) bool) {
		if text == "" {
			return
		}
		for line := range strings.SplitSeq(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			rec, ok := w.matcher.Match(norm.NFC.String(line))
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}
