package records

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Captures holds the text matched by named groups during a parse.
type Captures map[string]string

// Parser matches a prefix of in starting at byte offset pos. On success it
// hands the end offset to next. When next rejects, the parser tries its
// remaining alternatives before giving up, so a composed grammar backtracks
// the same way a regular expression engine would.
type Parser func(in string, pos int, caps Captures, next func(end int) bool) bool

// RuneClass reports whether a rune belongs to a character class.
type RuneClass func(r rune) bool

// Character classes used by the statement grammar.
var (
	Digit   RuneClass = func(r rune) bool { return r >= '0' && r <= '9' }
	Space   RuneClass = unicode.IsSpace
	Letter  RuneClass = func(r rune) bool { return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') }
	AnyRune RuneClass = func(r rune) bool { return r != '\n' }
)

// OneOf returns the class of runes contained in set.
func OneOf(set string) RuneClass {
	return func(r rune) bool { return strings.ContainsRune(set, r) }
}

// Seq matches parsers one after the other.
func Seq(parsers ...Parser) Parser {
	if len(parsers) == 0 {
		return func(_ string, pos int, _ Captures, next func(int) bool) bool {
			return next(pos)
		}
	}
	head, tail := parsers[0], Seq(parsers[1:]...)
	return func(in string, pos int, caps Captures, next func(int) bool) bool {
		return head(in, pos, caps, func(end int) bool {
			return tail(in, end, caps, next)
		})
	}
}

// Optional tries p first and falls back to matching nothing.
func Optional(p Parser) Parser {
	return func(in string, pos int, caps Captures, next func(int) bool) bool {
		if p(in, pos, caps, next) {
			return true
		}
		return next(pos)
	}
}

// Capture stores the text matched by p under name. The previous value is
// restored when the rest of the grammar rejects the match.
func Capture(name string, p Parser) Parser {
	return func(in string, pos int, caps Captures, next func(int) bool) bool {
		return p(in, pos, caps, func(end int) bool {
			prev, had := caps[name]
			caps[name] = in[pos:end]
			if next(end) {
				return true
			}
			if had {
				caps[name] = prev
			} else {
				delete(caps, name)
			}
			return false
		})
	}
}

// Literal matches s exactly.
func Literal(s string) Parser {
	return func(in string, pos int, _ Captures, next func(int) bool) bool {
		if !strings.HasPrefix(in[pos:], s) {
			return false
		}
		return next(pos + len(s))
	}
}

// Exactly matches n runes of class.
func Exactly(class RuneClass, n int) Parser {
	return func(in string, pos int, _ Captures, next func(int) bool) bool {
		end := pos
		for i := 0; i < n; i++ {
			if end >= len(in) {
				return false
			}
			r, size := utf8.DecodeRuneInString(in[end:])
			if !class(r) {
				return false
			}
			end += size
		}
		return next(end)
	}
}

// Greedy matches the longest run of class with at least atLeast runes, giving
// runes back one at a time while the rest of the grammar fails.
func Greedy(class RuneClass, atLeast int) Parser {
	return func(in string, pos int, _ Captures, next func(int) bool) bool {
		ends := runEnds(in, pos, class)
		for i := len(ends); i >= atLeast; i-- {
			if next(endAt(ends, pos, i)) {
				return true
			}
		}
		return false
	}
}

// Lazy matches the shortest run of class with at least atLeast runes, extending
// it one rune at a time until the rest of the grammar succeeds.
func Lazy(class RuneClass, atLeast int) Parser {
	return func(in string, pos int, _ Captures, next func(int) bool) bool {
		ends := runEnds(in, pos, class)
		for i := atLeast; i <= len(ends); i++ {
			if next(endAt(ends, pos, i)) {
				return true
			}
		}
		return false
	}
}

// Whitespace matches a required whitespace run.
func Whitespace() Parser { return Greedy(Space, 1) }

// OptionalWhitespace matches any whitespace run, including none.
func OptionalWhitespace() Parser { return Greedy(Space, 0) }

// Search tries p at every rune boundary of in, left to right, and returns
// the captures of the first match.
func Search(p Parser, in string) (Captures, bool) {
	accept := func(int) bool { return true }
	for pos := 0; ; {
		caps := Captures{}
		if p(in, pos, caps, accept) {
			return caps, true
		}
		if pos >= len(in) {
			return nil, false
		}
		_, size := utf8.DecodeRuneInString(in[pos:])
		pos += size
	}
}

// runEnds returns the end offset after each consecutive rune of class.
func runEnds(in string, pos int, class RuneClass) []int {
	var ends []int
	for end := pos; end < len(in); {
		r, size := utf8.DecodeRuneInString(in[end:])
		if !class(r) {
			break
		}
		end += size
		ends = append(ends, end)
	}
	return ends
}

func endAt(ends []int, pos, n int) int {
	if n == 0 {
		return pos
	}
	return ends[n-1]
}
