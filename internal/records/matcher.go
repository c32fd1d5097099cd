package records

import "strings"

// Group names used by the statement grammar.
const (
	groupProcess   = "process"
	groupNature    = "nature"
	groupDate1     = "date1"
	groupOrder     = "order"
	groupPeriod    = "period"
	groupDate2     = "date2"
	groupCondition = "condition"
	groupPaid      = "paid"
	groupBalance   = "balance"
)

var (
	// NNNNNNN-NN.NNNN.N.NN.NNNN
	processIDToken = Seq(
		Exactly(Digit, 7), Literal("-"),
		Exactly(Digit, 2), Literal("."),
		Exactly(Digit, 4), Literal("."),
		Exactly(Digit, 1), Literal("."),
		Exactly(Digit, 2), Literal("."),
		Exactly(Digit, 4),
	)

	natureToken = Exactly(OneOf("OA"), 1)

	// DD/MM/YYYY
	dateToken = Seq(
		Exactly(Digit, 2), Literal("/"),
		Exactly(Digit, 2), Literal("/"),
		Exactly(Digit, 4),
	)

	// HH:MM:SS:mmm or HH:MM:SS.mmm, recognised and dropped.
	clockToken = Seq(
		Exactly(Digit, 2), Literal(":"),
		Exactly(Digit, 2), Literal(":"),
		Exactly(Digit, 2), Exactly(OneOf(":."), 1),
		Exactly(Digit, 3),
	)

	orderSuffix = Seq(
		OptionalWhitespace(), Literal("-"),
		OptionalWhitespace(), Literal("Nº"),
		OptionalWhitespace(), Capture(groupOrder, Greedy(Digit, 1)),
	)

	periodToken  = Seq(Greedy(Digit, 1), Literal("/"), Exactly(Digit, 4))
	periodSuffix = Seq(Literal("-"), Exactly(Letter, 1))

	amountToken = Greedy(OneOf("0123456789.,-"), 1)

	// amountTail is the condition text followed by the two amount columns.
	// The condition stops at the first point where the amounts still match.
	amountTail = Seq(
		Capture(groupCondition, Lazy(AnyRune, 1)), Whitespace(),
		Capture(groupPaid, amountToken), Whitespace(),
		Capture(groupBalance, amountToken),
	)

	statementLine = Seq(
		Capture(groupProcess, processIDToken), Whitespace(),
		Capture(groupNature, natureToken), Whitespace(),
		Capture(groupDate1, dateToken),
		Optional(Seq(Whitespace(), clockToken)),
		Optional(orderSuffix), Whitespace(),
		Capture(groupPeriod, periodToken), Optional(periodSuffix), Whitespace(),
		Capture(groupDate2, dateToken), Whitespace(),
		amountTail,
	)
)

// Matcher recognises statement lines.
type Matcher struct {
	grammar Parser
}

// NewMatcher returns a matcher for the statement line grammar.
func NewMatcher() *Matcher {
	return &Matcher{grammar: statementLine}
}

// Match extracts a record from line. Lines that do not satisfy the whole
// grammar report false; that is the normal outcome for headers, footers and
// page numbers.
func (m *Matcher) Match(line string) (Record, bool) {
	caps, ok := Search(m.grammar, line)
	if !ok {
		return Record{}, false
	}
	return Record{
		ProcessID:   caps[groupProcess],
		Nature:      caps[groupNature],
		Date1:       caps[groupDate1],
		OrderNumber: caps[groupOrder],
		Period:      caps[groupPeriod],
		Date2:       caps[groupDate2],
		Condition:   strings.TrimSpace(caps[groupCondition]),
		ValuePaid:   caps[groupPaid],
		Balance:     caps[groupBalance],
	}, true
}
