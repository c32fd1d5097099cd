package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAll(p Parser, in string) (Captures, bool) {
	caps := Captures{}
	ok := p(in, 0, caps, func(end int) bool { return end == len(in) })
	return caps, ok
}

func TestGreedyAndLazy(t *testing.T) {
	word := Capture("w", Greedy(Letter, 1))
	caps, ok := parseAll(Seq(word, Greedy(Letter, 0)), "abc")
	require.True(t, ok)
	assert.Equal(t, "abc", caps["w"])

	lazy := Capture("w", Lazy(Letter, 1))
	caps, ok = parseAll(Seq(lazy, Greedy(Letter, 0)), "abc")
	require.True(t, ok)
	assert.Equal(t, "a", caps["w"])
}

func TestGreedyGivesBack(t *testing.T) {
	p := Seq(Capture("digits", Greedy(Digit, 1)), Literal("9"))
	caps, ok := parseAll(p, "12349")
	require.True(t, ok)
	assert.Equal(t, "1234", caps["digits"])
}

func TestOptionalRestoresCaptures(t *testing.T) {
	p := Seq(Optional(Capture("x", Literal("a"))), Literal("ab"))
	caps, ok := parseAll(p, "ab")
	require.True(t, ok)
	_, had := caps["x"]
	assert.False(t, had, "capture from the abandoned branch must not leak")

	caps, ok = parseAll(p, "aab")
	require.True(t, ok)
	assert.Equal(t, "a", caps["x"])
}

func TestExactly(t *testing.T) {
	p := Exactly(Digit, 3)
	_, ok := parseAll(p, "123")
	assert.True(t, ok)
	_, ok = parseAll(p, "12")
	assert.False(t, ok)
	_, ok = parseAll(p, "12a")
	assert.False(t, ok)
}

func TestExactlyCountsRunes(t *testing.T) {
	_, ok := parseAll(Exactly(AnyRune, 2), "Nº")
	assert.True(t, ok)
}

func TestSearchLeftmost(t *testing.T) {
	caps, ok := Search(Capture("n", Exactly(Digit, 2)), "ab 12 34")
	require.True(t, ok)
	assert.Equal(t, "12", caps["n"])

	_, ok = Search(Literal("zz"), "ab 12 34")
	assert.False(t, ok)

	caps, ok = Search(Greedy(Digit, 0), "")
	assert.True(t, ok)
	assert.Empty(t, caps)
}

func TestAmountTail(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		condition string
		paid      string
		balance   string
		ok        bool
	}{
		{
			name:      "plain description",
			in:        "Pagamento de salario 1.500,00 2.300,00",
			condition: "Pagamento de salario",
			paid:      "1.500,00",
			balance:   "2.300,00",
			ok:        true,
		},
		{
			name:      "stops at first numeric pair",
			in:        "Parcela 2 de 3 100,00 50,00",
			condition: "Parcela 2 de",
			paid:      "3",
			balance:   "100,00",
			ok:        true,
		},
		{
			name:      "digits glued to words stay in the condition",
			in:        "Guia DJE123 10,00 0,00",
			condition: "Guia DJE123",
			paid:      "10,00",
			balance:   "0,00",
			ok:        true,
		},
		{
			name:      "negative amounts",
			in:        "Estorno -5,00 -5,00",
			condition: "Estorno",
			paid:      "-5,00",
			balance:   "-5,00",
			ok:        true,
		},
		{
			name: "single amount",
			in:   "Ajuste 100,00",
			ok:   false,
		},
		{
			name: "no condition",
			in:   "100,00 50,00",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := Captures{}
			ok := amountTail(tt.in, 0, caps, func(int) bool { return true })
			require.Equal(t, tt.ok, ok)
			if !tt.ok {
				return
			}
			assert.Equal(t, tt.condition, caps[groupCondition])
			assert.Equal(t, tt.paid, caps[groupPaid])
			assert.Equal(t, tt.balance, caps[groupBalance])
		})
	}
}
