// Package records extracts structured process records from page text.
//
// A record is one line of a court-deposit statement that carries a process
// identifier, a nature code, two dates, a reference period, a free-text
// condition and two monetary columns. The grammar lives in matcher.go and is
// assembled from the combinators in grammar.go.
package records

// Record is one parsed statement line. All fields are substrings of the
// source line; nothing is reinterpreted.
type Record struct {
	ProcessID   string `json:"process_id"`
	Nature      string `json:"nature"`
	Date1       string `json:"date1"`
	OrderNumber string `json:"order_number,omitempty"`
	Period      string `json:"period"`
	Date2       string `json:"date2"`
	Condition   string `json:"condition"`
	ValuePaid   string `json:"value_paid"`
	Balance     string `json:"balance"`
}

// Header is the column header written once at the top of every table.
var Header = []string{
	"Processo",
	"Nat.",
	"Data 1 - Nº Pedido",
	"Periodo",
	"Data 2",
	"Condicao",
	"Valor Pago",
	"Saldo",
}

// Date1Display combines the first date with the order number when present.
func (r Record) Date1Display() string {
	if r.OrderNumber == "" {
		return r.Date1
	}
	return r.Date1 + " - Nº " + r.OrderNumber
}

// Row returns the record in table column order.
func (r Record) Row() []string {
	return []string{
		r.ProcessID,
		r.Nature,
		r.Date1Display(),
		r.Period,
		r.Date2,
		r.Condition,
		r.ValuePaid,
		r.Balance,
	}
}
