package casafolio

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Operation is the closed set of ledger entry kinds. Raw operation labels
// (a free-text French/English mix in brokerage exports) are normalized into
// an Operation at the import boundary; the engine only ever branches on the
// variant.
type Operation int

const (
	OpUnknown Operation = iota
	OpBuy
	OpSell
	OpDeposit
	OpWithdrawal
	OpDividend
	OpBankFee
	OpTax
	OpSubscription
)

// opLabels holds the canonical (French) label for each operation, the form
// used in ledger files and display.
var opLabels = map[Operation]string{
	OpUnknown:      "Inconnu",
	OpBuy:          "Achat",
	OpSell:         "Vente",
	OpDeposit:      "Depot",
	OpWithdrawal:   "Retrait",
	OpDividend:     "Dividende",
	OpBankFee:      "Frais",
	OpTax:          "Taxe",
	OpSubscription: "Abonnement",
}

func (o Operation) String() string {
	if label, ok := opLabels[o]; ok {
		return label
	}
	return "Inconnu"
}

// IsTrade reports whether the operation moves securities (buy or sell).
func (o Operation) IsTrade() bool { return o == OpBuy || o == OpSell }

// ParseOperation normalizes a raw operation label. It recognizes the
// canonical French vocabulary, the English equivalents, and the fragments
// brokers embed in longer labels ("Frais de garde", "TPCVM 15%", ...).
// Unrecognized labels map to OpUnknown, never to an error: an unknown
// operation is still a cash movement.
func ParseOperation(s string) Operation {
	op := strings.ToLower(strings.Join(strings.Fields(s), " "))
	switch {
	case op == "achat" || op == "buy":
		return OpBuy
	case op == "vente" || op == "sell":
		return OpSell
	case strings.Contains(op, "abonnement") || strings.Contains(op, "sub"):
		return OpSubscription
	case strings.Contains(op, "taxe") || strings.Contains(op, "tpcvm"):
		return OpTax
	case strings.Contains(op, "frais") || strings.Contains(op, "fee"):
		return OpBankFee
	case strings.Contains(op, "dividende") || strings.Contains(op, "dividend"):
		return OpDividend
	case strings.Contains(op, "depot") || strings.Contains(op, "deposit"):
		return OpDeposit
	case strings.Contains(op, "retrait") || strings.Contains(op, "withdraw"):
		return OpWithdrawal
	default:
		return OpUnknown
	}
}

// MarshalJSON encodes the operation as its canonical label.
func (o Operation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// UnmarshalJSON decodes an operation from any recognized label.
func (o *Operation) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*o = ParseOperation(str)
	return nil
}

// Transaction is one ledger entry. Quantity and Price are unsigned
// magnitudes for trades; Total is the signed net cash amount actually moved
// (negative = cash out), inclusive of fees and tax.
//
// Fees, Tax and RealizedPL are nil when the source data does not provide
// them. A Transaction is never mutated after creation: the aggregator emits
// enriched copies with inferred values filled in.
type Transaction struct {
	Date       Date      `json:"date"`
	Company    string    `json:"company,omitempty"`
	ISIN       string    `json:"isin,omitempty"`
	Operation  Operation `json:"operation"`
	Ticker     string    `json:"ticker,omitempty"`
	Qty        float64   `json:"qty,omitempty"`
	Price      float64   `json:"price,omitempty"`
	Total      float64   `json:"total"`
	Fees       *float64  `json:"fees,omitempty"`
	Tax        *float64  `json:"tax,omitempty"`
	RealizedPL *float64  `json:"realizedPL,omitempty"`
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s %.4g@%.2f total %.2f", t.Date, t.Operation, t.Ticker, t.Qty, t.Price, t.Total)
}

// Equal reports whether two transactions are the same entry, comparing
// optional fields by value.
func (t Transaction) Equal(u Transaction) bool {
	return t.Date == u.Date &&
		t.Company == u.Company &&
		t.ISIN == u.ISIN &&
		t.Operation == u.Operation &&
		t.Ticker == u.Ticker &&
		t.Qty == u.Qty &&
		t.Price == u.Price &&
		t.Total == u.Total &&
		eqOpt(t.Fees, u.Fees) &&
		eqOpt(t.Tax, u.Tax) &&
		eqOpt(t.RealizedPL, u.RealizedPL)
}

func eqOpt(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// amount returns a pointer to v, for filling optional transaction fields.
func amount(v float64) *float64 { return &v }
