package casafolio

import "fmt"

// FeeType distinguishes the two recurring out-of-band fee kinds.
type FeeType string

const (
	// CustodyFee ("droits de garde") is the periodic account custody charge.
	CustodyFee FeeType = "CUS"
	// SubscriptionFee is the broker's platform subscription charge.
	SubscriptionFee FeeType = "SUB"
)

// ParseFeeType parses a fee type label.
func ParseFeeType(s string) (FeeType, error) {
	switch FeeType(s) {
	case CustodyFee:
		return CustodyFee, nil
	case SubscriptionFee:
		return SubscriptionFee, nil
	default:
		return "", fmt.Errorf("unknown fee type %q, want %q or %q", s, CustodyFee, SubscriptionFee)
	}
}

// FeeRecord is a recurring fee not tied to any trade, tracked separately
// from the transaction ledger and merged into the portfolio totals. Amount
// is a positive magnitude; a fee record always reduces cash.
type FeeRecord struct {
	Date        Date    `json:"date"`
	Type        FeeType `json:"type"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}
