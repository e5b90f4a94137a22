package casafolio

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// Summary is the aggregate read model consumed by dashboards and
// narrative services. It is rebuilt from scratch on every computation and
// satisfies, by construction:
//
//	CashBalance == Σ tx.Total − Σ feeRecord.Amount
//	TotalUnrealizedPL == TotalValue − TotalCost
//
// within 2-decimal rounding.
type Summary struct {
	TotalValue            float64 `json:"totalValue"`
	TotalCost             float64 `json:"totalCost"`
	TotalRealizedPL       float64 `json:"totalRealizedPL"`
	TotalUnrealizedPL     float64 `json:"totalUnrealizedPL"`
	TotalDividends        float64 `json:"totalDividends"`
	TotalDeposits         float64 `json:"totalDeposits"` // net of withdrawals
	TotalTradingFees      float64 `json:"totalTradingFees"`
	TotalCustodyFees      float64 `json:"totalCustodyFees"`
	TotalSubscriptionFees float64 `json:"totalSubscriptionFees"`
	NetTaxImpact          float64 `json:"netTaxImpact"`
	CashBalance           float64 `json:"cashBalance"`

	Holdings []Holding          `json:"holdings"` // sorted by allocation, descending
	History  []PerformancePoint `json:"history"`

	// Transactions is the enriched copy of the input stream: inferred
	// fees and tax filled in where the source was silent (explicit values
	// win), and realized P&L recomputed on every sell (see enrich).
	Transactions []Transaction `json:"transactions"`

	// Warnings collects non-fatal anomalies noticed during aggregation
	// (suspiciously high fees, positions driven negative).
	Warnings []string `json:"-"`
}

// NewSummary computes the full portfolio state from a chronologically
// sorted transaction list, a read-only snapshot of current prices, and the
// separately tracked recurring fee records, using the standard Casablanca
// tariff for inference. It is a pure function: identical inputs yield
// identical output, and an empty transaction list yields a well-formed
// zero-valued summary.
func NewSummary(transactions []Transaction, currentPrices map[string]float64, feeRecords []FeeRecord) *Summary {
	return NewSummaryWithSchedule(transactions, currentPrices, feeRecords, CasablancaFees)
}

// NewSummaryWithSchedule is NewSummary with an explicit fee schedule.
func NewSummaryWithSchedule(transactions []Transaction, currentPrices map[string]float64, feeRecords []FeeRecord, schedule FeeSchedule) *Summary {
	s := &Summary{}
	states := make(map[string]*HoldingState)

	for _, tx := range transactions {
		if tx.Operation.IsTrade() {
			state, ok := states[tx.Ticker]
			if !ok {
				state = &HoldingState{Company: tx.Company}
				states[tx.Ticker] = state
			}

			res := state.Apply(tx, schedule)
			s.TotalRealizedPL += res.RealizedPL
			s.TotalTradingFees += res.Fees
			s.NetTaxImpact += res.Tax
			s.CashBalance += tx.Total
			s.Warnings = append(s.Warnings, res.Warnings...)

			s.Transactions = append(s.Transactions, enrich(tx, res))
			continue
		}

		s.CashBalance += tx.Total
		switch classify(tx) {
		case OpSubscription:
			// Subscription totals come from the fee records; the
			// classification only shields the row from the bank-fee and
			// tax buckets.
		case OpBankFee:
			s.TotalCustodyFees += math.Abs(tx.Total)
		case OpTax:
			s.NetTaxImpact += math.Abs(tx.Total)
		case OpDividend:
			s.TotalDividends += tx.Total
		case OpDeposit:
			s.TotalDeposits += tx.Total
		}
		s.Transactions = append(s.Transactions, tx)
	}

	for _, fee := range feeRecords {
		s.CashBalance -= fee.Amount
		switch fee.Type {
		case CustodyFee:
			s.TotalCustodyFees += fee.Amount
		case SubscriptionFee:
			s.TotalSubscriptionFees += fee.Amount
		}
	}

	s.History = BuildHistory(transactions, currentPrices)

	for _, ticker := range slices.Sorted(maps.Keys(states)) {
		state := states[ticker]
		if state.Qty <= positionEpsilon {
			continue
		}
		// A live price wins; a ticker missing from the snapshot degrades
		// to its last trade price rather than failing.
		price, ok := currentPrices[ticker]
		if !ok {
			price = state.LastPrice
		}
		h := state.Snapshot(ticker, price, schedule)
		s.TotalValue += h.MarketValue
		s.TotalCost += roundTo(state.Qty*state.CostBasis, 2)
		s.Holdings = append(s.Holdings, h)
	}

	for i := range s.Holdings {
		if s.TotalValue > 0 {
			s.Holdings[i].Allocation = s.Holdings[i].MarketValue / s.TotalValue * 100
		}
	}
	slices.SortStableFunc(s.Holdings, func(a, b Holding) int {
		switch {
		case a.Allocation > b.Allocation:
			return -1
		case a.Allocation < b.Allocation:
			return 1
		default:
			return 0
		}
	})

	s.TotalValue = roundTo(s.TotalValue, 2)
	s.TotalCost = roundTo(s.TotalCost, 2)
	s.TotalRealizedPL = roundTo(s.TotalRealizedPL, 2)
	s.TotalUnrealizedPL = roundTo(s.TotalValue-s.TotalCost, 2)
	s.TotalDividends = roundTo(s.TotalDividends, 2)
	s.TotalDeposits = roundTo(s.TotalDeposits, 2)
	s.TotalTradingFees = roundTo(s.TotalTradingFees, 2)
	s.TotalCustodyFees = roundTo(s.TotalCustodyFees, 2)
	s.TotalSubscriptionFees = roundTo(s.TotalSubscriptionFees, 2)
	s.NetTaxImpact = roundTo(s.NetTaxImpact, 2)
	s.CashBalance = roundTo(s.CashBalance, 2)

	return s
}

// enrich builds the output copy of a trade with inferred values filled in.
// Explicit fees and tax are passed through untouched. RealizedPL is always
// the engine's figure: exports compute it against their own lot logic, and
// the published number must agree with the weighted-average cost basis the
// rest of the summary is built on.
func enrich(tx Transaction, res TradeResult) Transaction {
	out := tx
	if out.Fees == nil {
		out.Fees = amount(res.Fees)
	}
	if out.Tax == nil {
		out.Tax = amount(res.Tax)
	}
	out.RealizedPL = amount(res.RealizedPL)
	return out
}

// classify resolves a non-trade transaction into the bucket it accrues to,
// combining the parsed operation with ticker/company heuristics: a fee row
// booked against "bank"/"cus" is a custody fee, anything mentioning "sub"
// is a subscription (and takes priority over the other checks).
func classify(tx Transaction) Operation {
	ticker := strings.ToLower(strings.TrimSpace(tx.Ticker))
	company := strings.ToLower(strings.TrimSpace(tx.Company))

	isSubscription := tx.Operation == OpSubscription || strings.Contains(ticker, "sub")
	if isSubscription {
		return OpSubscription
	}
	if tx.Operation == OpBankFee &&
		(ticker == "bank" || ticker == "cus" || strings.Contains(ticker, "bank") || strings.Contains(company, "bank")) {
		return OpBankFee
	}
	if tx.Operation == OpTax {
		return OpTax
	}
	if tx.Operation == OpDividend {
		return OpDividend
	}
	if tx.Operation == OpDeposit || tx.Operation == OpWithdrawal {
		return OpDeposit // both accrue to net deposits
	}
	return OpUnknown
}

// FeeDrag returns total fees (trading + custody + subscription) as a
// percentage of the current portfolio value, 0 for an empty portfolio.
func (s *Summary) FeeDrag() float64 {
	if s.TotalValue <= 0 {
		return 0
	}
	return (s.TotalTradingFees + s.TotalCustodyFees + s.TotalSubscriptionFees) / s.TotalValue * 100
}

// HHI returns the Herfindahl-Hirschman concentration index of the current
// holdings: the sum of squared allocation percentages. A single-holding
// portfolio scores 10000; an evenly split pair scores 5000.
func (s *Summary) HHI() float64 {
	var hhi float64
	for _, h := range s.Holdings {
		hhi += h.Allocation * h.Allocation
	}
	return hhi
}
