package casafolio

import (
	"fmt"
	"log"
	"math"
)

// feeTolerance is the band, in MAD, within which an amount implied by the
// cash total is considered to match the standard fee formula. It absorbs
// rounding differences and minor broker variations.
const feeTolerance = 5.0

// positionEpsilon is the quantity below which a position counts as closed,
// absorbing float drift from fractional round-trips.
const positionEpsilon = 0.001

// HoldingState is the running weighted-average-cost ledger for one ticker.
// It exists only for the duration of one portfolio computation and must be
// fed transactions in strict chronological order: the weighted average is
// order-sensitive and there is no undo.
//
// CostBasis is the fee-inclusive average unit cost, used for P&L.
// AvgPrice is the gross average price (fees excluded), the base on which
// capital-gains tax is actually levied.
type HoldingState struct {
	Company   string
	Qty       float64
	CostBasis float64
	AvgPrice  float64
	LastPrice float64
	TxCount   int

	// Cumulative VWAP accumulators. Never reset, even across round-trips.
	TotalBuyCost      float64
	TotalBuyQty       float64
	TotalSellProceeds float64
	TotalSellQty      float64
}

// TradeResult reports the outcome of applying one trade: the realized P&L
// (zero for buys), the fees and tax attributed to the trade (explicit
// values passed through, missing ones inferred), and any non-fatal
// anomalies noticed along the way.
type TradeResult struct {
	RealizedPL float64
	Fees       float64
	Tax        float64
	Warnings   []string
}

// Apply consumes one buy or sell transaction and updates the running
// state. Non-trade operations are ignored.
//
// When the source data omits fees (and, on sells, tax), Apply infers them
// from the gap between the net cash total and the gross amount, trusting
// the standard fee formula when the gap sits within feeTolerance of it and
// trusting the data otherwise.
func (s *HoldingState) Apply(tx Transaction, schedule FeeSchedule) TradeResult {
	var res TradeResult

	qty := math.Abs(tx.Qty)
	grossAmount := qty * tx.Price

	switch tx.Operation {
	case OpBuy:
		res = s.applyBuy(tx, qty, grossAmount, schedule)
	case OpSell:
		res = s.applySell(tx, qty, grossAmount, schedule)
	default:
		return res
	}

	if grossAmount > 0 && res.Fees > grossAmount*0.05 {
		w := fmt.Sprintf("high fee on %s: %.2f MAD on %.2f MAD gross (%.2f%%)",
			tx.Ticker, res.Fees, grossAmount, res.Fees/grossAmount*100)
		log.Println("warning:", w)
		res.Warnings = append(res.Warnings, w)
	}

	s.LastPrice = tx.Price
	s.TxCount++
	return res
}

// applyBuy infers missing fees, then blends the purchase into the weighted
// averages. A buy from a flat or short position resets the cost basis to
// this trade's own economics instead of blending with stale state.
func (s *HoldingState) applyBuy(tx Transaction, qty, grossAmount float64, schedule FeeSchedule) TradeResult {
	var res TradeResult

	if tx.Fees != nil {
		res.Fees = *tx.Fees
	} else {
		// Buy: Total = -(gross + fees), so the non-gross part of the cash
		// paid is what the broker charged.
		diff := math.Abs(tx.Total) - grossAmount
		stdFees := schedule.StandardFees(grossAmount)
		if math.Abs(diff-stdFees) < feeTolerance || math.Abs(diff) < 0.01 {
			res.Fees = stdFees
		} else {
			res.Fees = max(0, diff)
		}
	}

	newQty := s.Qty + qty
	if newQty > 0 && qty > 0 {
		addedCost := grossAmount + res.Fees
		if s.Qty <= 0 {
			// Flat or short: no position to blend with.
			s.CostBasis = roundTo(addedCost/qty, 4)
			s.AvgPrice = roundTo(grossAmount/qty, 4)
		} else {
			s.CostBasis = roundTo((s.Qty*s.CostBasis+addedCost)/newQty, 4)
			s.AvgPrice = roundTo((s.Qty*s.AvgPrice+grossAmount)/newQty, 4)
		}
	}
	s.Qty = newQty
	s.TotalBuyCost = roundTo(s.TotalBuyCost+grossAmount, 4)
	s.TotalBuyQty = roundTo(s.TotalBuyQty+qty, 4)

	return res
}

// applySell infers whichever of fees and tax the source omits, computes
// realized P&L against the fee-inclusive cost basis, and shrinks the
// position. The unit economics of the remaining shares are untouched: under
// the weighted-average method a sale removes shares at average cost.
func (s *HoldingState) applySell(tx Transaction, qty, grossAmount float64, schedule FeeSchedule) TradeResult {
	var res TradeResult

	hasFees := tx.Fees != nil
	hasTax := tx.Tax != nil
	if hasFees {
		res.Fees = *tx.Fees
	}
	if hasTax {
		res.Tax = *tx.Tax
	}

	if !hasFees || !hasTax {
		// Sell: Total = gross - fees - tax, so the shortfall from gross is
		// the combined fee and tax take.
		diff := grossAmount - tx.Total
		stdFees := schedule.StandardFees(grossAmount)
		// Tax is levied on the gain over the gross average price, not the
		// fee-inclusive cost basis.
		estTax := schedule.TaxOnGain((tx.Price - s.AvgPrice) * qty)

		switch {
		case !hasFees && !hasTax:
			if math.Abs(diff-(stdFees+estTax)) < feeTolerance || math.Abs(diff) < 0.01 {
				res.Fees = stdFees
				res.Tax = estTax
			} else if diff > stdFees {
				res.Fees = stdFees
				res.Tax = max(0, diff-stdFees)
			} else {
				res.Fees = max(0, diff)
				res.Tax = 0
			}
		case !hasFees:
			remaining := diff - res.Tax
			if math.Abs(remaining-stdFees) < feeTolerance || remaining < 0 {
				res.Fees = stdFees
			} else {
				res.Fees = max(0, remaining)
			}
		case !hasTax:
			remaining := diff - res.Fees
			if remaining > 0.01 {
				res.Tax = remaining
			} else {
				res.Tax = 0
			}
		}
	}

	// Total is the post-fee/tax cash received, so realized P&L already
	// nets out this sale's own costs.
	res.RealizedPL = roundTo(tx.Total-qty*s.CostBasis, 2)

	s.Qty = roundTo(s.Qty-qty, 4)
	if s.Qty < 0 {
		w := fmt.Sprintf("sell of %s drives position to %.4f: short selling is not modeled, next buy resets the cost basis", tx.Ticker, s.Qty)
		log.Println("warning:", w)
		res.Warnings = append(res.Warnings, w)
	}
	s.TotalSellProceeds = roundTo(s.TotalSellProceeds+grossAmount, 4)
	s.TotalSellQty = roundTo(s.TotalSellQty+qty, 4)

	return res
}

// Holding is a point-in-time snapshot of a position, derived from a
// HoldingState and a current price. It is rebuilt from scratch on every
// portfolio computation and never mutated.
type Holding struct {
	Ticker              string  `json:"ticker"`
	Company             string  `json:"company"`
	Sector              string  `json:"sector"`
	Quantity            float64 `json:"quantity"`
	AverageCost         float64 `json:"averageCost"`  // fee-inclusive cost basis
	AveragePrice        float64 `json:"averagePrice"` // gross price basis
	CurrentPrice        float64 `json:"currentPrice"`
	MarketValue         float64 `json:"marketValue"`
	UnrealizedPL        float64 `json:"unrealizedPL"`
	UnrealizedPLPercent float64 `json:"unrealizedPLPercent"`
	Allocation          float64 `json:"allocation"` // % of total portfolio value
	TransactionCount    int     `json:"transactionCount"`
	BreakEvenPrice      float64 `json:"breakEvenPrice"`
	BuyVWAP             float64 `json:"buyVWAP"`
	BuyVolume           float64 `json:"buyVolume"`
	SellVWAP            float64 `json:"sellVWAP"`
	SellVolume          float64 `json:"sellVolume"`
}

// Snapshot derives the display Holding for a ticker at the given price.
// Allocation is left at zero; it can only be computed once the total
// portfolio value is known.
func (s *HoldingState) Snapshot(ticker string, price float64, schedule FeeSchedule) Holding {
	marketValue := roundTo(s.Qty*price, 2)
	totalCost := roundTo(s.Qty*s.CostBasis, 2)
	unrealized := roundTo(marketValue-totalCost, 2)

	h := Holding{
		Ticker:           ticker,
		Company:          s.Company,
		Sector:           SectorOf(ticker),
		Quantity:         s.Qty,
		AverageCost:      s.CostBasis,
		AveragePrice:     s.AvgPrice,
		CurrentPrice:     price,
		MarketValue:      marketValue,
		UnrealizedPL:     unrealized,
		TransactionCount: s.TxCount,
		BreakEvenPrice:   schedule.BreakEvenPrice(s.CostBasis),
		BuyVolume:        s.TotalBuyQty,
		SellVolume:       s.TotalSellQty,
	}
	if totalCost > 0 {
		h.UnrealizedPLPercent = unrealized / totalCost * 100
	}
	if s.TotalBuyQty > 0 {
		h.BuyVWAP = roundTo(s.TotalBuyCost/s.TotalBuyQty, 2)
	}
	if s.TotalSellQty > 0 {
		h.SellVWAP = roundTo(s.TotalSellProceeds/s.TotalSellQty, 2)
	}
	return h
}
