package casafolio

import (
	"maps"
	"math"
	"slices"
)

// PerformancePoint is one row of the equity curve: the portfolio's total
// value and the cumulative net invested capital at the end of a calendar
// day on which at least one transaction occurred.
type PerformancePoint struct {
	Date     Date    `json:"date"`
	Value    float64 `json:"value"`    // cash + holdings at last trade prices
	Invested float64 `json:"invested"` // net deposits to date
}

// simPosition tracks a ticker during the history replay: quantity held and
// the last price it traded at, which is what the replay values it at.
type simPosition struct {
	qty   float64
	price float64
}

// BuildHistory replays the full transaction stream day by day and returns
// the equity curve, ascending by date, with a final point valued at the
// supplied current prices.
//
// The replay is a simplified simulation, independent of the
// weighted-average ledger: it is deliberately fee-agnostic and values
// positions at their last trade price. Deposits and withdrawals move both
// cash and invested capital; dividends, fees and taxes move only cash;
// trades move cash and the simulated position.
func BuildHistory(transactions []Transaction, currentPrices map[string]float64) []PerformancePoint {
	var history []PerformancePoint

	var simCash, simInvested float64
	positions := make(map[string]*simPosition)

	// Bucket by calendar day, preserving intra-day order.
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int { return a.Date.Compare(b.Date) })

	var days []Date
	byDay := make(map[Date][]Transaction)
	for _, tx := range sorted {
		if _, ok := byDay[tx.Date]; !ok {
			days = append(days, tx.Date)
		}
		byDay[tx.Date] = append(byDay[tx.Date], tx)
	}

	// Iterate tickers in sorted order so float accumulation is
	// deterministic across runs.
	valueAt := func(priceOf func(ticker string, p *simPosition) float64) float64 {
		tickers := slices.Sorted(maps.Keys(positions))
		var total float64
		for _, ticker := range tickers {
			p := positions[ticker]
			if math.Abs(p.qty) > 0.0001 {
				total += p.qty * priceOf(ticker, p)
			}
		}
		return total
	}
	lastTradePrice := func(_ string, p *simPosition) float64 { return p.price }

	for _, day := range days {
		for _, tx := range byDay[day] {
			simCash += tx.Total
			switch tx.Operation {
			case OpDeposit, OpWithdrawal:
				simInvested += tx.Total
			case OpBuy:
				p, ok := positions[tx.Ticker]
				if !ok {
					p = &simPosition{}
					positions[tx.Ticker] = p
				}
				p.qty += math.Abs(tx.Qty)
				p.price = tx.Price
			case OpSell:
				if p, ok := positions[tx.Ticker]; ok {
					p.qty -= math.Abs(tx.Qty)
					p.price = tx.Price
				}
			}
		}
		history = append(history, PerformancePoint{
			Date:     day,
			Value:    simCash + valueAt(lastTradePrice),
			Invested: simInvested,
		})
	}

	// As-of-now point: same positions, valued at live prices where known.
	today := Today()
	nowValue := simCash + valueAt(func(ticker string, p *simPosition) float64 {
		if price, ok := currentPrices[ticker]; ok {
			return price
		}
		return p.price
	})
	todayPoint := PerformancePoint{Date: today, Value: nowValue, Invested: simInvested}
	if n := len(history); n > 0 && history[n-1].Date == today {
		history[n-1] = todayPoint
	} else {
		history = append(history, todayPoint)
	}

	return history
}
