package casafolio

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewSummary_empty(t *testing.T) {
	s := NewSummary(nil, nil, nil)
	if s.TotalValue != 0 || s.CashBalance != 0 || len(s.Holdings) != 0 {
		t.Errorf("empty summary = %+v", s)
	}
	if s.FeeDrag() != 0 {
		t.Errorf("FeeDrag() = %v, want 0", s.FeeDrag())
	}
	if len(s.History) != 1 {
		t.Errorf("got %d history points, want the as-of-now point", len(s.History))
	}
}

func TestNewSummary_cashIdentity(t *testing.T) {
	txs := []Transaction{
		deposit(day(2023, time.January, 2), 10000),
		buy(day(2023, time.January, 5), "ATW", 10, 450, -4540),
		sell(day(2023, time.February, 1), "ATW", 5, 480, 2370),
		{Date: day(2023, time.February, 15), Operation: OpDividend, Company: "ATW", Ticker: "ATW", Total: 60},
	}
	fees := []FeeRecord{
		{Date: day(2023, time.March, 31), Type: CustodyFee, Amount: 25, Description: "Droits de garde T1"},
	}
	s := NewSummary(txs, map[string]float64{"ATW": 470}, fees)

	// Cash is the sum of all net totals minus the recurring fee records.
	approx(t, "CashBalance", s.CashBalance, 10000-4540+2370+60-25, 0.001)
	approx(t, "TotalDeposits", s.TotalDeposits, 10000, 0.001)
	approx(t, "TotalDividends", s.TotalDividends, 60, 0.001)
	approx(t, "TotalCustodyFees", s.TotalCustodyFees, 25, 0.001)

	// The surviving 5 shares at the live quote.
	approx(t, "TotalValue", s.TotalValue, 5*470, 0.001)
	approx(t, "TotalUnrealizedPL", s.TotalUnrealizedPL, s.TotalValue-s.TotalCost, 0.005)
}

func TestNewSummary_enrichesTrades(t *testing.T) {
	txs := []Transaction{
		buy(day(2023, time.January, 2), "TEST", 10, 100, -1010),
		sell(day(2023, time.February, 1), "TEST", 5, 120, 590),
	}
	s := NewSummary(txs, nil, nil)

	b := s.Transactions[0]
	if b.Fees == nil {
		t.Fatalf("buy Fees not enriched")
	}
	approx(t, "buy Fees", *b.Fees, 12.10, 0.001)

	v := s.Transactions[1]
	if v.Fees == nil || v.Tax == nil || v.RealizedPL == nil {
		t.Fatalf("sell not enriched: %+v", v)
	}
	approx(t, "sell Fees", *v.Fees, 10, 0.001)
	approx(t, "sell Tax", *v.Tax, 0, 0.001)
	approx(t, "sell RealizedPL", *v.RealizedPL, 83.95, 0.001)
	approx(t, "TotalRealizedPL", s.TotalRealizedPL, 83.95, 0.001)
}

func TestNewSummary_explicitValuesSurviveEnrichment(t *testing.T) {
	tx := buy(day(2023, time.January, 2), "TEST", 10, 100, -1010)
	tx.Fees = amount(3)
	s := NewSummary([]Transaction{tx}, nil, nil)

	if got := *s.Transactions[0].Fees; got != 3 {
		t.Errorf("Fees = %v, want the explicit 3", got)
	}
}

func TestNewSummary_recomputesRealizedPL(t *testing.T) {
	// Unlike fees and tax, an export's realized P&L figure is replaced by
	// the engine's: the published number must agree with the
	// weighted-average cost basis the rest of the summary uses.
	sale := sell(day(2023, time.February, 1), "TEST", 5, 120, 590)
	sale.RealizedPL = amount(999)
	txs := []Transaction{
		buy(day(2023, time.January, 2), "TEST", 10, 100, -1010),
		sale,
	}
	s := NewSummary(txs, nil, nil)

	got := s.Transactions[1]
	if got.RealizedPL == nil {
		t.Fatalf("sell RealizedPL not set")
	}
	approx(t, "RealizedPL", *got.RealizedPL, 83.95, 0.001)
	approx(t, "TotalRealizedPL", s.TotalRealizedPL, 83.95, 0.001)
}

func TestNewSummary_custodyClassification(t *testing.T) {
	// A "Frais" row booked against a bank ticker accrues to custody fees; the
	// same operation against a plain ticker stays unclassified.
	txs := []Transaction{
		{Date: day(2023, time.March, 31), Operation: OpBankFee, Company: "Droits de garde", Ticker: "BANK", Total: -25},
		{Date: day(2023, time.April, 30), Operation: OpBankFee, Company: "Divers", Ticker: "XYZ", Total: -10},
	}
	s := NewSummary(txs, nil, nil)
	approx(t, "TotalCustodyFees", s.TotalCustodyFees, 25, 0.001)
	approx(t, "CashBalance", s.CashBalance, -35, 0.001)
}

func TestNewSummary_subscriptionShieldsButDoesNotAccrue(t *testing.T) {
	// Subscription rows shield their totals from the custody and tax
	// buckets; the subscription total itself comes from the fee records.
	txs := []Transaction{
		{Date: day(2023, time.January, 31), Operation: OpSubscription, Company: "Abonnement bourse", Ticker: "SUB", Total: -49},
	}
	fees := []FeeRecord{
		{Date: day(2023, time.January, 31), Type: SubscriptionFee, Amount: 49},
	}
	s := NewSummary(txs, nil, fees)

	approx(t, "TotalSubscriptionFees", s.TotalSubscriptionFees, 49, 0.001)
	approx(t, "TotalCustodyFees", s.TotalCustodyFees, 0, 0)
	approx(t, "CashBalance", s.CashBalance, -49-49, 0.001)
}

func TestNewSummary_taxEventsAndWithdrawals(t *testing.T) {
	// A standalone tax row (a TPCVM adjustment billed by the broker)
	// accrues to the net tax impact; a withdrawal reduces net deposits.
	txs := []Transaction{
		deposit(day(2023, time.January, 2), 10000),
		{Date: day(2023, time.February, 1), Operation: OpWithdrawal, Company: "Retrait", Total: -3000},
		{Date: day(2023, time.March, 15), Operation: ParseOperation("TPCVM 15%"), Company: "Regularisation", Total: -150},
	}
	s := NewSummary(txs, nil, nil)

	approx(t, "NetTaxImpact", s.NetTaxImpact, 150, 0.001)
	approx(t, "TotalDeposits", s.TotalDeposits, 7000, 0.001)
	approx(t, "CashBalance", s.CashBalance, 10000-3000-150, 0.001)
}

func TestNewSummary_zeroQtyBuyCreatesNoHolding(t *testing.T) {
	txs := []Transaction{
		buy(day(2023, time.January, 2), "TEST", 0, 100, -11),
	}
	s := NewSummary(txs, map[string]float64{"TEST": 100}, nil)

	if len(s.Holdings) != 0 {
		t.Errorf("zero-quantity buy produced a holding: %+v", s.Holdings)
	}
	approx(t, "TotalTradingFees", s.TotalTradingFees, 11.00, 0.001)
	approx(t, "CashBalance", s.CashBalance, -11, 0.001)
}

func TestNewSummary_subEpsilonResidualExcluded(t *testing.T) {
	// Fractional round trips can leave a dust residual; anything at or
	// below the 0.001 position cutoff is treated as closed.
	txs := []Transaction{
		buyWithFees(day(2023, time.January, 2), "TEST", 10, 100, -1000, 0),
		sellWithFees(day(2023, time.February, 1), "TEST", 9.9995, 100, 999.95, 0),
	}
	s := NewSummary(txs, map[string]float64{"TEST": 100}, nil)

	if len(s.Holdings) != 0 {
		t.Errorf("sub-epsilon residual still listed: %+v", s.Holdings)
	}
	approx(t, "TotalValue", s.TotalValue, 0, 0)
}

func TestNewSummary_allocationsAndHHI(t *testing.T) {
	txs := []Transaction{
		buy(day(2023, time.January, 2), "ATW", 10, 100, -1000),
		buy(day(2023, time.January, 3), "IAM", 10, 100, -1000),
	}
	s := NewSummary(txs, map[string]float64{"ATW": 120, "IAM": 120}, nil)

	if len(s.Holdings) != 2 {
		t.Fatalf("got %d holdings, want 2", len(s.Holdings))
	}
	var sum float64
	for _, h := range s.Holdings {
		sum += h.Allocation
	}
	approx(t, "allocation sum", sum, 100, 0.01)
	// Two equal positions: maximal diversification for two names.
	approx(t, "HHI", s.HHI(), 5000, 0.01)
}

func TestNewSummary_sortsHoldingsByAllocation(t *testing.T) {
	txs := []Transaction{
		buy(day(2023, time.January, 2), "AAA", 1, 100, -100),
		buy(day(2023, time.January, 3), "BBB", 10, 100, -1000),
	}
	s := NewSummary(txs, map[string]float64{"AAA": 100, "BBB": 100}, nil)

	if s.Holdings[0].Ticker != "BBB" || s.Holdings[1].Ticker != "AAA" {
		t.Errorf("holdings order = %s, %s; want BBB first", s.Holdings[0].Ticker, s.Holdings[1].Ticker)
	}
}

func TestNewSummary_closedPositionsExcluded(t *testing.T) {
	txs := []Transaction{
		buy(day(2023, time.January, 2), "ATW", 10, 100, -1000),
		sell(day(2023, time.February, 1), "ATW", 10, 110, 1100),
	}
	s := NewSummary(txs, map[string]float64{"ATW": 999}, nil)
	if len(s.Holdings) != 0 {
		t.Errorf("closed position still listed: %+v", s.Holdings)
	}
	approx(t, "TotalValue", s.TotalValue, 0, 0)
}

func TestNewSummary_missingPriceFallsBackToLastTrade(t *testing.T) {
	txs := []Transaction{
		buy(day(2023, time.January, 2), "GAZ", 10, 50, -500),
	}
	s := NewSummary(txs, map[string]float64{}, nil)
	if len(s.Holdings) != 1 {
		t.Fatalf("got %d holdings, want 1", len(s.Holdings))
	}
	if s.Holdings[0].CurrentPrice != 50 {
		t.Errorf("CurrentPrice = %v, want last trade price 50", s.Holdings[0].CurrentPrice)
	}
}

func TestNewSummary_idempotent(t *testing.T) {
	txs := []Transaction{
		deposit(day(2023, time.January, 2), 10000),
		buy(day(2023, time.January, 5), "ATW", 10, 450, -4540),
		buy(day(2023, time.January, 20), "IAM", 20, 95, -1920),
		sell(day(2023, time.February, 1), "ATW", 5, 480, 2370),
	}
	prices := map[string]float64{"ATW": 470, "IAM": 98}

	a, _ := json.Marshal(NewSummary(txs, prices, nil))
	b, _ := json.Marshal(NewSummary(txs, prices, nil))
	if string(a) != string(b) {
		t.Errorf("summaries differ across identical runs")
	}
}

func TestSummary_feeDrag(t *testing.T) {
	txs := []Transaction{
		buy(day(2023, time.January, 2), "ATW", 10, 100, -1010),
	}
	s := NewSummary(txs, map[string]float64{"ATW": 100}, nil)
	// 12.10 of trading fees on a 1000.00 portfolio.
	approx(t, "FeeDrag", s.FeeDrag(), 1.21, 0.001)
}
