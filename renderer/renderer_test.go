package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/ybenchekroun/casafolio"
)

func fixtureSummary() *casafolio.Summary {
	txs := []casafolio.Transaction{
		{Date: casafolio.NewDate(2023, time.January, 2), Operation: casafolio.OpDeposit, Company: "Virement", Total: 10000},
		{Date: casafolio.NewDate(2023, time.January, 5), Operation: casafolio.OpBuy, Company: "Attijariwafa Bank", Ticker: "ATW", Qty: 10, Price: 450, Total: -4540},
		{Date: casafolio.NewDate(2023, time.February, 1), Operation: casafolio.OpSell, Company: "Attijariwafa Bank", Ticker: "ATW", Qty: 5, Price: 480, Total: 2370},
	}
	return casafolio.NewSummary(txs, map[string]float64{"ATW": 470}, nil)
}

func TestSummaryMarkdown(t *testing.T) {
	out := SummaryMarkdown(fixtureSummary())

	for _, want := range []string{
		"# Portfolio Summary",
		"## Totals",
		"## Holdings",
		"ATW",
		"Banks",
		"Fee drag",
		"Concentration (HHI): 10000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SummaryMarkdown() missing %q in:\n%s", want, out)
		}
	}
}

func TestHoldingMarkdown(t *testing.T) {
	s := fixtureSummary()
	if len(s.Holdings) != 1 {
		t.Fatalf("fixture has %d holdings, want 1", len(s.Holdings))
	}
	out := HoldingMarkdown(&s.Holdings[0])

	for _, want := range []string{
		"# ATW (Attijariwafa Bank)",
		"Break-even price",
		"## Lifetime Activity",
		"Buys",
		"Sells",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("HoldingMarkdown() missing %q in:\n%s", want, out)
		}
	}
}

func TestHistoryMarkdown(t *testing.T) {
	out := HistoryMarkdown(fixtureSummary().History)
	if !strings.Contains(out, "# Performance History") {
		t.Errorf("HistoryMarkdown() missing title:\n%s", out)
	}
	if !strings.Contains(out, "2023-01-02") {
		t.Errorf("HistoryMarkdown() missing first point date:\n%s", out)
	}
}

func TestTransaction(t *testing.T) {
	tests := []struct {
		tx   casafolio.Transaction
		want string
	}{
		{
			tx:   casafolio.Transaction{Operation: casafolio.OpBuy, Ticker: "IAM", Qty: 20, Price: 95, Total: -1920},
			want: "Bought 20 IAM",
		},
		{
			tx:   casafolio.Transaction{Operation: casafolio.OpDeposit, Total: 5000},
			want: "Deposited",
		},
		{
			tx:   casafolio.Transaction{Operation: casafolio.OpDividend, Ticker: "IAM", Total: 450},
			want: "Dividend",
		},
		{
			tx:   casafolio.Transaction{Operation: casafolio.OpUnknown, Company: "Divers", Total: -12},
			want: "Cash movement",
		},
	}
	for _, tt := range tests {
		if got := Transaction(tt.tx); !strings.Contains(got, tt.want) {
			t.Errorf("Transaction(%v) = %q, want it to contain %q", tt.tx.Operation, got, tt.want)
		}
	}
}

func TestFeeRecordsMarkdown(t *testing.T) {
	records := []casafolio.FeeRecord{
		{Date: casafolio.NewDate(2023, time.March, 31), Type: casafolio.CustodyFee, Amount: 25, Description: "Droits de garde T1"},
		{Date: casafolio.NewDate(2023, time.April, 30), Type: casafolio.SubscriptionFee, Amount: 49},
	}
	out := FeeRecordsMarkdown(records)

	for _, want := range []string{
		"# Recurring Fees",
		"Custody",
		"Subscription",
		"Droits de garde T1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("FeeRecordsMarkdown() missing %q in:\n%s", want, out)
		}
	}
}

func TestTransactionsMarkdown(t *testing.T) {
	s := fixtureSummary()
	out := TransactionsMarkdown(s.Transactions)
	if !strings.Contains(out, "# Transactions") || !strings.Contains(out, "Sold 5 ATW") {
		t.Errorf("TransactionsMarkdown() =\n%s", out)
	}
}
