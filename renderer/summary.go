package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ybenchekroun/casafolio"
)

// SummaryMarkdown renders the full portfolio summary: headline totals,
// the holdings table sorted by allocation, and the fee breakdown.
func SummaryMarkdown(s *casafolio.Summary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Summary")
	doc.PlainText(fmt.Sprintf("Total Market Value: %s", mad(s.TotalValue)))

	doc.H2("Totals")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Amount"},
		Rows: [][]string{
			{"Market value", mad(s.TotalValue)},
			{"Cost basis", mad(s.TotalCost)},
			{"Unrealized P&L", signedMAD(s.TotalUnrealizedPL)},
			{"Realized P&L", signedMAD(s.TotalRealizedPL)},
			{"Dividends", mad(s.TotalDividends)},
			{"Net deposits", mad(s.TotalDeposits)},
			{"Cash balance", mad(s.CashBalance)},
		},
	})

	if len(s.Holdings) > 0 {
		doc.H2("Holdings")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Ticker", "Sector", "Qty", "Avg Cost", "Price", "Unrealized", "Alloc"},
		}
		for _, h := range s.Holdings {
			table.Rows = append(table.Rows, []string{
				h.Ticker,
				h.Sector,
				qty(h.Quantity),
				mad(h.AverageCost),
				mad(h.CurrentPrice),
				signedPercent(h.UnrealizedPLPercent),
				percent(h.Allocation),
			})
		}
		doc.Table(table)
		doc.PlainText(fmt.Sprintf("Concentration (HHI): %.0f", s.HHI()))
	}

	doc.H2("Fees and Taxes")
	doc.Table(md.TableSet{
		Header: []string{"Kind", "Amount"},
		Rows: [][]string{
			{"Trading fees", mad(s.TotalTradingFees)},
			{"Custody fees", mad(s.TotalCustodyFees)},
			{"Subscriptions", mad(s.TotalSubscriptionFees)},
			{"Capital gains tax", mad(s.NetTaxImpact)},
		},
	})
	doc.PlainText(fmt.Sprintf("Fee drag: %s of portfolio value", percent(s.FeeDrag())))

	return doc.String()
}
