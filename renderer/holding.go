package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ybenchekroun/casafolio"
)

// HoldingMarkdown renders the detailed view of one position, including
// the break-even price and the lifetime buy/sell volume-weighted averages.
func HoldingMarkdown(h *casafolio.Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s (%s)", h.Ticker, h.Company))
	doc.PlainText(fmt.Sprintf("Sector: %s", h.Sector))

	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Quantity", qty(h.Quantity)},
			{"Average cost (fees incl.)", mad(h.AverageCost)},
			{"Average price (gross)", mad(h.AveragePrice)},
			{"Current price", mad(h.CurrentPrice)},
			{"Market value", mad(h.MarketValue)},
			{"Unrealized P&L", fmt.Sprintf("%s (%s)", signedMAD(h.UnrealizedPL), signedPercent(h.UnrealizedPLPercent))},
			{"Break-even price", mad(h.BreakEvenPrice)},
			{"Allocation", percent(h.Allocation)},
			{"Transactions", fmt.Sprintf("%d", h.TransactionCount)},
		},
	})

	doc.H2("Lifetime Activity")
	doc.Table(md.TableSet{
		Header: []string{"Side", "VWAP", "Volume"},
		Rows: [][]string{
			{"Buys", mad(h.BuyVWAP), qty(h.BuyVolume)},
			{"Sells", mad(h.SellVWAP), qty(h.SellVolume)},
		},
	})

	return doc.String()
}
