package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ybenchekroun/casafolio"
)

// FeeRecordsMarkdown renders the recurring fee records with a per-type
// total line.
func FeeRecordsMarkdown(records []casafolio.FeeRecord) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Recurring Fees")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Type", "Amount", "Description"},
	}
	var custody, subscription float64
	for _, rec := range records {
		kind := "Custody"
		if rec.Type == casafolio.SubscriptionFee {
			kind = "Subscription"
			subscription += rec.Amount
		} else {
			custody += rec.Amount
		}
		table.Rows = append(table.Rows, []string{
			rec.Date.String(),
			kind,
			mad(rec.Amount),
			rec.Description,
		})
	}
	doc.Table(table)

	doc.PlainText(fmt.Sprintf("Custody total: %s, subscription total: %s",
		mad(custody), mad(subscription)))

	return doc.String()
}
