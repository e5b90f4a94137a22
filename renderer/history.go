package renderer

import (
	"bytes"

	md "github.com/nao1215/markdown"
	"github.com/ybenchekroun/casafolio"
)

// HistoryMarkdown renders the equity curve as a table of daily points:
// portfolio value, net invested capital, and the gain over it.
func HistoryMarkdown(history []casafolio.PerformancePoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Performance History")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Value", "Invested", "Gain"},
	}
	for _, p := range history {
		table.Rows = append(table.Rows, []string{
			p.Date.String(),
			mad(p.Value),
			mad(p.Invested),
			signedMAD(p.Value - p.Invested),
		})
	}
	doc.Table(table)

	return doc.String()
}
