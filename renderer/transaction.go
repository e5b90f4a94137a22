package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/ybenchekroun/casafolio"
)

// Transaction renders a one-line human description of a ledger entry.
func Transaction(tx casafolio.Transaction) string {
	switch tx.Operation {
	case casafolio.OpBuy:
		return fmt.Sprintf("Bought %s %s at %s for %s", qty(tx.Qty), tx.Ticker, mad(tx.Price), mad(-tx.Total))
	case casafolio.OpSell:
		s := fmt.Sprintf("Sold %s %s at %s for %s", qty(tx.Qty), tx.Ticker, mad(tx.Price), mad(tx.Total))
		if tx.RealizedPL != nil {
			s += fmt.Sprintf(" (P&L %s)", signedMAD(*tx.RealizedPL))
		}
		return s
	case casafolio.OpDividend:
		return fmt.Sprintf("Dividend of %s from %s", mad(tx.Total), tx.Ticker)
	case casafolio.OpDeposit:
		return fmt.Sprintf("Deposited %s", mad(tx.Total))
	case casafolio.OpWithdrawal:
		return fmt.Sprintf("Withdrew %s", mad(-tx.Total))
	case casafolio.OpBankFee:
		return fmt.Sprintf("Fee of %s (%s)", mad(-tx.Total), tx.Company)
	case casafolio.OpTax:
		return fmt.Sprintf("Tax of %s (%s)", mad(-tx.Total), tx.Company)
	case casafolio.OpSubscription:
		return fmt.Sprintf("Subscription of %s", mad(-tx.Total))
	default:
		return fmt.Sprintf("Cash movement of %s (%s)", signedMAD(tx.Total), tx.Company)
	}
}

// TransactionsMarkdown renders the ledger as a table, most recent last.
func TransactionsMarkdown(transactions []casafolio.Transaction) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Operation", "Total", "Fees", "Tax"},
	}
	for _, tx := range transactions {
		fees, tax := "-", "-"
		if tx.Fees != nil {
			fees = mad(*tx.Fees)
		}
		if tx.Tax != nil {
			tax = mad(*tx.Tax)
		}
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			Transaction(tx),
			signedMAD(tx.Total),
			fees,
			tax,
		})
	}
	doc.Table(table)

	return doc.String()
}
