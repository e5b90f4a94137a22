package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ybenchekroun/casafolio"
	"github.com/ybenchekroun/casafolio/renderer"
)

type txCmd struct {
	ticker string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list ledger transactions with inferred fees and tax" }
func (*txCmd) Usage() string {
	return `cpt tx [-t <ticker>]

  Lists the ledger transactions, enriched with the fees, tax and realized
  P&L inferred by the accounting engine where the source was silent.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "only show transactions for this ticker")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := LoadSummary()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	transactions := s.Transactions
	if c.ticker != "" {
		var filtered []casafolio.Transaction
		for _, tx := range transactions {
			if tx.Ticker == c.ticker {
				filtered = append(filtered, tx)
			}
		}
		transactions = filtered
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}
