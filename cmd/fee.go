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

// feeCmd records a recurring out-of-band fee (custody or subscription)
// into the fee records file, or lists the recorded ones.
type feeCmd struct {
	list        bool
	date        string
	kind        string
	amount      float64
	description string
}

func (*feeCmd) Name() string     { return "fee" }
func (*feeCmd) Synopsis() string { return "record or list custody and subscription fees" }
func (*feeCmd) Usage() string {
	return `cpt fee -type <CUS|SUB> -amount <amount> [-d <date>] [-desc <text>]
cpt fee -list

  Appends a recurring fee record to the fee records file, or lists the
  recorded ones. These fees are tracked outside the transaction ledger
  and merged into the portfolio totals and cash balance.

Usage Examples:
# Record the quarterly custody fee.
$ cpt fee -type CUS -amount 25 -d 2023-03-31 -desc "Droits de garde T1"
`
}

func (c *feeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.list, "list", false, "list the recorded fees instead of adding one")
	f.StringVar(&c.date, "d", casafolio.Today().String(), "date of the fee")
	f.StringVar(&c.kind, "type", "", "fee type: CUS (custody) or SUB (subscription)")
	f.Float64Var(&c.amount, "amount", 0, "fee amount in MAD (positive)")
	f.StringVar(&c.description, "desc", "", "free-text description")
}

func (c *feeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.list {
		records, err := DecodeFees()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.FeeRecordsMarkdown(records))
		return subcommands.ExitSuccess
	}

	kind, err := casafolio.ParseFeeType(c.kind)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	if c.amount <= 0 {
		fmt.Fprintln(os.Stderr, "-amount must be a positive MAD amount")
		return subcommands.ExitUsageError
	}
	on, err := casafolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	return AppendFeeRecord(casafolio.FeeRecord{
		Date:        on,
		Type:        kind,
		Amount:      c.amount,
		Description: c.description,
	})
}
