package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ybenchekroun/casafolio/renderer"
)

type holdingCmd struct {
	ticker string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the detailed view of one position" }
func (*holdingCmd) Usage() string {
	return `cpt holding -t <ticker>

  Displays one position in detail: cost basis, break-even price, and the
  lifetime buy/sell volume-weighted averages.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "t", "", "ticker to report on")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "-t is required")
		return subcommands.ExitUsageError
	}

	s, err := LoadSummary()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	for i := range s.Holdings {
		if s.Holdings[i].Ticker == c.ticker {
			printMarkdown(renderer.HoldingMarkdown(&s.Holdings[i]))
			return subcommands.ExitSuccess
		}
	}

	fmt.Fprintf(os.Stderr, "no open position for %q\n", c.ticker)
	return subcommands.ExitFailure
}
