package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/ybenchekroun/casafolio"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	merge bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a brokerage CSV export into the ledger" }
func (*importCmd) Usage() string {
	return `cpt import [-merge] <file.csv>

  Parses a brokerage CSV export (delimiter and column layout are
  auto-detected) and writes the transactions to the ledger file in
  canonical JSONL form. Rows that cannot be parsed are reported and
  skipped; the import still succeeds for the good rows.

Usage Examples:
# Replace the ledger with the export contents.
$ cpt import releve.csv

# Merge the export into the existing ledger, skipping duplicates.
$ cpt import -merge releve.csv
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.merge, "merge", false, "merge into the existing ledger instead of replacing it")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one CSV file to import")
		return subcommands.ExitUsageError
	}

	in, err := os.Open(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	res, err := casafolio.ImportTransactions(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	log := Logger()
	for _, e := range res.Errors {
		log.Error().Msg(e)
	}
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}

	transactions := res.Transactions
	if c.merge {
		existing, err := DecodeLedger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		transactions = mergeTransactions(existing, transactions)
	}

	if err := EncodeLedger(transactions); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Imported %d transactions into %s (%d rows skipped)\n",
		len(res.Transactions), *ledgerFile, len(res.Errors))
	return subcommands.ExitSuccess
}

// mergeTransactions appends the imported entries that are not already in
// the ledger, comparing full transaction equality.
func mergeTransactions(existing, imported []casafolio.Transaction) []casafolio.Transaction {
	merged := existing
	for _, tx := range imported {
		known := false
		for _, e := range existing {
			if e.Equal(tx) {
				known = true
				break
			}
		}
		if !known {
			merged = append(merged, tx)
		}
	}
	return merged
}
