// Package cmd implements the CLI application to manage a Casablanca
// brokerage account.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/ybenchekroun/casafolio"
)

// Commands lists the registered subcommands; a main package registers
// them on a commander and executes the selected one.
var Commands = []subcommands.Command{
	&importCmd{},
	&summaryCmd{},
	&holdingCmd{},
	&historyCmd{},
	&txCmd{},
	&feeCmd{},
	&topicCmd{},
}

// As a CLI application, it has a very short lived lifecycle, so it is ok
// to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file (JSONL format)")
var feesFile = flag.String("fees-file", "fees.jsonl", "Path to the recurring fee records file (JSONL format)")
var pricesFile = flag.String("prices-file", "prices.json", "Path to the current prices file (JSON object)")
var verbose = flag.Bool("v", false, "Enable debug logging")

// Logger returns the application logger, writing human-readable events
// to stderr so stdout stays clean for reports.
func Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

// DecodeLedger reads the app ledger file. A missing file is an empty
// ledger, not an error.
func DecodeLedger() ([]casafolio.Transaction, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		logger := Logger()
		logger.Warn().Str("file", *ledgerFile).Msg("ledger file does not exist, starting empty")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return casafolio.DecodeTransactions(f)
}

// DecodeFees reads the app recurring fee records file. A missing file
// means no recurring fees.
func DecodeFees() ([]casafolio.FeeRecord, error) {
	f, err := os.Open(*feesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return casafolio.DecodeFeeRecords(f)
}

// DecodeCurrentPrices reads the app prices file. A missing file means
// valuations fall back to last trade prices.
func DecodeCurrentPrices() (map[string]float64, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		logger := Logger()
		logger.Warn().Str("file", *pricesFile).Msg("prices file does not exist, valuing at last trade prices")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return casafolio.DecodePrices(f)
}

// LoadSummary assembles the full portfolio state from the app files.
func LoadSummary() (*casafolio.Summary, error) {
	transactions, err := DecodeLedger()
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger %q: %w", *ledgerFile, err)
	}
	prices, err := DecodeCurrentPrices()
	if err != nil {
		return nil, fmt.Errorf("cannot read prices %q: %w", *pricesFile, err)
	}
	fees, err := DecodeFees()
	if err != nil {
		return nil, fmt.Errorf("cannot read fee records %q: %w", *feesFile, err)
	}

	s := casafolio.NewSummary(transactions, prices, fees)
	log := Logger()
	for _, w := range s.Warnings {
		log.Warn().Msg(w)
	}
	return s, nil
}

// EncodeLedger writes the full transaction list back to the app ledger
// file in canonical form.
func EncodeLedger(transactions []casafolio.Transaction) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return casafolio.EncodeTransactions(f, transactions)
}

// AppendFeeRecord appends one fee record to the app fees file.
func AppendFeeRecord(rec casafolio.FeeRecord) subcommands.ExitStatus {
	f, err := os.OpenFile(*feesFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening fee records file %q: %v\n", *feesFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := casafolio.EncodeFeeRecords(f, []casafolio.FeeRecord{rec}); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to fee records file %q: %v\n", *feesFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended fee record to %s\n", *feesFile)
	return subcommands.ExitSuccess
}
