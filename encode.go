package casafolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// This file handles the ledger persistence format: JSONL, one transaction
// per line. It is human readable, trivially diffable, and easy to merge.

// DecodeTransactions reads a JSONL transaction stream and returns the
// entries sorted chronologically (stable, so intra-day file order is
// preserved).
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var transactions []Transaction
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("cannot parse ledger line %d: %w", lineNo, err)
		}
		transactions = append(transactions, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger: %w", err)
	}

	slices.SortStableFunc(transactions, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return transactions, nil
}

// EncodeTransactions writes transactions as JSONL in canonical
// chronological order.
func EncodeTransactions(w io.Writer, transactions []Transaction) error {
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})

	for _, tx := range sorted {
		data, err := json.Marshal(tx)
		if err != nil {
			return fmt.Errorf("cannot marshal transaction %s: %w", tx, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write ledger: %w", err)
		}
	}
	return nil
}

// DecodeFeeRecords reads the recurring fee records file (JSONL, one record
// per line), sorted chronologically.
func DecodeFeeRecords(r io.Reader) ([]FeeRecord, error) {
	var records []FeeRecord
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec FeeRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("cannot parse fee record line %d: %w", lineNo, err)
		}
		if _, err := ParseFeeType(string(rec.Type)); err != nil {
			return nil, fmt.Errorf("fee record line %d: %w", lineNo, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read fee records: %w", err)
	}

	slices.SortStableFunc(records, func(a, b FeeRecord) int {
		return a.Date.Compare(b.Date)
	})
	return records, nil
}

// EncodeFeeRecords writes fee records as JSONL in chronological order.
func EncodeFeeRecords(w io.Writer, records []FeeRecord) error {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b FeeRecord) int {
		return a.Date.Compare(b.Date)
	})

	for _, rec := range sorted {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("cannot marshal fee record: %w", err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write fee records: %w", err)
		}
	}
	return nil
}
