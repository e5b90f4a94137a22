package casafolio

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// csvSchema identifies one of the historical export layouts, detected from
// the header row.
type csvSchema int

const (
	schemaUnknown csvSchema = iota
	// schemaLegacy: Date,Company,ISIN,Operation,Ticker,Qty,Price,Total[,Fees,Tax]
	schemaLegacy
	// schemaCashLedger: Date,Category,Description,Ticker,Qty,Unit_Price,Amount
	schemaCashLedger
	// schemaComprehensive: Date,Type,Ticker,Qty,Price,Net Amount,Fees,Tax,Realized P&L
	schemaComprehensive
)

// ImportResult is the outcome of parsing one CSV export. Errors and
// Warnings are non-fatal per-line issues: an import with bad rows still
// succeeds for the good rows.
type ImportResult struct {
	Transactions []Transaction
	Errors       []string
	Warnings     []string
}

// ImportTransactions parses a raw brokerage CSV export into a
// chronologically sorted transaction list.
//
// The delimiter is auto-detected among comma, semicolon and tab from the
// header line, and the schema variant from the header names. Rows whose
// date or structure cannot be parsed are skipped and reported in the
// result, not raised as errors. Only a structurally empty input (no header,
// no data rows) is an error.
func ImportTransactions(r io.Reader) (*ImportResult, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read CSV: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("CSV file is empty or has no data rows")
	}

	headerLine := strings.TrimSpace(lines[0])
	delimiter := detectDelimiter(headerLine)
	headers := splitTrim(headerLine, delimiter)
	schema := detectSchema(headers)

	res := &ImportResult{}
	for i, line := range lines[1:] {
		lineNo := i + 2 // 1-based, after the header
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		values := strings.Split(line, delimiter)
		values = reflow(values, len(headers), delimiter)
		if len(values) != len(headers) {
			res.Warnings = append(res.Warnings, fmt.Sprintf("line %d: column count mismatch", lineNo))
			continue
		}

		row := make(map[string]string, len(headers))
		for i, h := range headers {
			row[h] = strings.TrimSpace(values[i])
		}

		day, err := ParseDate(row["Date"])
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: invalid date format %q", lineNo, row["Date"]))
			continue
		}

		var tx Transaction
		switch schema {
		case schemaComprehensive:
			tx = parseComprehensiveRow(row, day)
		case schemaLegacy:
			tx = parseLegacyRow(row, day)
		case schemaCashLedger:
			tx = parseCashLedgerRow(row, day)
		default:
			res.Errors = append(res.Errors, fmt.Sprintf("line %d: unrecognized CSV schema", lineNo))
			continue
		}
		res.Transactions = append(res.Transactions, tx)
	}

	slices.SortStableFunc(res.Transactions, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return res, nil
}

func detectDelimiter(headerLine string) string {
	switch {
	case strings.Contains(headerLine, "\t"):
		return "\t"
	case strings.Contains(headerLine, ";"):
		return ";"
	default:
		return ","
	}
}

func detectSchema(headers []string) csvSchema {
	has := func(name string) bool { return slices.Contains(headers, name) }
	switch {
	case has("Net Amount") && has("Realized P&L"):
		return schemaComprehensive
	case has("Operation") && !has("Net Amount"):
		return schemaLegacy
	case has("Category") && has("Amount"):
		return schemaCashLedger
	default:
		return schemaUnknown
	}
}

func splitTrim(s, delimiter string) []string {
	parts := strings.Split(s, delimiter)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// reflow heals rows that split into more fields than the header has. This
// happens when the final column holds a thousands-separated amount using
// the same character as the delimiter ("-1,010.00 MAD"): all trailing
// fragments are rejoined into the last column so alignment is preserved.
// Rows still mismatched after reflow are left as-is for the caller to skip.
func reflow(values []string, want int, delimiter string) []string {
	if len(values) <= want {
		return values
	}
	fixed := make([]string, want)
	copy(fixed, values[:want-1])
	fixed[want-1] = strings.Join(values[want-1:], delimiter)
	return fixed
}

// parseLegacyRow reads the original export layout, where Operation holds
// free-text labels and Fees/Tax columns may or may not exist.
func parseLegacyRow(row map[string]string, day Date) Transaction {
	return Transaction{
		Date:      day,
		Company:   row["Company"],
		ISIN:      row["ISIN"],
		Operation: ParseOperation(row["Operation"]),
		Ticker:    row["Ticker"],
		Qty:       amountOrZero(row["Qty"]),
		Price:     amountOrZero(row["Price"]),
		Total:     amountOrZero(row["Total"]),
		Fees:      optAmount(row, "Fees"),
		Tax:       optAmount(row, "Tax"),
	}
}

// parseCashLedgerRow reads the bank-statement style layout. Only deposits
// are recognized; everything else is an unclassified cash movement.
func parseCashLedgerRow(row map[string]string, day Date) Transaction {
	op := OpUnknown
	if strings.Contains(strings.ToLower(row["Category"]), "deposit") {
		op = OpDeposit
	}
	return Transaction{
		Date:      day,
		Company:   row["Description"],
		Operation: op,
		Ticker:    row["Ticker"],
		Qty:       amountOrZero(row["Qty"]),
		Price:     amountOrZero(row["Unit_Price"]),
		Total:     amountOrZero(row["Amount"]),
	}
}

// parseComprehensiveRow reads the full export layout. Net amounts are
// quoted from the broker's point of view with inconsistent signs; buys,
// fees and taxes are forced negative (cash out).
func parseComprehensiveRow(row map[string]string, day Date) Transaction {
	op := ParseOperation(row["Type"])
	total := amountOrZero(row["Net Amount"])
	if total > 0 && (op == OpBuy || op == OpBankFee || op == OpTax) {
		total = -total
	}
	return Transaction{
		Date:       day,
		Company:    row["Ticker"],
		Operation:  op,
		Ticker:     row["Ticker"],
		Qty:        amountOrZero(row["Qty"]),
		Price:      amountOrZero(row["Price"]),
		Total:      total,
		Fees:       optAmount(row, "Fees"),
		Tax:        optAmount(row, "Tax"),
		RealizedPL: optAmount(row, "Realized P&L"),
	}
}

func amountOrZero(s string) float64 {
	v, ok := ParseAmount(s)
	if !ok {
		return 0
	}
	return v
}

// optAmount reads an optional column: absent column or blank/unparseable
// cell yields nil, so downstream inference knows the value was not
// provided.
func optAmount(row map[string]string, key string) *float64 {
	s, ok := row[key]
	if !ok || strings.TrimSpace(s) == "" {
		return nil
	}
	v, parsed := ParseAmount(s)
	if !parsed {
		return nil
	}
	return amount(v)
}
