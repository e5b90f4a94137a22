package casafolio

import (
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeTransactions(t *testing.T) {
	in := []Transaction{
		sell(day(2023, time.February, 1), "ATW", 5, 480, 2370),
		deposit(day(2023, time.January, 2), 10000),
		buyWithFees(day(2023, time.January, 5), "ATW", 10, 450, -4540, 40),
	}

	var buf strings.Builder
	if err := EncodeTransactions(&buf, in); err != nil {
		t.Fatalf("EncodeTransactions() error = %v", err)
	}

	out, err := DecodeTransactions(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d transactions, want 3", len(out))
	}
	// Canonical order is chronological regardless of input order.
	if out[0].Operation != OpDeposit || out[1].Ticker != "ATW" || out[2].Operation != OpSell {
		t.Errorf("decoded order: %v", out)
	}
	if !out[1].Equal(in[2]) {
		t.Errorf("round trip changed the buy: got %+v, want %+v", out[1], in[2])
	}
	if out[0].Fees != nil {
		t.Errorf("absent fees resurfaced as %v after round trip", *out[0].Fees)
	}
}

func TestDecodeTransactions_ledgerLine(t *testing.T) {
	// A hand-written ledger line, labels in canonical French.
	in := `{"date":"2023-01-05","company":"Attijariwafa Bank","operation":"Achat","ticker":"ATW","qty":10,"price":450,"total":-4540,"fees":40}` + "\n\n"
	out, err := DecodeTransactions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeTransactions() error = %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d transactions, want 1 (blank lines skipped)", len(out))
	}
	tx := out[0]
	if tx.Operation != OpBuy || tx.Date != day(2023, time.January, 5) || tx.Fees == nil || *tx.Fees != 40 {
		t.Errorf("decoded = %+v", tx)
	}
}

func TestDecodeTransactions_badLine(t *testing.T) {
	in := "{\"date\":\"2023-01-05\",\"operation\":\"Achat\",\"total\":-10}\nnot json\n"
	if _, err := DecodeTransactions(strings.NewReader(in)); err == nil {
		t.Errorf("DecodeTransactions() error = nil, want parse error with line number")
	} else if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error = %v, want mention of line 2", err)
	}
}

func TestEncodeDecodeFeeRecords(t *testing.T) {
	in := []FeeRecord{
		{Date: day(2023, time.June, 30), Type: CustodyFee, Amount: 25, Description: "Droits de garde T2"},
		{Date: day(2023, time.March, 31), Type: SubscriptionFee, Amount: 49},
	}

	var buf strings.Builder
	if err := EncodeFeeRecords(&buf, in); err != nil {
		t.Fatalf("EncodeFeeRecords() error = %v", err)
	}
	out, err := DecodeFeeRecords(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("DecodeFeeRecords() error = %v", err)
	}
	if len(out) != 2 || out[0].Type != SubscriptionFee || out[1].Description != "Droits de garde T2" {
		t.Errorf("decoded = %+v", out)
	}
}

func TestDecodeFeeRecords_rejectsUnknownType(t *testing.T) {
	in := `{"date":"2023-03-31","type":"XXX","amount":25}` + "\n"
	if _, err := DecodeFeeRecords(strings.NewReader(in)); err == nil {
		t.Errorf("DecodeFeeRecords() error = nil, want unknown fee type error")
	}
}
