package casafolio

import (
	"testing"
	"time"
)

// approx fails the test when got is not within tol of want.
func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	if diff > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// day is a shorthand to build dates in fixtures.
func day(y int, m time.Month, d int) Date { return NewDate(y, m, d) }

// buy builds a buy transaction fixture. Fees stay nil for inference.
func buy(on Date, ticker string, qty, price, total float64) Transaction {
	return Transaction{Date: on, Operation: OpBuy, Ticker: ticker, Company: ticker, Qty: qty, Price: price, Total: total}
}

// sell builds a sell transaction fixture. Fees and Tax stay nil for inference.
func sell(on Date, ticker string, qty, price, total float64) Transaction {
	return Transaction{Date: on, Operation: OpSell, Ticker: ticker, Company: ticker, Qty: qty, Price: price, Total: total}
}

func deposit(on Date, total float64) Transaction {
	return Transaction{Date: on, Operation: OpDeposit, Company: "Virement", Total: total}
}
