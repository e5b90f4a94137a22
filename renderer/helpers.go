// Package renderer turns portfolio structures into markdown reports.
// It is purely presentational: no computation happens here beyond
// formatting.
package renderer

import (
	"fmt"

	"github.com/Rhymond/go-money"
)

// mad formats a dirham amount with the MAD currency conventions.
func mad(v float64) string {
	return money.NewFromFloat(v, money.MAD).Display()
}

// signedMAD formats a dirham amount with an explicit sign, "-" for zero.
func signedMAD(v float64) string {
	if v == 0 {
		return "-"
	}
	if v > 0 {
		return "+" + mad(v)
	}
	return mad(v)
}

// percent formats a ratio already expressed in percent points.
func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// signedPercent is percent with an explicit sign.
func signedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// qty formats a share quantity, trimming insignificant decimals.
func qty(v float64) string {
	return fmt.Sprintf("%.4g", v)
}
