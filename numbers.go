package casafolio

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	currencyMarkerRE = regexp.MustCompile(`(?i)\s?MAD`)
	nonNumericRE     = regexp.MustCompile(`[^0-9.\-]`)
)

// ParseAmount parses a monetary string whose decimal convention is unknown.
// Brokerage exports mix French and US conventions freely: "1 010,00",
// "1,010.00", "-1.010,00 MAD" all denote the same amounts.
//
// The decimal separator is whichever of "," and "." occurs last; the other
// is treated as a thousands separator and stripped. A lone comma is
// ambiguous: exactly three trailing digits with at least one leading digit
// reads as a thousands separator, anything else as a decimal point. This is
// deliberately lossy ("1,234" parses as 1234, never 1.234).
//
// The second return value is false when the string cannot be read as a
// number at all. An empty or lone "-" value parses as 0.
func ParseAmount(s string) (float64, bool) {
	clean := strings.TrimSpace(currencyMarkerRE.ReplaceAllString(strings.TrimSpace(s), ""))
	if clean == "" || clean == "-" {
		return 0, true
	}

	lastComma := strings.LastIndex(clean, ",")
	lastPeriod := strings.LastIndex(clean, ".")

	switch {
	case lastComma >= 0 && lastPeriod >= 0 && lastComma > lastPeriod:
		// European style: 1.234,56
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case lastPeriod > lastComma:
		// US style: 1,234.56
		clean = strings.ReplaceAll(clean, ",", "")
	case lastComma >= 0:
		head, tail, _ := strings.Cut(clean, ",")
		if len(tail) == 3 && len(head) >= 1 {
			clean = head + tail
		} else {
			clean = head + "." + tail
		}
	}

	clean = nonNumericRE.ReplaceAllString(clean, "")
	if strings.HasPrefix(clean, ".") {
		clean = "0" + clean
	} else if strings.HasPrefix(clean, "-.") {
		clean = "-0" + clean[1:]
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
