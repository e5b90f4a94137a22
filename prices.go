package casafolio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// DecodePrices reads a current-prices document: a JSON object mapping
// tickers to prices, either at the top level or under a "prices" key.
// Both shapes occur in the wild (hand-maintained override files use the
// flat form, exported snapshots wrap it with metadata).
//
// Prices may be JSON numbers or locale-formatted strings ("1 350,00").
func DecodePrices(r io.Reader) (map[string]float64, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot parse prices document: %w", err)
	}

	node := jobj
	if jval, err := jsonpath.Get("$.prices", jobj); err == nil {
		// jsonpath is never clear about whether it returns a list of one
		// answer or a single answer; keep the first one if any.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if jval != nil {
			node = jval
		}
	}

	object, ok := node.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("prices document is not a ticker-to-price object")
	}

	prices := make(map[string]float64, len(object))
	for ticker, jval := range object {
		switch v := jval.(type) {
		case float64:
			prices[ticker] = v
		case string:
			price, parsed := ParseAmount(v)
			if !parsed {
				return nil, fmt.Errorf("price for %q is not a number: %q", ticker, v)
			}
			prices[ticker] = price
		default:
			return nil, fmt.Errorf("price for %q is not a number: %v", ticker, jval)
		}
	}
	return prices, nil
}
