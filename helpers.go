package casafolio

import "math"

// roundTo rounds a value to a given number of decimal places, to keep
// floating-point drift out of running accumulators.
func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
