package core

import "math"

// -----------------------------------------------------------------------------

// CalculateMean computes the arithmetic mean. Empty input returns 0.
func CalculateMean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// -----------------------------------------------------------------------------

// RoundToDecimals rounds half away from zero to the given number of decimal
// places (matching JS Math.round semantics for non-negative input).
func RoundToDecimals(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// -----------------------------------------------------------------------------

// RoundMean rounds a mean to the nearest integer.
func RoundMean(v float64) int64 {
	return int64(math.Round(v))
}
