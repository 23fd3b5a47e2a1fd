package engine

import "math"

// SafeRatio divides num by den, returning whenZero if the denominator is
// zero. Every ratio in the engine and evaluator goes through this helper so
// the divide-by-zero policy lives in exactly one place.
func SafeRatio(num, den, whenZero float64) float64 {
	if den == 0 {
		return whenZero
	}
	return num / den
}

// Round1 rounds to one decimal place, the precision of all revenue figures.
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// RoundInt rounds to the nearest integer, used for satisfaction scores and
// aggregate percentages.
func RoundInt(x float64) int {
	return int(math.Round(x))
}

// Clamp limits x to the inclusive range [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
