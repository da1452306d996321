package core

import "math"

// Epsilon is the absolute tolerance used for every floating point comparison
// in the renderer. It is not scaled by magnitude, so scenes with coordinates
// far outside roughly [-1e4, 1e4] lose precision in equality tests.
const Epsilon = 1e-5

// FloatEqual reports whether a and b differ by no more than Epsilon
func FloatEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

// Round rounds v to 5 decimal places
func Round(v float64) float64 {
	const sigFigs = 100000.0
	return math.Round(v*sigFigs) / sigFigs
}
