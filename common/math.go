package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp01 limits t to [0, 1]. NaN maps to 0.
func Clamp01(t float64) float64 {
	if !(t > 0) {
		return 0
	}
	return math.Min(t, 1)
}
