package envelope

import "math"

// ExpScale maps x in [min, max] onto [0, 1] along (e^u - 1)/(e - 1) with
// u = (x-min)/(max-min). The ends map exactly to 0 and 1 and inputs outside
// the range are clamped.
func ExpScale(x, min, max float64) float64 {
	u, ok := unit(x, min, max)
	if ok {
		return u
	}
	return (mathExp(u) - 1) / (math.E - 1)
}

// LogScale maps x in [min, max] onto [0, 1] along log10(1 + 9u) with
// u = (x-min)/(max-min). The ends map exactly to 0 and 1 and inputs outside
// the range are clamped.
func LogScale(x, min, max float64) float64 {
	u, ok := unit(x, min, max)
	if ok {
		return u
	}
	return mathLog10(1 + 9*u)
}

// LinearScale maps x in [min, max] linearly onto [0, 1], clamped.
func LinearScale(x, min, max float64) float64 {
	u, _ := unit(x, min, max)
	return u
}

// unit normalizes x to [0, 1]. ok is true when the result is an end point
// that callers must return unchanged.
func unit(x, min, max float64) (u float64, ok bool) {
	if max <= min || x >= max {
		return 1, true
	}
	if x <= min {
		return 0, true
	}
	return (x - min) / (max - min), false
}
