package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// The resonant filter feeds its own output back, so silence tails would
// otherwise decay through the denormal range.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// Fract returns the fractional part of x in [0, 1), also for negative x.
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// Semitone shifts frequency by steps equal-tempered semitones.
func Semitone(frequency, steps float64) float64 {
	if steps == 0 {
		return frequency
	}
	return frequency * math.Pow(2, steps/12)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}
