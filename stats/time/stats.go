// Package time computes time-domain statistics of sample buffers.
package time

import "math"

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length        int
	Mean          float64
	RMS           float64
	RMS_dB        float64
	Peak          float64 // max(|x|)
	Peak_dB       float64
	PeakPos       int
	CrestFactor   float64 // peak / RMS (linear)
	Energy        float64 // sum of squares
	ZeroCrossings int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Calculate computes all statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{
			RMS_dB:  math.Inf(-1),
			Peak_dB: math.Inf(-1),
		}
	}

	var (
		sum, sumSq    float64
		peak          float64
		peakPos       int
		zeroCrossings int
	)

	for i, x := range signal {
		sum += x
		sumSq += x * x

		if a := math.Abs(x); a > peak {
			peak = a
			peakPos = i
		}

		if i > 0 && signal[i-1]*x < 0 {
			zeroCrossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)

	crest := 0.0
	if rms > 0 {
		crest = peak / rms
	}

	return Stats{
		Length:        n,
		Mean:          sum / nf,
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Peak:          peak,
		Peak_dB:       ampTodB(peak),
		PeakPos:       peakPos,
		CrestFactor:   crest,
		Energy:        sumSq,
		ZeroCrossings: zeroCrossings,
	}
}
