package signal

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// PeakAbs returns the largest absolute sample value across all channels.
func PeakAbs(channels ...[]float64) float64 {
	maxAbs := 0.0
	for _, ch := range channels {
		for _, v := range ch {
			if av := math.Abs(v); av > maxAbs {
				maxAbs = av
			}
		}
	}
	return maxAbs
}

// NormalizeInPlace scales every channel by one common gain so the loudest
// sample reaches targetPeak. Silent input is left untouched. It returns the
// applied gain.
func NormalizeInPlace(targetPeak float64, channels ...[]float64) (float64, error) {
	if targetPeak <= 0 || math.IsNaN(targetPeak) || math.IsInf(targetPeak, 0) {
		return 0, fmt.Errorf("signal: normalize target peak must be > 0: %f", targetPeak)
	}
	maxAbs := PeakAbs(channels...)
	if maxAbs == 0 {
		return 1, nil
	}
	gain := targetPeak / maxAbs
	for _, ch := range channels {
		vecmath.ScaleBlock(ch, ch, gain)
	}
	return gain, nil
}

// Interleave merges two channels into L/R frames. The shorter channel is
// padded with zeros.
func Interleave(left, right []float64) []float64 {
	n := max(len(left), len(right))
	out := make([]float64, 2*n)
	for i := range n {
		if i < len(left) {
			out[2*i] = left[i]
		}
		if i < len(right) {
			out[2*i+1] = right[i]
		}
	}
	return out
}

// Deinterleave splits frames of the given channel count into separate
// channels. A trailing partial frame is dropped.
func Deinterleave(frames []float64, channels int) [][]float64 {
	if channels <= 0 {
		return nil
	}
	n := len(frames) / channels
	out := make([][]float64, channels)
	for c := range out {
		out[c] = make([]float64, n)
		for i := range n {
			out[c][i] = frames[i*channels+c]
		}
	}
	return out
}
