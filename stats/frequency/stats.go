// Package frequency computes statistics of magnitude spectra.
package frequency

import "math"

// Stats holds frequency-domain statistics computed from a magnitude spectrum.
type Stats struct {
	BinCount int
	Max      float64
	MaxBin   int     // lowest bin index holding Max
	Peak     float64 // frequency of MaxBin (Hz), NaN when the spectrum is silent
	Sum      float64
	Centroid float64 // magnitude-weighted mean frequency (Hz)
}

// Calculate computes statistics over the given magnitude bins of a
// transform of length fftSize. The frequency of bin i is
// i * sampleRate / fftSize.
//
// Ties for the maximum resolve to the lowest bin index. An empty or
// all-zero spectrum yields a NaN Peak.
func Calculate(magnitude []float64, sampleRate float64, fftSize int) Stats {
	s := Stats{BinCount: len(magnitude), Peak: math.NaN(), Centroid: math.NaN()}
	if len(magnitude) == 0 || fftSize <= 0 {
		return s
	}

	var weighted float64
	for i, v := range magnitude {
		if math.IsNaN(v) {
			continue
		}
		s.Sum += v
		weighted += v * binFreq(i, sampleRate, fftSize)
		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
	}

	if s.Max > 0 {
		s.Peak = binFreq(s.MaxBin, sampleRate, fftSize)
		s.Centroid = weighted / s.Sum
	}
	return s
}

func binFreq(i int, sampleRate float64, fftSize int) float64 {
	return float64(i) * sampleRate / float64(fftSize)
}
