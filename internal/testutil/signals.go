// Package testutil holds deterministic signals and assertion helpers shared
// by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Segment is one constant-pitch stretch of a melody.
type Segment struct {
	Frequency float64 // 0 for silence
	Samples   int
}

// Melody concatenates sine segments at a fixed amplitude. Phase restarts at
// every segment boundary.
func Melody(sampleRate, amplitude float64, segments ...Segment) []float64 {
	var out []float64
	for _, s := range segments {
		if s.Frequency <= 0 {
			out = append(out, make([]float64, s.Samples)...)
			continue
		}
		out = append(out, DeterministicSine(s.Frequency, sampleRate, amplitude, s.Samples)...)
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
