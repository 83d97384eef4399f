package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrNotPowerOfTwo is returned when a transform length is not a power of two.
var ErrNotPowerOfTwo = errors.New("spectrum: length must be a power of two")

// NextPowerOfTwo returns the smallest power of two >= n. It returns 1 for
// n <= 1.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// ZeroPad converts a real chunk to complex bins and extends it with zeros to
// the next power of two.
func ZeroPad(chunk []float64) []complex128 {
	out := make([]complex128, NextPowerOfTwo(len(chunk)))
	for i, x := range chunk {
		out[i] = complex(x, 0)
	}
	return out
}

// FFT returns the discrete Fourier transform of x using recursive radix-2
// decimation in time. len(x) must be a power of two; lengths <= 1 are
// returned unchanged. x is not modified.
func FFT(x []complex128) ([]complex128, error) {
	n := len(x)
	if n <= 1 {
		return append([]complex128(nil), x...), nil
	}
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}
	return fftRecursive(x), nil
}

func fftRecursive(x []complex128) []complex128 {
	n := len(x)
	if n <= 1 {
		return []complex128{x[0]}
	}

	half := n / 2
	even := make([]complex128, half)
	odd := make([]complex128, half)
	for i := range half {
		even[i] = x[2*i]
		odd[i] = x[2*i+1]
	}

	e := fftRecursive(even)
	o := fftRecursive(odd)

	out := make([]complex128, n)
	for k := range half {
		t := cmplx.Rect(1, -2*math.Pi*float64(k)/float64(n)) * o[k]
		out[k] = e[k] + t
		out[k+half] = e[k] - t
	}
	return out
}

// PlannedFFT computes the same transform as [FFT] through an algo-fft plan.
type PlannedFFT struct {
	plan *algofft.Plan[complex128]
	out  []complex128
	n    int
}

// NewPlannedFFT prepares a forward transform of length n.
func NewPlannedFFT(n int) (*PlannedFFT, error) {
	if !IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}
	return &PlannedFFT{plan: plan, out: make([]complex128, n), n: n}, nil
}

// Len returns the transform length.
func (p *PlannedFFT) Len() int { return p.n }

// Forward transforms x and returns a slice owned by p that is overwritten
// by the next call. len(x) must equal Len().
func (p *PlannedFFT) Forward(x []complex128) ([]complex128, error) {
	if len(x) != p.n {
		return nil, fmt.Errorf("spectrum: input length %d does not match plan length %d", len(x), p.n)
	}
	if err := p.plan.Forward(p.out, x); err != nil {
		return nil, fmt.Errorf("spectrum: fft forward: %w", err)
	}
	return p.out, nil
}

// BinFrequency returns the centre frequency of bin k for a transform of
// length n at sampleRate.
func BinFrequency(k, n int, sampleRate float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(k) * sampleRate / float64(n)
}
