package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeTriangle
)

var names = map[Type]string{
	TypeRectangular: "rectangular",
	TypeHann:        "hann",
	TypeHamming:     "hamming",
	TypeBlackman:    "blackman",
	TypeTriangle:    "triangle",
}

// String returns the window name.
func (t Type) String() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Parse resolves a window name. The empty string and "none" select
// TypeRectangular.
func Parse(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "none", "rect":
		return TypeRectangular, nil
	case "hanning":
		return TypeHann, nil
	}
	for t, n := range names {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// Generate returns the periodic form of t with length samples, the form
// suited to FFT analysis.
func Generate(t Type, length int) []float64 {
	if length <= 0 {
		return nil
	}
	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}
	n := float64(length)
	for i := range out {
		out[i] = eval(t, float64(i)/n)
	}
	return out
}

// Apply multiplies buf by t in place.
func Apply(t Type, buf []float64) {
	if t == TypeRectangular || len(buf) == 0 {
		return
	}
	vecmath.MulBlockInPlace(buf, Generate(t, len(buf)))
}

// Applied returns a windowed copy of samples.
func Applied(t Type, samples []float64) []float64 {
	out := make([]float64, len(samples))
	if t == TypeRectangular {
		copy(out, samples)
		return out
	}
	vecmath.MulBlock(out, samples, Generate(t, len(samples)))
	return out
}

// eval evaluates t at normalized position x in [0, 1).
func eval(t Type, x float64) float64 {
	w := 2 * math.Pi * x
	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(w)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(w)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(w) + 0.08*math.Cos(2*w)
	case TypeTriangle:
		return 1 - math.Abs(2*x-1)
	default:
		return 1
	}
}
