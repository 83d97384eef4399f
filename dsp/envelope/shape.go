package envelope

import (
	"fmt"
	"math"
	"strings"
)

// Shape selects a fixed envelope that depends only on time/duration.
type Shape int

const (
	// Flat holds 1 for the whole note.
	Flat Shape = iota
	// Drop is a quarter cosine falling from 1 to 0.
	Drop
	// Rise is a quarter sine rising from 0 to 1.
	Rise
	// Round is a half sine, 0 at both ends and 1 in the middle.
	Round
	// Triangle rises linearly to 1 at the midpoint and falls back to 0.
	Triangle
	// Drawl falls logarithmically from 1 to 0.
	Drawl
	// Rawl rises logarithmically from 0 to 1.
	Rawl
	// Tempered is Drop shaped by Drawl.
	Tempered
	// Tadpole rises over the first quarter, then decays over the rest.
	Tadpole
	// Diamond is a raised cosine, 0 at both ends and 1 in the middle.
	Diamond
)

var shapeNames = [...]string{
	Flat:     "flat",
	Drop:     "drop",
	Rise:     "rise",
	Round:    "round",
	Triangle: "triangle",
	Drawl:    "drawl",
	Rawl:     "rawl",
	Tempered: "tempered",
	Tadpole:  "tadpole",
	Diamond:  "diamond",
}

// String returns the lower-case shape name.
func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Shapes returns all fixed shapes in declaration order.
func Shapes() []Shape {
	out := make([]Shape, len(shapeNames))
	for i := range out {
		out[i] = Shape(i)
	}
	return out
}

// ParseShape resolves a shape name case-insensitively.
func ParseShape(name string) (Shape, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range shapeNames {
		if s == n {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("envelope: unknown shape %q", name)
}

// At evaluates the shape at ratio r = time/duration. Outside [0, 1] the
// result is 0.
func (s Shape) At(r float64) float64 {
	if r < 0 || r > 1 || math.IsNaN(r) {
		return 0
	}

	var v float64
	switch s {
	case Flat:
		v = 1
	case Drop:
		v = math.Cos(math.Pi * r / 2)
	case Rise:
		v = math.Sin(math.Pi * r / 2)
	case Round:
		v = math.Sin(math.Pi * r)
	case Triangle:
		v = 1 - math.Abs(2*r-1)
	case Drawl:
		v = 1 - LogScale(r, 0, 1)
	case Rawl:
		v = LogScale(r, 0, 1)
	case Tempered:
		v = Drop.At(r) * Drawl.At(r)
	case Tadpole:
		if r < 0.25 {
			v = math.Sin(2 * math.Pi * r)
		} else {
			v = math.Cos(math.Pi / 2 * (r - 0.25) / 0.75)
		}
	case Diamond:
		v = 0.5 - 0.5*math.Cos(2*math.Pi*r)
	}

	return snap(v)
}

// snap pins values within rounding distance of 0 or 1 to the exact end
// point so shape boundaries compare equal.
func snap(v float64) float64 {
	const eps = 1e-12
	switch {
	case math.Abs(v) < eps:
		return 0
	case math.Abs(v-1) < eps:
		return 1
	}
	return v
}
