package harmonic

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-playnoise/dsp/core"
)

// Kind selects a waveform.
type Kind int

const (
	// Sine is a pure sine.
	Sine Kind = iota
	// Triangle is a symmetric triangle.
	Triangle
	// Square is a 50% duty square.
	Square
	// Sawtooth ramps from -1 to 1 once per cycle.
	Sawtooth
	// Pulse is a rectangular wave with a configurable duty width.
	Pulse
	// First is the fundamental alone, kept for symmetry with the stacks.
	First
	// Second adds the 2nd partial to the fundamental.
	Second
	// Third adds the 2nd and 3rd partials to the fundamental.
	Third
	// Stringed mixes a sine with a half-level octave square.
	Stringed
)

var kindNames = [...]string{
	Sine:     "sine",
	Triangle: "triangle",
	Square:   "square",
	Sawtooth: "sawtooth",
	Pulse:    "pulse",
	First:    "first",
	Second:   "second",
	Third:    "third",
	Stringed: "stringed",
}

// String returns the lower-case waveform name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns all waveforms in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Parse resolves a waveform name case-insensitively. "saw" and "pulsewave"
// are accepted as aliases.
func Parse(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "saw":
		return Sawtooth, nil
	case "pulsewave":
		return Pulse, nil
	}
	for i, s := range kindNames {
		if s == n {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("harmonic: unknown waveform %q", name)
}

// Generate evaluates waveform k for a tone at frequency Hz at time t
// seconds. width is only used by Pulse and is clamped to [0, 1].
func Generate(k Kind, frequency, t, width float64) float64 {
	if k == Pulse {
		return PulseAt(frequency*t, width)
	}
	return At(k, frequency*t)
}

// At evaluates waveform k at phase (in cycles). Pulse uses a 50% width.
func At(k Kind, phase float64) float64 {
	switch k {
	case Sine, First:
		return SineAt(phase)
	case Triangle:
		return TriangleAt(phase)
	case Square:
		return SquareAt(phase)
	case Sawtooth:
		return SawtoothAt(phase)
	case Pulse:
		return PulseAt(phase, 0.5)
	case Second:
		return stack(phase, 2)
	case Third:
		return stack(phase, 3)
	case Stringed:
		return StringedAt(phase)
	default:
		return 0
	}
}

// SineAt returns sin(2*pi*phase).
func SineAt(phase float64) float64 {
	return math.Sin(2 * math.Pi * phase)
}

// TriangleAt returns a triangle starting at +1 on the cycle boundary.
func TriangleAt(phase float64) float64 {
	return 2*math.Abs(2*core.Fract(phase)-1) - 1
}

// SquareAt returns +1 for the first half of each cycle and -1 for the second.
func SquareAt(phase float64) float64 {
	if core.Fract(phase) < 0.5 {
		return 1
	}
	return -1
}

// SawtoothAt returns a rising ramp in [-1, 1).
func SawtoothAt(phase float64) float64 {
	return 2*core.Fract(phase) - 1
}

// PulseAt returns +1 while the cycle position is below width, else -1.
func PulseAt(phase, width float64) float64 {
	if core.Fract(phase) < core.Clamp(width, 0, 1) {
		return 1
	}
	return -1
}

// StringedAt mixes a fundamental sine with a half-level square one octave up.
func StringedAt(phase float64) float64 {
	s := SineAt(phase)
	oct := SineAt(2 * phase)
	sign := 0.0
	switch {
	case oct > 0:
		sign = 1
	case oct < 0:
		sign = -1
	}
	return (s + 0.5*sign) / 1.5
}

// stack sums the first n sine partials at equal level, normalized by n.
func stack(phase float64, n int) float64 {
	sum := 0.0
	for k := 1; k <= n; k++ {
		sum += SineAt(float64(k) * phase)
	}
	return sum / float64(n)
}
