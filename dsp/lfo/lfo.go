// Package lfo provides the low-frequency oscillators applied to notes as
// sample *= 1 + lfo(t).
package lfo

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Shape selects the modulation waveform.
type Shape int

const (
	// Sine modulates with sin(2*pi*f*t).
	Sine Shape = iota
	// Triangle modulates with (2/pi)*asin(sin(2*pi*f*t)).
	Triangle
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// LFO is a stateless modulator. The zero value has no depth and leaves
// samples unchanged.
type LFO struct {
	Frequency float64
	Depth     float64
	Shape     Shape
}

// Option mutates LFO construction parameters.
type Option func(*LFO) error

// WithShape selects the modulation waveform.
func WithShape(s Shape) Option {
	return func(l *LFO) error {
		if s != Sine && s != Triangle {
			return fmt.Errorf("lfo: invalid shape: %d", s)
		}
		l.Shape = s
		return nil
	}
}

// New builds a validated LFO.
func New(frequency, depth float64, opts ...Option) (LFO, error) {
	if frequency < 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return LFO{}, fmt.Errorf("lfo: frequency must be >= 0 and finite: %f", frequency)
	}
	if depth < 0 || depth > 1 || math.IsNaN(depth) {
		return LFO{}, fmt.Errorf("lfo: depth must be in [0, 1]: %f", depth)
	}

	l := LFO{Frequency: frequency, Depth: depth}
	for _, opt := range opts {
		if err := opt(&l); err != nil {
			return LFO{}, err
		}
	}
	return l, nil
}

// Value returns the modulation offset at time t seconds, in [-Depth, Depth].
func (l LFO) Value(t float64) float64 {
	if l.Depth == 0 {
		return 0
	}
	x := 2 * math.Pi * l.Frequency * t
	switch l.Shape {
	case Triangle:
		return 2 / math.Pi * math.Asin(math.Sin(x)) * l.Depth
	default:
		return math.Sin(x) * l.Depth
	}
}

// Apply returns sample modulated at time t.
func (l LFO) Apply(sample, t float64) float64 {
	return sample * (1 + l.Value(t))
}

// Instrument LFOs.
var (
	None                  = LFO{}
	EvolvingLead          = LFO{Frequency: 10, Depth: 0.2}
	EvolvingLeadPad       = LFO{Frequency: 35, Depth: 0.5}
	FunckLead             = LFO{Frequency: 18, Depth: 0.2}
	ThickBass             = LFO{Frequency: 15, Depth: 0.2}
	PercussiveStaccatoPad = LFO{Frequency: 0.6, Depth: 0.2}
	Organ60               = LFO{Frequency: 1, Depth: 0.08}
	Trumpet               = LFO{Frequency: 15, Depth: 0.15}
	Banjo                 = LFO{Frequency: 10, Depth: 0.1, Shape: Triangle}
	Cello                 = LFO{Frequency: 7.5, Depth: 0.05}
	Default               = LFO{Frequency: 7.5, Depth: 0.05}
)

var presets = map[string]LFO{
	"none":                  None,
	"evolvinglead":          EvolvingLead,
	"evolvingleadpad":       EvolvingLeadPad,
	"funcklead":             FunckLead,
	"thickbass":             ThickBass,
	"percussivestaccatopad": PercussiveStaccatoPad,
	"organ60":               Organ60,
	"trumpet":               Trumpet,
	"banjo":                 Banjo,
	"cello":                 Cello,
	"default":               Default,
}

// Preset returns a named LFO, matched case-insensitively.
func Preset(name string) (LFO, error) {
	if l, ok := presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l, nil
	}
	return LFO{}, fmt.Errorf("lfo: unknown preset %q", name)
}

// PresetNames lists the named LFOs in sorted order.
func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for k := range presets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
