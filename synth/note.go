package synth

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-playnoise/dsp/envelope"
	"github.com/cwbudde/algo-playnoise/dsp/filter/resonant"
	"github.com/cwbudde/algo-playnoise/dsp/harmonic"
	"github.com/cwbudde/algo-playnoise/dsp/lfo"
)

// DefaultRatio mixes both oscillators at equal level and halves the sum.
var DefaultRatio = [3]float64{1, 1, 2}

// Note is a set of simultaneous pitches sharing one duration and timbre.
// A note without pitches is a rest.
//
// The zero value of every timbre field is neutral: a flat envelope, sine
// oscillators, passthrough filters, no LFO, no glide and no noise. A zero
// Multiplier means 1 and a zero Ratio means [DefaultRatio].
type Note struct {
	Pitches  []Pitch `json:"pitches"`
	Duration float64 `json:"duration"`

	Envelope       envelope.Envelope `json:"envelope"`
	FilterEnvelope envelope.Envelope `json:"filterEnvelope"`

	Harmonic1 harmonic.Kind `json:"harmonic1"`
	Harmonic2 harmonic.Kind `json:"harmonic2"`
	Width1    float64       `json:"width1"`
	Width2    float64       `json:"width2"`
	// Step detunes the second oscillator in semitones.
	Step float64 `json:"step"`

	Filter1 resonant.Params `json:"filter1"`
	Filter2 resonant.Params `json:"filter2"`
	LFO     lfo.LFO         `json:"lfo"`

	// Glide is the portamento time constant in seconds.
	Glide float64 `json:"glide"`
	// GlideFrom is the frequency the first pitch starts gliding from, 0 to
	// start on pitch. Other chord pitches keep their interval to it.
	GlideFrom float64 `json:"glideFrom,omitempty"`

	Volume     float64 `json:"volume"`
	Multiplier float64 `json:"multiplier"`

	NoiseLevel float64    `json:"noiseLevel"`
	Noise      bool       `json:"noise"`
	Ratio      [3]float64 `json:"ratio"`
}

// IsRest reports whether the note has no pitches.
func (n Note) IsRest() bool {
	return len(n.Pitches) == 0
}

// Transpose returns a copy of n with accidentals shifted by semitones.
func (n Note) Transpose(semitones float64) Note {
	if semitones == 0 || len(n.Pitches) == 0 {
		return n
	}
	out := n
	out.Pitches = make([]Pitch, len(n.Pitches))
	for i, p := range n.Pitches {
		p.Accidental += semitones
		out.Pitches[i] = p
	}
	return out
}

// Validate checks the note parameters.
func (n Note) Validate() error {
	if n.Duration < 0 || math.IsNaN(n.Duration) || math.IsInf(n.Duration, 0) {
		return fmt.Errorf("synth: duration must be >= 0 and finite: %v", n.Duration)
	}
	if n.Multiplier < 0 || math.IsNaN(n.Multiplier) || math.IsInf(n.Multiplier, 0) {
		return fmt.Errorf("synth: multiplier must be >= 0 and finite: %v", n.Multiplier)
	}
	if math.IsNaN(n.Volume) || math.IsInf(n.Volume, 0) {
		return fmt.Errorf("synth: volume must be finite: %v", n.Volume)
	}
	if n.Glide < 0 || math.IsNaN(n.Glide) {
		return fmt.Errorf("synth: glide must be >= 0: %v", n.Glide)
	}
	if math.IsNaN(n.NoiseLevel) || math.IsInf(n.NoiseLevel, 0) {
		return fmt.Errorf("synth: noise level must be finite: %v", n.NoiseLevel)
	}
	if r := n.ratio(); r[2] == 0 {
		return fmt.Errorf("synth: ratio divisor must be non-zero: %v", r)
	}
	for _, p := range n.Pitches {
		if f := p.Hz(); !(f > 0) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: %v", ErrInvalidFrequency, f)
		}
	}
	if err := n.Envelope.Validate(); err != nil {
		return err
	}
	if err := n.FilterEnvelope.Validate(); err != nil {
		return err
	}
	if err := n.Filter1.Validate(); err != nil {
		return err
	}
	return n.Filter2.Validate()
}

func (n Note) ratio() [3]float64 {
	if n.Ratio == [3]float64{} {
		return DefaultRatio
	}
	return n.Ratio
}

func (n Note) multiplier() float64 {
	if n.Multiplier == 0 {
		return 1
	}
	return n.Multiplier
}
