package envelope

import (
	"fmt"
	"math"
)

// Kind tags which family an [Envelope] belongs to.
type Kind int

const (
	// KindShape evaluates a fixed [Shape].
	KindShape Kind = iota
	// KindFractional is an attack/decay/hold/release curve whose phase
	// lengths are fractions of the note duration.
	KindFractional
	// KindAHDSR is an attack/hold/decay/sustain/release curve in seconds
	// whose release ends exactly at the note duration.
	KindAHDSR
	// KindNote sustains until the note duration and releases after it.
	KindNote
	// KindFilter is an attack/decay/sustain curve with a positive floor.
	KindFilter
)

// String returns the family name.
func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindFractional:
		return "fractional"
	case KindAHDSR:
		return "ahdsr"
	case KindNote:
		return "note"
	case KindFilter:
		return "filter"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Curve selects the segment interpolation of fractional envelopes.
type Curve int

const (
	// Linear segments.
	Linear Curve = iota
	// Exponential segments following [ExpScale].
	Exponential
	// Logarithmic segments following [LogScale].
	Logarithmic
)

// String returns the curve name.
func (c Curve) String() string {
	switch c {
	case Linear:
		return "linear"
	case Exponential:
		return "exponential"
	case Logarithmic:
		return "logarithmic"
	default:
		return fmt.Sprintf("Curve(%d)", int(c))
	}
}

// FilterFloor is the lowest value a [KindFilter] envelope returns.
const FilterFloor = 0.001

// Envelope is a stateless amplitude curve. The zero value is a flat
// envelope that holds 1 for the note duration.
//
// Attack, Decay, Hold and Release are seconds for KindAHDSR, KindNote and
// KindFilter and fractions of the duration for KindFractional. Sustain is a
// level. DecayFraction and ReleaseFraction, when positive, override Decay
// and Release with that fraction of the note duration.
type Envelope struct {
	Kind  Kind
	Shape Shape
	Curve Curve

	Attack  float64
	Decay   float64
	Hold    float64
	Sustain float64
	Release float64

	DecayFraction   float64
	ReleaseFraction float64

	// Peak scales fractional envelopes; 0 means 1.
	Peak float64
}

// FromShape returns a fixed-shape envelope.
func FromShape(s Shape) Envelope {
	return Envelope{Kind: KindShape, Shape: s}
}

// Fractional returns an ADSHR envelope with phase lengths given as
// fractions of the note duration.
func Fractional(curve Curve, attack, decay, hold, sustain, release float64) Envelope {
	return Envelope{
		Kind:    KindFractional,
		Curve:   curve,
		Attack:  attack,
		Decay:   decay,
		Hold:    hold,
		Sustain: sustain,
		Release: release,
	}
}

// AHDSR returns an absolute-time envelope. The release phase is placed at
// the end of the note.
func AHDSR(attack, hold, decay, sustain, release float64) Envelope {
	return Envelope{
		Kind:    KindAHDSR,
		Attack:  attack,
		Hold:    hold,
		Decay:   decay,
		Sustain: sustain,
		Release: release,
	}
}

// NoteADSR returns a note-relative envelope: attack, decay to sustain, hold
// sustain until the note duration, then release.
func NoteADSR(attack, decay, sustain, release float64) Envelope {
	return Envelope{
		Kind:    KindNote,
		Attack:  attack,
		Decay:   decay,
		Sustain: sustain,
		Release: release,
	}
}

// FilterADS returns a filter cutoff envelope: attack, decay to sustain,
// then sustain. It never returns less than [FilterFloor].
func FilterADS(attack, decay, sustain float64) Envelope {
	return Envelope{
		Kind:    KindFilter,
		Attack:  attack,
		Decay:   decay,
		Sustain: sustain,
	}
}

// Validate reports negative phase lengths and unknown tags.
func (e Envelope) Validate() error {
	if e.Kind < KindShape || e.Kind > KindFilter {
		return fmt.Errorf("envelope: invalid kind: %d", e.Kind)
	}
	if e.Kind == KindShape && (e.Shape < 0 || int(e.Shape) >= len(shapeNames)) {
		return fmt.Errorf("envelope: invalid shape: %d", e.Shape)
	}
	if e.Curve < Linear || e.Curve > Logarithmic {
		return fmt.Errorf("envelope: invalid curve: %d", e.Curve)
	}
	for _, v := range []float64{e.Attack, e.Decay, e.Hold, e.Release, e.DecayFraction, e.ReleaseFraction} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("envelope: phase lengths must be finite and >= 0: %v", v)
		}
	}
	return nil
}

// Amplitude evaluates the envelope at time t seconds into a note lasting
// duration seconds.
func (e Envelope) Amplitude(t, duration float64) float64 {
	switch e.Kind {
	case KindShape:
		if duration <= 0 {
			return 0
		}
		return e.Shape.At(t / duration)
	case KindFractional:
		return e.fractional(t, duration)
	case KindAHDSR:
		return e.ahdsr(t, duration)
	case KindNote:
		return e.note(t, duration)
	case KindFilter:
		return e.filter(t, duration)
	default:
		return 0
	}
}

func (e Envelope) decay(duration float64) float64 {
	if e.DecayFraction > 0 {
		return e.DecayFraction * duration
	}
	return e.Decay
}

func (e Envelope) release(duration float64) float64 {
	if e.ReleaseFraction > 0 {
		return e.ReleaseFraction * duration
	}
	return e.Release
}

func (e Envelope) scale(x, length float64) float64 {
	switch e.Curve {
	case Exponential:
		return ExpScale(x, 0, length)
	case Logarithmic:
		return LogScale(x, 0, length)
	default:
		return LinearScale(x, 0, length)
	}
}

func (e Envelope) fractional(t, duration float64) float64 {
	a := e.Attack * duration
	d := e.Decay * duration
	h := e.Hold * duration
	r := e.Release * duration
	s := e.Sustain

	var v float64
	switch {
	case t < 0:
		return 0
	case a > 0 && t <= a:
		v = e.scale(t, a)
	case d > 0 && t <= a+d:
		v = 1 - e.scale(t-a, d)*(1-s)
	case t <= a+d+h:
		v = s
	case r > 0 && t <= a+d+h+r:
		v = s * (1 - e.scale(t-(a+d+h), r))
	default:
		return 0
	}

	peak := e.Peak
	if peak == 0 {
		peak = 1
	}
	return v * peak
}

// ahdsr gates the attack/hold/decay/sustain level with a linear release
// ramp over the last r seconds, so the curve reaches 0 at duration even
// when the release overlaps earlier phases.
func (e Envelope) ahdsr(t, duration float64) float64 {
	r := e.release(duration)
	if t < 0 || t > duration {
		return 0
	}
	v := e.ahds(t, duration)
	if releaseStart := duration - r; r > 0 && t > releaseStart {
		v *= (duration - t) / r
	}
	return v
}

func (e Envelope) ahds(t, duration float64) float64 {
	a, h, d, s := e.Attack, e.Hold, e.decay(duration), e.Sustain
	holdEnd := a + h
	decayEnd := holdEnd + d

	switch {
	case t < a:
		return t / a
	case t < holdEnd:
		return 1
	case t < decayEnd:
		return 1 - (t-holdEnd)/d*(1-s)
	default:
		return s
	}
}

func (e Envelope) note(t, duration float64) float64 {
	a, d, s := e.Attack, e.decay(duration), e.Sustain
	r := e.release(duration)

	switch {
	case t < 0:
		return 0
	case t < a:
		return t / a
	case t < a+d:
		return 1 - (1-s)*(t-a)/d
	case t < duration:
		return s
	case t < duration+r:
		return s * (1 - (t-duration)/r)
	default:
		return 0
	}
}

func (e Envelope) filter(t, duration float64) float64 {
	a, d, s := e.Attack, e.decay(duration), e.Sustain

	var v float64
	switch {
	case t < a:
		v = t / a
	case t < a+d:
		v = 1 - (1-s)*(t-a)/d
	default:
		v = s
	}
	return math.Max(v, FilterFloor)
}
