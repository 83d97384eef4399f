package synth

import (
	"math"
	"strconv"
	"strings"
)

const (
	// DefaultDuration is the note length of a fresh context in seconds.
	DefaultDuration = 0.5
	// DefaultVolume is the note volume of a fresh context.
	DefaultVolume = 0.2
)

// Context holds the defaults used to build notes. It is a value type:
// every With method returns a modified copy and leaves the receiver alone,
// so contexts can be shared between goroutines and compositions.
type Context struct {
	instrument Instrument
	duration   float64
	volume     float64
}

// NewContext returns a context with the default instrument, duration and
// volume.
func NewContext() Context {
	in, _ := LookupInstrument(DefaultInstrument)
	return Context{instrument: in, duration: DefaultDuration, volume: DefaultVolume}
}

// Instrument returns the selected instrument.
func (c Context) Instrument() Instrument { return c.instrument }

// Duration returns the default note duration in seconds.
func (c Context) Duration() float64 { return c.duration }

// Volume returns the default note volume.
func (c Context) Volume() float64 { return c.volume }

// WithInstrument selects a registered instrument. An unknown name returns
// the receiver unchanged together with an [UnknownInstrumentError].
func (c Context) WithInstrument(name string) (Context, error) {
	in, err := LookupInstrument(name)
	if err != nil {
		return c, err
	}
	c.instrument = in
	return c, nil
}

// WithCustomInstrument selects an instrument that is not in the registry.
func (c Context) WithCustomInstrument(in Instrument) Context {
	c.instrument = in
	return c
}

// WithDuration sets the default note duration. Non-positive values are
// ignored.
func (c Context) WithDuration(seconds float64) Context {
	if seconds > 0 && !math.IsInf(seconds, 0) {
		c.duration = seconds
	}
	return c
}

// WithVolume sets the default note volume. Negative values are ignored.
func (c Context) WithVolume(volume float64) Context {
	if volume >= 0 && !math.IsInf(volume, 0) {
		c.volume = volume
	}
	return c
}

// NewNote builds a single-pitch note from a note name ("A4", "C#5") or a
// numeric frequency ("440").
func (c Context) NewNote(token string) (Note, error) {
	f, err := ResolvePitch(token)
	if err != nil {
		return Note{}, err
	}
	return c.Note(c.duration, Pitch{Frequency: f}), nil
}

// Note builds a note with the context's instrument and volume.
func (c Context) Note(duration float64, pitches ...Pitch) Note {
	return c.instrument.Note(duration, c.volume, pitches...)
}

// Rest builds a rest of duration seconds.
func (c Context) Rest(duration float64) Note {
	return c.instrument.Note(duration, c.volume)
}

// ResolvePitch turns a note name or a positive number into a frequency.
func ResolvePitch(token string) (float64, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return 0, ErrEmptyPitch
	}
	if f, err := NoteFrequency(t); err == nil {
		return f, nil
	}
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || !(f > 0) || math.IsInf(f, 0) {
		return 0, &UnknownNoteError{Token: token}
	}
	return f, nil
}
