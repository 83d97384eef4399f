package synth

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPitch is returned for an empty pitch token.
	ErrEmptyPitch = errors.New("synth: empty pitch token")
	// ErrInvalidFrequency is returned when a pitch resolves to a
	// non-positive or non-finite frequency.
	ErrInvalidFrequency = errors.New("synth: invalid frequency")
)

// LengthMismatchError reports chord voices of unequal length.
type LengthMismatchError struct {
	Pitch int // index of the offending voice
	Got   int
	Want  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("synth: chord voice %d has %d samples, want %d", e.Pitch, e.Got, e.Want)
}

// UnknownNoteError reports a pitch token that is neither a note name nor a
// number.
type UnknownNoteError struct {
	Token string
}

func (e *UnknownNoteError) Error() string {
	return fmt.Sprintf("synth: note %q not found", e.Token)
}

// UnknownInstrumentError reports an instrument name missing from the
// registry.
type UnknownInstrumentError struct {
	Name string
}

func (e *UnknownInstrumentError) Error() string {
	return fmt.Sprintf("synth: instrument %q not found", e.Name)
}
