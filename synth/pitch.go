package synth

import (
	"fmt"
	"math"
	"strings"
)

const (
	// ConcertA is the reference frequency of A4.
	ConcertA = 440.0

	minOctave = 0
	maxOctave = 8
)

// semitones of each natural relative to A in the same octave.
var naturalOffset = map[byte]int{
	'C': -9, 'D': -7, 'E': -5, 'F': -4, 'G': -2, 'A': 0, 'B': 2,
}

// Pitch is one voice of a note. Accidental shifts Frequency by that many
// equal-tempered semitones.
type Pitch struct {
	Frequency  float64 `json:"frequency"`
	Accidental float64 `json:"accidental,omitempty"`
}

// Hz returns the sounding frequency after the accidental.
func (p Pitch) Hz() float64 {
	if p.Accidental == 0 {
		return p.Frequency
	}
	return p.Frequency * math.Exp2(p.Accidental/12)
}

// NoteFrequency returns the equal-tempered frequency of a note name such as
// "A4", "c#3" or "Bb5". Octaves 0 through 8 are supported.
func NoteFrequency(name string) (float64, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 || len(s) > 3 {
		return 0, &UnknownNoteError{Token: name}
	}

	offset, ok := naturalOffset[upper(s[0])]
	if !ok {
		return 0, &UnknownNoteError{Token: name}
	}

	rest := s[1:]
	switch rest[0] {
	case '#':
		offset++
		rest = rest[1:]
	case 'b':
		if len(rest) > 1 {
			offset--
			rest = rest[1:]
		}
	}
	if len(rest) != 1 || rest[0] < '0'+minOctave || rest[0] > '0'+maxOctave {
		return 0, &UnknownNoteError{Token: name}
	}

	octave := int(rest[0] - '0')
	return SemitoneFrequency(offset + (octave-4)*12), nil
}

// SemitoneFrequency returns the frequency n semitones above A4.
func SemitoneFrequency(n int) float64 {
	return ConcertA * math.Exp2(float64(n)/12)
}

// NoteNames lists the natural and sharp note names of every supported
// octave, lowest first.
func NoteNames() []string {
	names := []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	out := make([]string, 0, len(names)*(maxOctave-minOctave+1))
	for o := minOctave; o <= maxOctave; o++ {
		for _, n := range names {
			out = append(out, fmt.Sprintf("%s%d", n, o))
		}
	}
	return out
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
