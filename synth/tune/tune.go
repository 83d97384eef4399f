// Package tune arranges notes into channels and renders them to a stereo
// pair.
//
// Notes within a channel play one after another. In overlay mode every
// channel k is added into one shared buffer starting k*Stagger samples in,
// and both outputs carry the mix. In plane mode the first channel feeds the
// left output and the second the right.
package tune

import (
	"errors"
	"strings"

	"github.com/cwbudde/algo-playnoise/synth"
)

// ErrTooLong is returned when a tune would exceed the configured sample
// ceiling.
var ErrTooLong = errors.New("tune: composition too long")

// Tune is a key signature plus channels of sequential notes.
type Tune struct {
	Key      string         `json:"key"`
	Channels [][]synth.Note `json:"channels"`
}

// Stereo is a rendered left/right pair.
type Stereo struct {
	Left       []float64
	Right      []float64
	SampleRate float64
}

// Len returns the number of frames.
func (s Stereo) Len() int {
	return max(len(s.Left), len(s.Right))
}

var (
	sharpKeys = []string{"G", "D", "A", "E", "B", "F#", "C#"}
	flatKeys  = []string{"F", "Bb", "Eb", "Ab", "Db", "Gb", "Cb"}
)

// KeyAccidental returns the semitone adjustment a key signature applies to
// every note: +1 for sharp keys, -1 for flat keys and 0 otherwise.
func KeyAccidental(key string) float64 {
	k := strings.TrimSpace(key)
	for _, s := range sharpKeys {
		if k == s {
			return 1
		}
	}
	for _, f := range flatKeys {
		if k == f {
			return -1
		}
	}
	return 0
}
