package tune

import (
	"math"

	"github.com/cwbudde/algo-playnoise/measure/estimate"
	"github.com/cwbudde/algo-playnoise/synth"
)

// FromTracks turns analysis tracks into a tune with one channel per track.
// Every voiced chunk becomes a note in c's instrument at the rounded
// detected frequency, with the chunk's RMS as volume. Unvoiced chunk slots
// before a voiced one become rests so later notes keep their position;
// trailing unvoiced slots are dropped.
func FromTracks(c synth.Context, tracks []estimate.Track, sampleRate float64) Tune {
	t := Tune{Key: "C", Channels: make([][]synth.Note, len(tracks))}
	slot := 0.0
	for i, tr := range tracks {
		if sampleRate > 0 {
			slot = float64(tr.ChunkSize) / sampleRate
		}

		var notes []synth.Note
		next := 0
		for _, ch := range tr.Chunks {
			if gap := ch.Index - next; gap > 0 {
				notes = append(notes, c.Rest(float64(gap)*slot))
			}
			next = ch.Index + 1

			f := math.Round(ch.Frequency)
			if f < 1 {
				notes = append(notes, c.Rest(ch.Duration))
				continue
			}
			notes = append(notes, c.Instrument().Note(ch.Duration, ch.Volume, synth.Pitch{Frequency: f}))
		}
		t.Channels[i] = notes
	}
	return t
}
