package synth

import (
	"sort"
	"strings"

	"github.com/cwbudde/algo-playnoise/dsp/envelope"
	"github.com/cwbudde/algo-playnoise/dsp/filter/resonant"
	"github.com/cwbudde/algo-playnoise/dsp/harmonic"
	"github.com/cwbudde/algo-playnoise/dsp/lfo"
)

// DefaultInstrument is selected when a context has no explicit instrument.
const DefaultInstrument = "banjo"

// Instrument bundles the timbre a [Context] stamps onto new notes.
type Instrument struct {
	Name string `json:"name"`
	// Frequency is the pitch used when a note is built without one.
	Frequency float64 `json:"frequency"`

	Envelope       envelope.Envelope `json:"envelope"`
	FilterEnvelope envelope.Envelope `json:"filterEnvelope"`

	Harmonic1 harmonic.Kind `json:"harmonic1"`
	Harmonic2 harmonic.Kind `json:"harmonic2"`
	Width1    float64       `json:"width1"`
	Width2    float64       `json:"width2"`
	Step      float64       `json:"step"`

	Filter1 resonant.Params `json:"filter1"`
	Filter2 resonant.Params `json:"filter2"`
	LFO     lfo.LFO         `json:"lfo"`

	Glide      float64    `json:"glide"`
	Multiplier float64    `json:"multiplier"`
	NoiseLevel float64    `json:"noiseLevel"`
	Noise      bool       `json:"noise"`
	Ratio      [3]float64 `json:"ratio"`
}

// Note builds a note in this instrument's timbre.
func (in Instrument) Note(duration, volume float64, pitches ...Pitch) Note {
	return Note{
		Pitches:        append([]Pitch(nil), pitches...),
		Duration:       duration,
		Envelope:       in.Envelope,
		FilterEnvelope: in.FilterEnvelope,
		Harmonic1:      in.Harmonic1,
		Harmonic2:      in.Harmonic2,
		Width1:         in.Width1,
		Width2:         in.Width2,
		Step:           in.Step,
		Filter1:        in.Filter1,
		Filter2:        in.Filter2,
		LFO:            in.LFO,
		Glide:          in.Glide,
		Volume:         volume,
		Multiplier:     in.Multiplier,
		NoiseLevel:     in.NoiseLevel,
		Noise:          in.Noise,
		Ratio:          in.Ratio,
	}
}

const instantGlide = 0.00001

var instruments = map[string]Instrument{
	"thickbass": {
		Frequency:      110,
		Envelope:       envelope.AmpThickBass,
		FilterEnvelope: envelope.FilterThickBass,
		Harmonic1:      harmonic.Sawtooth,
		Harmonic2:      harmonic.Square,
		Step:           -12,
		Filter1:        resonant.ThickBass,
		LFO:            lfo.ThickBass,
		Glide:          0.08,
		Multiplier:     1,
	},
	"funcklead": {
		Frequency:      440,
		Envelope:       envelope.AmpFunckLead,
		FilterEnvelope: envelope.FilterFunckLead,
		Harmonic1:      harmonic.Sawtooth,
		Harmonic2:      harmonic.Sawtooth,
		Step:           5,
		Filter1:        resonant.FunckLead,
		LFO:            lfo.FunckLead,
		Glide:          0.1,
		Multiplier:     1,
	},
	"percussivestaccatopad": {
		Frequency:      440,
		Envelope:       envelope.AmpPercussiveStaccatoPad,
		FilterEnvelope: envelope.FilterPercussiveStaccatoPad,
		Harmonic1:      harmonic.Sawtooth,
		Harmonic2:      harmonic.Square,
		Step:           -12,
		Filter1:        resonant.PercussiveStaccatoPad,
		LFO:            lfo.PercussiveStaccatoPad,
		Glide:          instantGlide,
		Multiplier:     1,
		NoiseLevel:     0.02,
		Noise:          true,
	},
	"organ60": {
		Frequency:      440,
		Envelope:       envelope.AmpOrgan60,
		FilterEnvelope: envelope.FilterOrgan60,
		Harmonic1:      harmonic.Triangle,
		Harmonic2:      harmonic.Triangle,
		Step:           -12,
		Filter1:        resonant.Organ60,
		LFO:            lfo.Organ60,
		Glide:          instantGlide,
		Multiplier:     1,
		NoiseLevel:     0.02,
		Noise:          true,
	},
	"trumpet": {
		Frequency:      440,
		Envelope:       envelope.AmpTrumpet,
		FilterEnvelope: envelope.FilterTrumpet,
		Harmonic1:      harmonic.Sawtooth,
		Harmonic2:      harmonic.Sawtooth,
		Step:           7,
		Filter1:        resonant.Trumpet,
		LFO:            lfo.Trumpet,
		Glide:          instantGlide,
		Multiplier:     1,
	},
	"banjo": {
		Frequency:      440,
		Envelope:       envelope.AmpBanjo,
		FilterEnvelope: envelope.FilterBanjo,
		Harmonic1:      harmonic.Pulse,
		Harmonic2:      harmonic.Pulse,
		Width1:         0.2,
		Width2:         0.1,
		Step:           5,
		Filter1:        resonant.Default,
		Filter2:        resonant.Default,
		LFO:            lfo.Banjo,
		Glide:          instantGlide,
		Multiplier:     1,
		Ratio:          [3]float64{1, 0.8, 1},
	},
	"cello": {
		Frequency:      440,
		Envelope:       envelope.AmpCello,
		FilterEnvelope: envelope.FilterCello,
		Harmonic1:      harmonic.Sawtooth,
		Harmonic2:      harmonic.Square,
		Width1:         0.2,
		Width2:         0.1,
		Step:           5,
		Filter1:        resonant.Default,
		Filter2:        resonant.Default,
		LFO:            lfo.Cello,
		Glide:          instantGlide,
		Multiplier:     1,
		Ratio:          [3]float64{1, 1, 1},
	},
	"acousticguitar": {
		Frequency:      440,
		Envelope:       envelope.AmpAcousticGuitar,
		FilterEnvelope: envelope.FilterAcousticGuitar,
		Harmonic1:      harmonic.Pulse,
		Harmonic2:      harmonic.Pulse,
		Width1:         0.25,
		Width2:         0.1,
		Step:           10,
		Filter1:        resonant.Default,
		Filter2:        resonant.Default,
		LFO:            lfo.Default,
		Glide:          instantGlide,
		Multiplier:     1,
		Ratio:          [3]float64{1, 0.9, 1},
	},
	"acousticguitar2": {
		Frequency:      440,
		Envelope:       envelope.AmpAcousticGuitar,
		FilterEnvelope: envelope.FilterCello,
		Harmonic1:      harmonic.Pulse,
		Harmonic2:      harmonic.Pulse,
		Width1:         0.25,
		Width2:         0.1,
		Step:           10,
		Filter1:        resonant.Cello,
		Filter2:        resonant.Cello,
		LFO:            lfo.Default,
		Glide:          instantGlide,
		Multiplier:     1,
		Ratio:          [3]float64{1, 0.9, 1},
	},
}

// LookupInstrument returns the named instrument, matched
// case-insensitively.
func LookupInstrument(name string) (Instrument, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	in, ok := instruments[key]
	if !ok {
		return Instrument{}, &UnknownInstrumentError{Name: name}
	}
	in.Name = key
	return in, nil
}

// InstrumentNames lists the registered instruments in sorted order.
func InstrumentNames() []string {
	out := make([]string, 0, len(instruments))
	for k := range instruments {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
