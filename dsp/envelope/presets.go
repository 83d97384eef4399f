package envelope

import (
	"fmt"
	"sort"
	"strings"
)

// presetScale converts the instrument tables, written in quarter seconds,
// to seconds. Sustain levels are scaled by the same factor.
const presetScale = 0.25

func notePreset(attack, decay, sustain, release float64) Envelope {
	return NoteADSR(attack*presetScale, decay*presetScale, sustain*presetScale, release*presetScale)
}

func filterPreset(attack, decay, sustain, release float64) Envelope {
	e := FilterADS(attack*presetScale, decay*presetScale, sustain*presetScale)
	e.Release = release * presetScale
	return e
}

func pianoPreset(peak, decay float64) Envelope {
	e := Fractional(Linear, 0, decay, 0, 0, 0)
	e.Peak = peak
	return e
}

// Instrument amplitude envelopes.
var (
	AmpFunckLead       = notePreset(0, 0, 1, 0)
	AmpEffectedLeadPad = func() Envelope {
		e := notePreset(0, 0, 1, 0)
		e.ReleaseFraction = presetScale
		return e
	}()
	AmpThickBass             = notePreset(0, 0, 1, 0.4)
	AmpPercussiveStaccatoPad = notePreset(0, 0, 1, 5)
	AmpOrgan60               = notePreset(0, 0, 1, 0.17)
	AmpTrumpet               = notePreset(0, 0, 1, 1)
	AmpBanjo                 = notePreset(0, 0.67, 0, 0.67)
	AmpCello                 = func() Envelope {
		e := notePreset(0.06, 0, 1, 0.3)
		e.DecayFraction = presetScale
		return e
	}()
	AmpAcousticGuitar = notePreset(0, 1.7, 0, 1.7)
)

// Piano family amplitude envelopes.
var (
	AcousticGrandPiano  = FromShape(Round)
	BrightAcousticPiano = FromShape(Tempered)
	ElectricGrandPiano  = FromShape(Triangle)
	HonkyTonkPiano      = FromShape(Drawl)
	ElectricPiano       = pianoPreset(0.35, 0.7)
	Harpsichord         = pianoPreset(0.34, 2)
	Clavi               = pianoPreset(0.34, 1.5)
)

// Filter cutoff envelopes.
var (
	FilterEvolvingLead    = filterPreset(2.5, 3.0, 0.35, 0)
	FilterEvolvingLeadPad = func() Envelope {
		e := filterPreset(9, 2.5, 0.35, 0)
		e.ReleaseFraction = presetScale
		return e
	}()
	FilterFunckLead             = filterPreset(0, 0.1, 0, 0)
	FilterThickBass             = filterPreset(0.5, 0.5, 0, 0.4)
	FilterOrgan60               = filterPreset(0, 0.16, 0.34, 0)
	FilterPercussiveStaccatoPad = filterPreset(0, 0.5, 0.6, 0)
	FilterTrumpet               = filterPreset(5.5, 1.7, 0.18, 0.05)
	FilterBanjo                 = filterPreset(0, 0.19, 0, 0.19)
	FilterCello                 = func() Envelope {
		e := filterPreset(0, 3.29, 0.78, 0)
		e.ReleaseFraction = presetScale
		return e
	}()
	FilterAcousticGuitar = filterPreset(0, 3.35, 0, 0.29)
)

var ampPresets = map[string]Envelope{
	"funcklead":             AmpFunckLead,
	"effectedleadpad":       AmpEffectedLeadPad,
	"thickbass":             AmpThickBass,
	"percussivestaccatopad": AmpPercussiveStaccatoPad,
	"organ60":               AmpOrgan60,
	"trumpet":               AmpTrumpet,
	"banjo":                 AmpBanjo,
	"cello":                 AmpCello,
	"acousticguitar":        AmpAcousticGuitar,
	"acousticgrandpiano":    AcousticGrandPiano,
	"brightacousticpiano":   BrightAcousticPiano,
	"electricgrandpiano":    ElectricGrandPiano,
	"honkytonkpiano":        HonkyTonkPiano,
	"electricpiano":         ElectricPiano,
	"harpsichord":           Harpsichord,
	"clavi":                 Clavi,
}

var filterPresets = map[string]Envelope{
	"evolvinglead":          FilterEvolvingLead,
	"evolvingleadpad":       FilterEvolvingLeadPad,
	"funcklead":             FilterFunckLead,
	"thickbass":             FilterThickBass,
	"organ60":               FilterOrgan60,
	"percussivestaccatopad": FilterPercussiveStaccatoPad,
	"trumpet":               FilterTrumpet,
	"banjo":                 FilterBanjo,
	"cello":                 FilterCello,
	"acousticguitar":        FilterAcousticGuitar,
}

// AmpPreset returns a named amplitude envelope. Fixed shape names such as
// "round" or "flat" are accepted as well.
func AmpPreset(name string) (Envelope, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if e, ok := ampPresets[key]; ok {
		return e, nil
	}
	if s, err := ParseShape(key); err == nil {
		return FromShape(s), nil
	}
	return Envelope{}, fmt.Errorf("envelope: unknown amplitude preset %q", name)
}

// FilterPreset returns a named filter cutoff envelope.
func FilterPreset(name string) (Envelope, error) {
	if e, ok := filterPresets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return e, nil
	}
	return Envelope{}, fmt.Errorf("envelope: unknown filter preset %q", name)
}

// AmpPresetNames lists the named amplitude envelopes in sorted order.
func AmpPresetNames() []string {
	return sortedKeys(ampPresets)
}

// FilterPresetNames lists the named filter envelopes in sorted order.
func FilterPresetNames() []string {
	return sortedKeys(filterPresets)
}

func sortedKeys(m map[string]Envelope) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
