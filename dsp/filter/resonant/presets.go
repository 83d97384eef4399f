package resonant

import (
	"fmt"
	"sort"
	"strings"
)

// Instrument filter stages.
var (
	Default               = Params{}
	PassEvolvingLead      = Params{Cutoff: 236, Resonance: 0.85}
	EvolvingLead          = Params{Cutoff: 472, Resonance: 0.92}
	ThickBass             = Params{Cutoff: 170, Resonance: 0.65}
	FunckLead             = Params{Cutoff: 7200, Resonance: 0.9}
	PercussiveStaccatoPad = Params{Cutoff: 220, Resonance: 1}
	Organ60               = Params{Cutoff: 2800, Resonance: 1}
	Trumpet               = Params{Cutoff: 156, Resonance: 0.64}
	Banjo                 = Params{Cutoff: 2900, Resonance: 0.00001}
	Banjo2                = Params{Cutoff: 1500, Resonance: 0}
	Cello                 = Params{Cutoff: 40, Resonance: 1}
	AcousticGuitar        = Params{Cutoff: 380, Resonance: 0.3}
)

var presets = map[string]Params{
	"default":               Default,
	"passevolvinglead":      PassEvolvingLead,
	"evolvinglead":          EvolvingLead,
	"thickbass":             ThickBass,
	"funcklead":             FunckLead,
	"percussivestaccatopad": PercussiveStaccatoPad,
	"organ60":               Organ60,
	"trumpet":               Trumpet,
	"banjo":                 Banjo,
	"banjo2":                Banjo2,
	"cello":                 Cello,
	"acousticguitar":        AcousticGuitar,
}

// Preset returns a named filter stage, matched case-insensitively.
func Preset(name string) (Params, error) {
	if p, ok := presets[strings.ToLower(strings.TrimSpace(name))]; ok {
		return p, nil
	}
	return Params{}, fmt.Errorf("resonant: unknown preset %q", name)
}

// PresetNames lists the named stages in sorted order.
func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for k := range presets {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
