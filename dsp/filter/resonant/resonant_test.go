package resonant

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-playnoise/internal/testutil"
)

func TestBypassLeavesStateUntouched(t *testing.T) {
	st := State{Value: 0.3, ResonanceGain: 0.1}
	if got := Process(Default, 0.7, 1, 44100, &st); got != 0.7 {
		t.Fatalf("Process(Default) = %v, want 0.7", got)
	}
	if st.Value != 0.3 || st.ResonanceGain != 0.1 {
		t.Fatalf("state changed: %+v", st)
	}
}

func TestProcessFormula(t *testing.T) {
	p := Params{Cutoff: 1000, Resonance: 0.5}
	const sr = 44100.0
	rc := 1 / (2 * math.Pi * 1000 * 0.5)
	alpha := rc / (rc + 1/sr)

	st := State{Value: 0.2, ResonanceGain: 0.1}
	got := Process(p, 1, 0.5, sr, &st)

	want := alpha * (0.2 + 1 - 0.5*0.1)
	if math.Abs(got-want) > 1e-15 {
		t.Fatalf("Process() = %v, want %v", got, want)
	}
	if math.Abs(st.ResonanceGain-0.5*(want-0.2)) > 1e-15 {
		t.Fatalf("resonance gain = %v, want %v", st.ResonanceGain, 0.5*(want-0.2))
	}
}

func TestZeroAmplitudeIntegrates(t *testing.T) {
	p := Params{Cutoff: 500}
	var st State
	Process(p, 0.25, 0, 44100, &st)
	got := Process(p, 0.25, 0, 44100, &st)
	if got != 0.5 {
		t.Fatalf("Process() = %v, want 0.5", got)
	}
}

func TestPresetsStayFiniteOnNoise(t *testing.T) {
	in := testutil.DeterministicNoise(7, 0.5, 44100)
	for _, name := range PresetNames() {
		t.Run(name, func(t *testing.T) {
			p, err := Preset(name)
			if err != nil {
				t.Fatalf("Preset(%q) error = %v", name, err)
			}
			if err := p.Validate(); err != nil {
				t.Fatalf("Validate() error = %v", err)
			}
			buf := append([]float64(nil), in...)
			var st State
			ProcessBlock(p, buf, 0.5, 44100, &st)
			testutil.RequireFinite(t, buf)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{name: "passthrough", p: Params{}, ok: true},
		{name: "negative cutoff", p: Params{Cutoff: -1}},
		{name: "nan cutoff", p: Params{Cutoff: math.NaN()}},
		{name: "resonance too high", p: Params{Cutoff: 100, Resonance: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestPresetLookup(t *testing.T) {
	p, err := Preset("ThickBass")
	if err != nil {
		t.Fatalf("Preset() error = %v", err)
	}
	if p != ThickBass {
		t.Fatalf("Preset(ThickBass) = %+v", p)
	}
	if _, err := Preset("wah"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}

func TestStateReset(t *testing.T) {
	st := State{Value: 1, ResonanceGain: 1}
	st.Reset()
	if st != (State{}) {
		t.Fatalf("Reset() left %+v", st)
	}
}

func BenchmarkProcess(b *testing.B) {
	var st State
	b.ReportAllocs()
	for b.Loop() {
		_ = Process(EvolvingLead, 0.5, 0.7, 44100, &st)
	}
}
