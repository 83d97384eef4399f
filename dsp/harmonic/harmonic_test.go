package harmonic

import (
	"math"
	"testing"
)

func TestWaveformValues(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		phase float64
		want  float64
	}{
		{name: "sine quarter", kind: Sine, phase: 0.25, want: 1},
		{name: "sine zero", kind: Sine, phase: 0, want: 0},
		{name: "triangle start", kind: Triangle, phase: 0, want: 1},
		{name: "triangle middle", kind: Triangle, phase: 0.5, want: -1},
		{name: "triangle wraps", kind: Triangle, phase: 1.5, want: -1},
		{name: "square first half", kind: Square, phase: 0.25, want: 1},
		{name: "square second half", kind: Square, phase: 0.75, want: -1},
		{name: "saw start", kind: Sawtooth, phase: 0, want: -1},
		{name: "saw middle", kind: Sawtooth, phase: 0.5, want: 0},
		{name: "first equals sine", kind: First, phase: 0.25, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := At(tt.kind, tt.phase)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("At(%v, %v) = %v, want %v", tt.kind, tt.phase, got, tt.want)
			}
		})
	}
}

func TestGeneratePulseWidth(t *testing.T) {
	tests := []struct {
		name  string
		t     float64
		width float64
		want  float64
	}{
		{name: "inside duty", t: 0.001, width: 0.2, want: 1},
		{name: "outside duty", t: 0.003, width: 0.2, want: -1},
		{name: "zero width", t: 0.001, width: 0, want: -1},
		{name: "clamped width", t: 0.009, width: 3, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(Pulse, 100, tt.t, tt.width); got != tt.want {
				t.Fatalf("Generate(Pulse) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllKindsBounded(t *testing.T) {
	for _, k := range Kinds() {
		for i := range 2000 {
			phase := float64(i) / 997
			v := Generate(k, 440, phase/440, 0.3)
			if v < -1-1e-12 || v > 1+1e-12 || math.IsNaN(v) {
				t.Fatalf("%v at phase %v = %v, outside [-1, 1]", k, phase, v)
			}
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"sine", Sine},
		{"Triangle", Triangle},
		{" SAW ", Sawtooth},
		{"pulseWave", Pulse},
		{"stringed", Stringed},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := Parse("organ"); err == nil {
		t.Fatal("expected error for unknown waveform")
	}
}

func TestKindString(t *testing.T) {
	if got := Third.String(); got != "third" {
		t.Fatalf("Third.String() = %q, want third", got)
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Fatalf("Kind(99).String() = %q", got)
	}
}

func BenchmarkGenerate(b *testing.B) {
	b.ReportAllocs()
	t := 0.0
	for b.Loop() {
		_ = Generate(Third, 440, t, 0)
		t += 1.0 / 44100
	}
}
