package lfo

import (
	"math"
	"testing"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name string
		lfo  LFO
		t    float64
		want float64
	}{
		{name: "none", lfo: None, t: 0.3, want: 0},
		{name: "sine peak", lfo: LFO{Frequency: 1, Depth: 0.2}, t: 0.25, want: 0.2},
		{name: "sine trough", lfo: LFO{Frequency: 1, Depth: 0.2}, t: 0.75, want: -0.2},
		{name: "triangle peak", lfo: LFO{Frequency: 1, Depth: 0.1, Shape: Triangle}, t: 0.25, want: 0.1},
		{name: "triangle eighth", lfo: LFO{Frequency: 1, Depth: 0.1, Shape: Triangle}, t: 0.125, want: 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.lfo.Value(tt.t); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Value(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestPresetsBounded(t *testing.T) {
	for _, name := range PresetNames() {
		l, err := Preset(name)
		if err != nil {
			t.Fatalf("Preset(%q) error = %v", name, err)
		}
		for i := range 1000 {
			v := l.Value(float64(i) / 1000)
			if math.Abs(v) > l.Depth+1e-12 {
				t.Fatalf("%s: |Value| = %v exceeds depth %v", name, v, l.Depth)
			}
		}
	}
}

func TestApply(t *testing.T) {
	l := LFO{Frequency: 1, Depth: 0.5}
	if got := l.Apply(2, 0.25); math.Abs(got-3) > 1e-12 {
		t.Fatalf("Apply() = %v, want 3", got)
	}
}

func TestNew(t *testing.T) {
	l, err := New(10, 0.1, WithShape(Triangle))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if l != Banjo {
		t.Fatalf("New() = %+v, want %+v", l, Banjo)
	}
	if _, err := New(-1, 0.1); err == nil {
		t.Fatal("expected error for negative frequency")
	}
	if _, err := New(1, 2); err == nil {
		t.Fatal("expected error for depth > 1")
	}
	if _, err := New(1, 0.1, WithShape(Shape(9))); err == nil {
		t.Fatal("expected error for invalid shape")
	}
	if _, err := Preset("vibrato"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
