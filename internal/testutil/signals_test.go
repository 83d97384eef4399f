package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(441, 44100, 1.0, 100)
	if len(s) != 100 {
		t.Fatalf("len = %d, want 100", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[25]-1) > 1e-12 {
		t.Fatalf("s[25] = %v, want 1", s[25])
	}
	RequireInRange(t, s, -1, 1)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	RequireSliceNearlyEqual(t, a, b, 0)

	c := DeterministicNoise(43, 1.0, 64)
	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestMelody(t *testing.T) {
	m := Melody(44100, 0.5, Segment{Frequency: 440, Samples: 10}, Segment{Samples: 5}, Segment{Frequency: 220, Samples: 3})
	if len(m) != 18 {
		t.Fatalf("len = %d, want 18", len(m))
	}
	for i := 10; i < 15; i++ {
		if m[i] != 0 {
			t.Fatalf("m[%d] = %v, want 0 in silent segment", i, m[i])
		}
	}
	RequireInRange(t, m, -0.5, 0.5)
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}
