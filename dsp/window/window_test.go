package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-playnoise/internal/testutil"
)

func TestGenerateEndpoints(t *testing.T) {
	tests := []struct {
		typ   Type
		first float64
		mid   float64
	}{
		{TypeRectangular, 1, 1},
		{TypeHann, 0, 1},
		{TypeHamming, 0.08, 1},
		{TypeBlackman, 0, 1},
		{TypeTriangle, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			w := Generate(tt.typ, 64)
			if len(w) != 64 {
				t.Fatalf("len = %d, want 64", len(w))
			}
			if math.Abs(w[0]-tt.first) > 1e-12 {
				t.Fatalf("w[0] = %v, want %v", w[0], tt.first)
			}
			if math.Abs(w[32]-tt.mid) > 1e-12 {
				t.Fatalf("w[32] = %v, want %v", w[32], tt.mid)
			}
			// Periodic windows are symmetric around n/2.
			for i := 1; i < 32; i++ {
				if math.Abs(w[i]-w[64-i]) > 1e-12 {
					t.Fatalf("w[%d] = %v, w[%d] = %v, want equal", i, w[i], 64-i, w[64-i])
				}
			}
		})
	}
}

func TestGenerateDegenerate(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("Generate(1) = %v, want [1]", w)
	}
}

func TestApply(t *testing.T) {
	buf := testutil.DC(2, 8)
	want := Generate(TypeHann, 8)
	for i := range want {
		want[i] *= 2
	}

	got := Applied(TypeHann, buf)
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)
	if buf[0] != 2 {
		t.Fatal("Applied() modified its input")
	}

	Apply(TypeHann, buf)
	testutil.RequireSliceNearlyEqual(t, buf, want, 1e-12)

	rect := testutil.DC(3, 4)
	Apply(TypeRectangular, rect)
	testutil.RequireSliceNearlyEqual(t, rect, testutil.DC(3, 4), 0)
}

func TestParse(t *testing.T) {
	tests := map[string]Type{
		"":            TypeRectangular,
		"none":        TypeRectangular,
		"Hann":        TypeHann,
		"hanning":     TypeHann,
		" hamming ":   TypeHamming,
		"blackman":    TypeBlackman,
		"triangle":    TypeTriangle,
		"rectangular": TypeRectangular,
	}
	for in, want := range tests {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Fatalf("Parse(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := Parse("kaiser"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("Parse(kaiser) error = %v, want ErrUnknownType", err)
	}
}
