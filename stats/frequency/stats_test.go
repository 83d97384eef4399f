package frequency

import (
	"math"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name    string
		mag     []float64
		wantBin int
		want    float64
	}{
		{name: "single peak", mag: []float64{0, 1, 5, 1}, wantBin: 2, want: 2 * 8000.0 / 8},
		{name: "tie picks lowest", mag: []float64{0, 3, 1, 3}, wantBin: 1, want: 1000},
		{name: "dc", mag: []float64{2, 1, 0, 0}, wantBin: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Calculate(tt.mag, 8000, 8)
			if s.MaxBin != tt.wantBin {
				t.Fatalf("MaxBin = %d, want %d", s.MaxBin, tt.wantBin)
			}
			if s.Peak != tt.want {
				t.Fatalf("Peak = %v, want %v", s.Peak, tt.want)
			}
		})
	}
}

func TestCalculateSilent(t *testing.T) {
	if s := Calculate([]float64{0, 0, 0}, 8000, 4); !math.IsNaN(s.Peak) {
		t.Fatalf("Peak = %v, want NaN", s.Peak)
	}
	if s := Calculate(nil, 8000, 4); !math.IsNaN(s.Peak) {
		t.Fatalf("Peak = %v, want NaN", s.Peak)
	}
}

func TestCentroid(t *testing.T) {
	s := Calculate([]float64{0, 1, 0, 1}, 8000, 8)
	if math.Abs(s.Centroid-2000) > 1e-9 {
		t.Fatalf("Centroid = %v, want 2000", s.Centroid)
	}
}
