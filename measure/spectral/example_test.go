package spectral_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-playnoise/measure/spectral"
)

func ExampleAnalyze() {
	const sr = 8000.0
	chunk := make([]float64, 1000)
	for i := range chunk {
		chunk[i] = math.Sin(2 * math.Pi * 1000 * float64(i) / sr)
	}

	est, err := spectral.Analyze(chunk, sr)
	if err != nil {
		panic(err)
	}
	fmt.Printf("frequency=%.0f Hz duration=%.3f s\n", est.Frequency, est.Duration)
	// Output: frequency=1000 Hz duration=0.125 s
}
