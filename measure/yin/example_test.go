package yin_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-playnoise/measure/yin"
)

func ExampleEstimate() {
	const sr = 44100.0
	chunk := make([]float64, 2048)
	for i := range chunk {
		chunk[i] = math.Sin(2 * math.Pi * 441 * float64(i) / sr)
	}

	est, err := yin.Estimate(chunk, sr)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.0f Hz\n", est.Frequency)
	// Output: 441 Hz
}
