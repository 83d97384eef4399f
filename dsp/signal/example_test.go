package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-playnoise/dsp/signal"
)

func ExampleNormalizeInPlace() {
	left := []float64{-0.5, 0.25}
	right := []float64{1}
	gain, err := signal.NormalizeInPlace(0.8, left, right)
	if err != nil {
		panic(err)
	}
	fmt.Printf("gain=%.1f %.2f %.2f %.2f\n", gain, left[0], left[1], right[0])

	// Output:
	// gain=0.8 -0.40 0.20 0.80
}

func ExampleDeinterleave() {
	fmt.Println(signal.Deinterleave([]float64{1, -1, 2, -2}, 2))
	// Output: [[1 2] [-1 -2]]
}

func ExampleInterleave() {
	fmt.Println(signal.Interleave([]float64{1, 2, 3}, []float64{-1, -2}))
	// Output: [1 -1 2 -2 3 0]
}
