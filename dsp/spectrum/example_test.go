package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-playnoise/dsp/spectrum"
)

func ExampleFFT() {
	bins, _ := spectrum.FFT(spectrum.ZeroPad([]float64{1, 0, -1}))
	mag := spectrum.Magnitude(bins)
	fmt.Printf("%d %.1f %.1f %.1f %.1f\n", len(bins), mag[0], mag[1], mag[2], mag[3])

	// Output:
	// 4 0.0 2.0 0.0 2.0
}
