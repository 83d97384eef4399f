// Package spectrum provides the FFT and spectrum-domain helpers used by the
// spectral analyzer.
//
// [FFT] is a recursive radix-2 decimation-in-time transform operating on
// power-of-two lengths; [ZeroPad] extends arbitrary real chunks to the next
// power of two. [PlannedFFT] computes the same transform through an
// algo-fft plan and is the faster choice for repeated analysis of equal
// sized chunks. Magnitude and power extraction use SIMD kernels from
// algo-vecmath.
package spectrum
