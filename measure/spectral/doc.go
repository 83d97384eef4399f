// Package spectral estimates the dominant frequency and volume of sample
// chunks from their FFT magnitude spectrum.
//
// Each chunk is zero-padded to a power of two and transformed; the
// dominant frequency is the centre of the strongest bin between DC and
// Nyquist, with ties resolved to the lowest bin. Volume is the RMS of the
// unpadded chunk.
//
// [Analyzer.Tracks] scans a whole recording in fixed chunks (11025 samples
// by default) at several staggered offsets (multiples of 4410 samples),
// producing one track per offset.
package spectral
