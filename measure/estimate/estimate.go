// Package estimate defines the per-chunk pitch estimate shared by the
// spectral and YIN analyzers, and the chunking driver that turns a whole
// recording into analysis tracks.
package estimate

import (
	"context"
	"fmt"
	"math"
)

// Estimate is the analysis result for one chunk of samples.
type Estimate struct {
	// Frequency is the detected pitch in Hz, NaN when undetermined.
	Frequency float64 `json:"frequency"`
	// Volume is the RMS of the unpadded chunk.
	Volume float64 `json:"volume"`
	// Duration is the chunk length in seconds.
	Duration float64 `json:"duration"`
	// Peak is the largest absolute sample of the chunk.
	Peak float64 `json:"peak"`
	// Centroid is the magnitude-weighted mean frequency in Hz. Only
	// spectral analysis fills it.
	Centroid float64 `json:"centroid,omitempty"`
}

// Voiced reports whether the estimate carries a usable pitch.
func (e Estimate) Voiced() bool {
	return e.Frequency > 0 && !math.IsInf(e.Frequency, 0)
}

// Undetermined returns an estimate without pitch for a chunk of n samples.
func Undetermined(volume float64, n int, sampleRate float64) Estimate {
	return Estimate{Frequency: math.NaN(), Volume: volume, Duration: Seconds(n, sampleRate)}
}

// Seconds converts a sample count to seconds, 0 for a non-positive rate.
func Seconds(n int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(n) / sampleRate
}

// Func analyzes a single chunk.
type Func func(chunk []float64, sampleRate float64) (Estimate, error)

// Chunk is one voiced entry of a [Track].
type Chunk struct {
	Index int `json:"index"`
	Start int `json:"start"`
	Estimate
}

// Track is the sequence of voiced chunks found at one analysis offset.
// Chunk indices that produced no pitch are absent.
type Track struct {
	Offset    int     `json:"offset"`
	ChunkSize int     `json:"chunkSize"`
	Chunks    []Chunk `json:"chunks"`
	// Count is the number of chunk slots scanned, voiced or not.
	Count int `json:"count"`
}

// ChunkCount returns ceil(n / size), the number of chunk slots each track
// scans for a recording of n samples.
func ChunkCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Run scans samples in chunks of size starting at offset and applies fn to
// each chunk. Chunk i covers [i*size+offset, min(i*size+offset+size, n)).
// Chunks that start past the end or yield no pitch are skipped rather than
// aborting the pass. Run stops early when ctx is cancelled.
func Run(ctx context.Context, samples []float64, sampleRate float64, size, offset int, fn Func) (Track, error) {
	if size <= 0 {
		return Track{}, fmt.Errorf("estimate: chunk size must be > 0: %d", size)
	}
	if offset < 0 {
		return Track{}, fmt.Errorf("estimate: offset must be >= 0: %d", offset)
	}
	if sampleRate <= 0 {
		return Track{}, fmt.Errorf("estimate: sample rate must be > 0: %v", sampleRate)
	}

	count := ChunkCount(len(samples), size)
	tr := Track{Offset: offset, ChunkSize: size, Count: count}

	for i := range count {
		if err := ctx.Err(); err != nil {
			return tr, err
		}

		start := i*size + offset
		if start >= len(samples) {
			continue
		}
		end := min(start+size, len(samples))

		est, err := fn(samples[start:end], sampleRate)
		if err != nil {
			return tr, fmt.Errorf("estimate: chunk %d: %w", i, err)
		}
		if !est.Voiced() {
			continue
		}
		tr.Chunks = append(tr.Chunks, Chunk{Index: i, Start: start, Estimate: est})
	}

	return tr, nil
}
