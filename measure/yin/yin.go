// Package yin implements the YIN fundamental-frequency estimator.
//
// For a chunk of n samples the difference function is evaluated over the
// lags 0..n/2 with a window of n/2 samples, normalized by its cumulative
// mean, and the first lag that dips below the absolute threshold is walked
// forward to its local minimum. The fundamental is sampleRate/lag.
package yin

import (
	"context"
	"fmt"
	"math"

	"github.com/cwbudde/algo-playnoise/dsp/core"
	"github.com/cwbudde/algo-playnoise/measure/estimate"
	statstime "github.com/cwbudde/algo-playnoise/stats/time"
)

const (
	// DefaultThreshold is the absolute threshold on the normalized
	// difference.
	DefaultThreshold = 0.07
	// DefaultChunkSize is the chunk length used by [Tracker.Track].
	DefaultChunkSize = 2048

	minChunk = 4
)

// Option mutates tracker configuration.
type Option func(*config) error

type config struct {
	threshold float64
	chunkSize int
}

// WithThreshold sets the absolute threshold in (0, 1].
func WithThreshold(threshold float64) Option {
	return func(cfg *config) error {
		if threshold <= 0 || threshold > 1 || math.IsNaN(threshold) {
			return fmt.Errorf("yin: invalid threshold: %v", threshold)
		}
		cfg.threshold = threshold
		return nil
	}
}

// WithChunkSize sets the chunk length used by [Tracker.Track].
func WithChunkSize(n int) Option {
	return func(cfg *config) error {
		if n < minChunk {
			return fmt.Errorf("yin: invalid chunk size: %d", n)
		}
		cfg.chunkSize = n
		return nil
	}
}

// Tracker estimates pitch chunk by chunk. It reuses internal buffers and is
// not safe for concurrent use.
type Tracker struct {
	cfg  config
	diff []float64
	cmnd []float64
}

// New creates a tracker.
func New(opts ...Option) (*Tracker, error) {
	cfg := config{threshold: DefaultThreshold, chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Tracker{cfg: cfg}, nil
}

// Threshold returns the configured absolute threshold.
func (t *Tracker) Threshold() float64 { return t.cfg.threshold }

// Estimate returns the fundamental frequency, RMS volume, peak and
// duration of chunk. Chunks that are silent or shorter than four samples yield a NaN
// frequency.
func (t *Tracker) Estimate(chunk []float64, sampleRate float64) (estimate.Estimate, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return estimate.Estimate{}, fmt.Errorf("yin: sample rate must be > 0 and finite: %v", sampleRate)
	}

	st := statstime.Calculate(chunk)
	volume := st.RMS
	if len(chunk) < minChunk {
		return estimate.Undetermined(volume, len(chunk), sampleRate), nil
	}

	w := len(chunk) / 2
	t.diff = core.EnsureLen(t.diff, w+1)
	t.cmnd = core.EnsureLen(t.cmnd, w+1)

	difference(t.diff, chunk, w)
	if !cmnd(t.cmnd, t.diff) {
		return estimate.Undetermined(volume, len(chunk), sampleRate), nil
	}

	tau := absoluteThreshold(t.cmnd, t.cfg.threshold)
	if tau <= 0 {
		return estimate.Undetermined(volume, len(chunk), sampleRate), nil
	}
	tau = bestLocalEstimate(t.cmnd, tau)

	return estimate.Estimate{
		Frequency: sampleRate / float64(tau),
		Volume:    volume,
		Duration:  estimate.Seconds(len(chunk), sampleRate),
		Peak:      st.Peak,
	}, nil
}

// Track runs [Tracker.Estimate] over consecutive chunks of samples.
func (t *Tracker) Track(ctx context.Context, samples []float64, sampleRate float64) (estimate.Track, error) {
	return estimate.Run(ctx, samples, sampleRate, t.cfg.chunkSize, 0, t.Estimate)
}

// Estimate is a one-shot helper around [New] and [Tracker.Estimate].
func Estimate(chunk []float64, sampleRate float64, opts ...Option) (estimate.Estimate, error) {
	t, err := New(opts...)
	if err != nil {
		return estimate.Estimate{}, err
	}
	return t.Estimate(chunk, sampleRate)
}

// Track is a one-shot helper around [New] and [Tracker.Track].
func Track(ctx context.Context, samples []float64, sampleRate float64, opts ...Option) (estimate.Track, error) {
	t, err := New(opts...)
	if err != nil {
		return estimate.Track{}, err
	}
	return t.Track(ctx, samples, sampleRate)
}

// Difference returns d(tau) = sum_{j<W} (x[j]-x[j+tau])^2 for
// tau in [0, W] with W = len(x)/2.
func Difference(x []float64) []float64 {
	w := len(x) / 2
	out := make([]float64, w+1)
	difference(out, x, w)
	return out
}

// CMND returns the cumulative-mean-normalized difference of d. The value at
// lag 0 is 1, as is any lag whose running sum is still zero.
func CMND(d []float64) []float64 {
	out := make([]float64, len(d))
	cmnd(out, d)
	return out
}

func difference(dst, x []float64, w int) {
	for tau := 0; tau <= w; tau++ {
		var sum float64
		for j := range w {
			delta := x[j] - x[j+tau]
			sum += delta * delta
		}
		dst[tau] = sum
	}
}

// cmnd fills dst and reports whether d carries any energy past lag 0.
func cmnd(dst, d []float64) bool {
	if len(d) == 0 {
		return false
	}
	dst[0] = 1
	var running float64
	for tau := 1; tau < len(d); tau++ {
		running += d[tau]
		if running == 0 {
			dst[tau] = 1
			continue
		}
		dst[tau] = d[tau] * float64(tau) / running
	}
	return running > 0
}

// absoluteThreshold returns the first lag >= 1 below threshold, else the
// lag of the global minimum. It returns -1 when no lag is available.
func absoluteThreshold(d []float64, threshold float64) int {
	best := math.Inf(1)
	tau := -1
	for i := 1; i < len(d); i++ {
		x := d[i]
		if x < threshold {
			return i
		}
		if x < best {
			best = x
			tau = i
		}
	}
	return tau
}

func bestLocalEstimate(d []float64, tau int) int {
	i := tau + 1
	k := d[tau]
	for i < len(d) && d[i] < k {
		k = d[i]
		i++
	}
	return i - 1
}
