package core

import "math"

// DefaultSampleRate is the rate every synthesized and analyzed buffer is
// assumed to run at unless a caller overrides it.
const DefaultSampleRate = 44100

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used for offline rendering.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
	}
}

// WithSampleRate sets the processing sample rate.
// Non-positive rates are ignored.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Samples converts a duration in seconds to a whole sample count at
// sampleRate, rounding to the nearest sample. Negative durations yield 0;
// counts beyond the int range saturate at math.MaxInt.
func (cfg ProcessorConfig) Samples(seconds float64) int {
	n := seconds*cfg.SampleRate + 0.5
	if !(n >= 1) {
		return 0
	}
	if n >= math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
