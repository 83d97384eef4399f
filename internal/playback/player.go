package playback

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/cwbudde/algo-playnoise/synth/tune"
)

const pollInterval = 20 * time.Millisecond

// Option mutates player configuration.
type Option func(*Player)

// WithGain scales output samples before clamping.
func WithGain(g float64) Option {
	return func(p *Player) {
		if g > 0 {
			p.gain = g
		}
	}
}

// WithLogger sets the player logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// Player owns an oto context. Only one context may exist per process.
type Player struct {
	ctx        *oto.Context
	sampleRate int
	gain       float64
	logger     *slog.Logger
}

// New opens the default output device at sampleRate.
func New(sampleRate int, opts ...Option) (*Player, error) {
	p := &Player{
		sampleRate: sampleRate,
		gain:       1,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	c, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("playback: %w", err)
	}
	<-ready
	p.ctx = c
	return p, nil
}

// Play blocks until s has been played or ctx is cancelled.
func (p *Player) Play(ctx context.Context, s tune.Stereo) error {
	if int(s.SampleRate) != p.sampleRate {
		return fmt.Errorf("playback: buffer rate %v Hz, device opened at %d Hz", s.SampleRate, p.sampleRate)
	}

	r := NewReader(s.Left, s.Right, p.gain)
	pl := p.ctx.NewPlayer(r)
	defer pl.Close()

	p.logger.Debug("playing", "frames", s.Len(), "seconds", float64(s.Len())/s.SampleRate)
	pl.Play()

	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for pl.IsPlaying() {
		select {
		case <-ctx.Done():
			pl.Pause()
			return ctx.Err()
		case <-t.C:
		}
	}
	return pl.Err()
}
