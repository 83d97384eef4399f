package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/cwbudde/algo-playnoise/internal/testutil"
	"github.com/cwbudde/algo-playnoise/synth"
	"github.com/cwbudde/algo-playnoise/synth/tune"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(44100, opts...)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in   string
		want Method
		err  bool
	}{
		{"", MethodSpectral, false},
		{"spectral", MethodSpectral, false},
		{"FFT", MethodSpectral, false},
		{" yin ", MethodYIN, false},
		{"autocorr", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseMethod(tt.in)
		if (err != nil) != tt.err {
			t.Fatalf("ParseMethod(%q) error = %v, want error %v", tt.in, err, tt.err)
		}
		if err == nil && got != tt.want {
			t.Fatalf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewEngineRejectsBadSampleRate(t *testing.T) {
	if _, err := NewEngine(-1); err == nil {
		t.Fatal("NewEngine(-1) error = nil, want error")
	}
}

func TestRender(t *testing.T) {
	var progress int
	e := newTestEngine(t, WithProgress(func(done, total int) { progress = done }), WithConcurrency(1))

	out, err := e.Render(context.Background(), "ch1[A4 Z]", RenderParams{Instrument: "cello"})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out.Len() == 0 {
		t.Fatal("Render() produced no samples")
	}
	if out.SampleRate != 44100 {
		t.Fatalf("SampleRate = %v, want 44100", out.SampleRate)
	}
	testutil.RequireFinite(t, out.Left)
	testutil.RequireFinite(t, out.Right)
	if progress != 1 {
		t.Fatalf("progress = %d, want 1", progress)
	}
}

func TestRenderErrors(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	var unk *synth.UnknownInstrumentError
	if _, err := e.Render(ctx, "ch1[A4]", RenderParams{Instrument: "kazoo", Strict: true}); !errors.As(err, &unk) {
		t.Fatalf("Render(kazoo, strict) error = %v, want UnknownInstrumentError", err)
	}
	if _, err := e.Render(ctx, "ch1[A4]", RenderParams{Mode: "surround"}); err == nil {
		t.Fatal("Render(mode=surround) error = nil, want error")
	}
	var note *synth.UnknownNoteError
	if _, err := e.Render(ctx, "ch1[H4]", RenderParams{Strict: true}); !errors.As(err, &note) {
		t.Fatalf("Render(strict) error = %v, want UnknownNoteError", err)
	}
}

func TestContextUnknownInstrumentKeepsDefault(t *testing.T) {
	var logs bytes.Buffer
	e := newTestEngine(t, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	c, err := e.Context("kazoo", false)
	if err != nil {
		t.Fatalf("Context(kazoo) error = %v", err)
	}
	if got := c.Instrument().Name; got != synth.DefaultInstrument {
		t.Fatalf("instrument = %q, want %q", got, synth.DefaultInstrument)
	}
	if !strings.Contains(logs.String(), "kazoo") {
		t.Fatalf("log = %q, want warning naming kazoo", logs.String())
	}
	if _, err := e.Render(context.Background(), "ch1[A4]", RenderParams{Instrument: "kazoo"}); err != nil {
		t.Fatalf("Render(kazoo) error = %v", err)
	}
}

func TestNote(t *testing.T) {
	e := newTestEngine(t)
	for _, token := range []string{"A4", "C#5", "440", "261.63"} {
		out, err := e.Note(context.Background(), token, RenderParams{Instrument: "organ60"})
		if err != nil {
			t.Fatalf("Note(%q) error = %v", token, err)
		}
		if out.Len() == 0 {
			t.Fatalf("Note(%q) produced no samples", token)
		}
		testutil.RequireFinite(t, out.Left)
	}

	var unk *synth.UnknownNoteError
	if _, err := e.Note(context.Background(), "H9", RenderParams{}); !errors.As(err, &unk) {
		t.Fatalf("Note(H9) error = %v, want UnknownNoteError", err)
	}
}

func TestRenderHugeDurationTooLong(t *testing.T) {
	e := newTestEngine(t)
	for _, src := range []string{"ch1[1e300:A4]", "ch1[1e15:A4]", "ch1[1e300:Z]"} {
		if _, err := e.Render(context.Background(), src, RenderParams{}); !errors.Is(err, tune.ErrTooLong) {
			t.Fatalf("Render(%q) error = %v, want ErrTooLong", src, err)
		}
	}
}

func TestAnalyzeBothMethods(t *testing.T) {
	e := newTestEngine(t)
	samples := testutil.DeterministicSine(440, 44100, 0.5, 44100)

	tracks, err := e.Analyze(context.Background(), samples, 44100, AnalyzeParams{Voices: 3})
	if err != nil {
		t.Fatalf("Analyze(spectral) error = %v", err)
	}
	if len(tracks) != 3 {
		t.Fatalf("spectral tracks = %d, want 3", len(tracks))
	}
	for _, ch := range tracks[0].Chunks {
		if ch.Frequency < 436 || ch.Frequency > 444 {
			t.Fatalf("spectral chunk %d frequency = %v, want ~440", ch.Index, ch.Frequency)
		}
	}

	y, err := e.Analyze(context.Background(), samples, 44100, AnalyzeParams{Method: "yin"})
	if err != nil {
		t.Fatalf("Analyze(yin) error = %v", err)
	}
	if len(y) != 1 || len(y[0].Chunks) == 0 {
		t.Fatalf("yin tracks = %+v", y)
	}
	testutil.RequireWithinPercent(t, y[0].Chunks[0].Frequency, 440, 2)

	hann, err := e.Analyze(context.Background(), samples, 44100, AnalyzeParams{Voices: 1, Window: "hann"})
	if err != nil {
		t.Fatalf("Analyze(hann) error = %v", err)
	}
	if len(hann[0].Chunks) != 4 {
		t.Fatalf("hann chunks = %d, want 4", len(hann[0].Chunks))
	}
	if _, err := e.Analyze(context.Background(), samples, 44100, AnalyzeParams{Window: "kaiser"}); err == nil {
		t.Fatal("Analyze(window=kaiser) error = nil, want error")
	}

	if _, err := e.Analyze(context.Background(), samples, 44100, AnalyzeParams{Method: "zcr"}); err == nil {
		t.Fatal("Analyze(zcr) error = nil, want error")
	}
}

func TestResynth(t *testing.T) {
	e := newTestEngine(t)
	samples := testutil.Melody(44100, 0.5,
		testutil.Segment{Frequency: 220, Samples: 11025},
		testutil.Segment{Frequency: 0, Samples: 11025},
		testutil.Segment{Frequency: 330, Samples: 11025},
	)

	out, tn, err := e.Resynth(context.Background(), samples, 44100, AnalyzeParams{Voices: 1}, RenderParams{Instrument: "organ60"})
	if err != nil {
		t.Fatalf("Resynth() error = %v", err)
	}
	if len(tn.Channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(tn.Channels))
	}
	voiced := 0
	for _, n := range tn.Channels[0] {
		if !n.IsRest() {
			voiced++
		}
	}
	if voiced != 2 {
		t.Fatalf("voiced notes = %d, want 2", voiced)
	}
	if out.Len() == 0 {
		t.Fatal("Resynth() produced no samples")
	}
	testutil.RequireFinite(t, out.Left)
}
