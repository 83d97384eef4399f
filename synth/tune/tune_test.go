package tune

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/cwbudde/algo-playnoise/dsp/envelope"
	"github.com/cwbudde/algo-playnoise/internal/testutil"
	"github.com/cwbudde/algo-playnoise/measure/estimate"
	"github.com/cwbudde/algo-playnoise/synth"
)

func flatNote(freq, duration float64) synth.Note {
	return synth.Note{
		Pitches:  []synth.Pitch{{Frequency: freq}},
		Duration: duration,
		Envelope: envelope.FromShape(envelope.Flat),
		Volume:   0.2,
	}
}

func newEncoder(t *testing.T, opts ...Option) *Encoder {
	t.Helper()
	e, err := NewEncoder(nil, opts...)
	if err != nil {
		t.Fatalf("NewEncoder() error = %v", err)
	}
	return e
}

func TestKeyAccidental(t *testing.T) {
	tests := map[string]float64{
		"C": 0, "G": 1, "F#": 1, "C#": 1, "F": -1, "Bb": -1, "Cb": -1, "C5#": 0, "": 0, " D ": 1,
	}
	for key, want := range tests {
		if got := KeyAccidental(key); got != want {
			t.Fatalf("KeyAccidental(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestEncodeSingleNote(t *testing.T) {
	e := newEncoder(t)
	out, err := e.Encode(context.Background(), Tune{Key: "C", Channels: [][]synth.Note{{flatNote(440, 0.5)}}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(out.Left) != 22050 || len(out.Right) != 22050 {
		t.Fatalf("len = %d/%d, want 22050", len(out.Left), len(out.Right))
	}
	testutil.RequireInRange(t, out.Left, -0.2, 0.2)
	testutil.RequireSliceNearlyEqual(t, out.Right, out.Left, 0)
	if out.SampleRate != 44100 {
		t.Fatalf("SampleRate = %v, want 44100", out.SampleRate)
	}

	out.Left[0] = 99
	if out.Right[0] == 99 {
		t.Fatal("left and right share storage")
	}
}

func TestEncodeConcatenatesChannel(t *testing.T) {
	e := newEncoder(t)
	tn := Tune{Channels: [][]synth.Note{{flatNote(440, 0.25), {Duration: 0.5}, flatNote(660, 0.25)}}}
	out, err := e.Encode(context.Background(), tn)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if out.Len() != 44100 {
		t.Fatalf("Len() = %d, want 44100", out.Len())
	}
	for i := 11025; i < 33075; i++ {
		if out.Left[i] != 0 {
			t.Fatalf("rest sample %d = %v, want 0", i, out.Left[i])
		}
	}
}

func TestEncodeOverlayStagger(t *testing.T) {
	e := newEncoder(t)
	a := flatNote(440, 0.1)
	b := flatNote(660, 0.1)
	out, err := e.Encode(context.Background(), Tune{Channels: [][]synth.Note{{a}, {b}}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got, want := len(out.Left), 4410+DefaultStagger; got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}

	s, _ := synth.New()
	bufA, _ := s.Synthesize(a)
	bufB, _ := s.Synthesize(b)
	want := make([]float64, len(out.Left))
	for i, v := range bufA {
		want[i] += v
	}
	for i, v := range bufB {
		want[i+DefaultStagger] += v
	}
	testutil.RequireSliceNearlyEqual(t, out.Left, want, 1e-12)
}

func TestEncodeCustomStagger(t *testing.T) {
	e := newEncoder(t, WithStagger(0))
	out, err := e.Encode(context.Background(), Tune{Channels: [][]synth.Note{{flatNote(440, 0.1)}, {flatNote(440, 0.1)}}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(out.Left) != 4410 {
		t.Fatalf("len = %d, want 4410", len(out.Left))
	}
}

func TestEncodePlane(t *testing.T) {
	e := newEncoder(t, WithMode(ModePlane))
	left := flatNote(440, 0.2)
	right := flatNote(330, 0.1)
	out, err := e.Encode(context.Background(), Tune{Channels: [][]synth.Note{{left}, {right}}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(out.Left) != 8820 || len(out.Right) != 8820 {
		t.Fatalf("len = %d/%d, want 8820", len(out.Left), len(out.Right))
	}

	s, _ := synth.New()
	want, _ := s.Synthesize(right)
	testutil.RequireSliceNearlyEqual(t, out.Right[:len(want)], want, 0)
	for i := len(want); i < len(out.Right); i++ {
		if out.Right[i] != 0 {
			t.Fatalf("padding sample %d = %v, want 0", i, out.Right[i])
		}
	}
}

func TestEncodePlaneMonoFallback(t *testing.T) {
	e := newEncoder(t, WithMode(ModePlane))
	out, err := e.Encode(context.Background(), Tune{Channels: [][]synth.Note{{flatNote(440, 0.1)}, nil}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out.Right, out.Left, 0)

	if _, err := e.Encode(context.Background(), Tune{Channels: make([][]synth.Note, 3)}); err == nil {
		t.Fatal("expected error for three plane channels")
	}
}

func TestEncodeAppliesKeyWithoutMutating(t *testing.T) {
	e := newEncoder(t)
	n := flatNote(440, 0.05)
	tn := Tune{Key: "G", Channels: [][]synth.Note{{n}}}

	out, err := e.Encode(context.Background(), tn)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if tn.Channels[0][0].Pitches[0].Accidental != 0 {
		t.Fatal("Encode() modified the caller's notes")
	}

	s, _ := synth.New()
	want, _ := s.Synthesize(n.Transpose(1))
	testutil.RequireSliceNearlyEqual(t, out.Left, want, 1e-12)
}

func TestEncodeTooLong(t *testing.T) {
	e := newEncoder(t, WithMaxSamples(44100))
	_, err := e.Encode(context.Background(), Tune{Channels: [][]synth.Note{{flatNote(440, 0.75), flatNote(440, 0.75)}}})
	if !errors.Is(err, ErrTooLong) {
		t.Fatalf("Encode() error = %v, want ErrTooLong", err)
	}
}

func TestEncodeHugeDurationTooLong(t *testing.T) {
	tests := []struct {
		name  string
		notes []synth.Note
		mode  Mode
	}{
		{"1e15 seconds", []synth.Note{flatNote(440, 1e15)}, ModeOverlay},
		{"1e300 seconds", []synth.Note{flatNote(440, 1e300)}, ModeOverlay},
		{"rest 1e300 seconds", []synth.Note{{Duration: 1e300}}, ModeOverlay},
		{"sum overflows", []synth.Note{flatNote(440, 1e14), flatNote(440, 1e14), flatNote(440, 1e14)}, ModePlane},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEncoder(t, WithMode(tt.mode))
			_, err := e.Encode(context.Background(), Tune{Channels: [][]synth.Note{tt.notes, tt.notes}})
			if !errors.Is(err, ErrTooLong) {
				t.Fatalf("Encode() error = %v, want ErrTooLong", err)
			}
		})
	}
}

func TestEncodeNormalize(t *testing.T) {
	e := newEncoder(t, WithNormalize(0.9))
	out, err := e.Encode(context.Background(), Tune{Channels: [][]synth.Note{{flatNote(440, 0.1)}}})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	peak := 0.0
	for _, v := range out.Left {
		if v < 0 {
			v = -v
		}
		peak = max(peak, v)
	}
	if peak < 0.8999999 || peak > 0.9000001 {
		t.Fatalf("peak = %v, want 0.9", peak)
	}
}

func TestEncodeProgressAndLogging(t *testing.T) {
	var mu sync.Mutex
	var calls []int
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := newEncoder(t,
		WithConcurrency(2),
		WithLogger(logger),
		WithProgress(func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			if total != 3 {
				t.Errorf("total = %d, want 3", total)
			}
			calls = append(calls, done)
		}))

	tn := Tune{Channels: [][]synth.Note{{flatNote(220, 0.05)}, {flatNote(330, 0.05)}, {flatNote(440, 0.05)}}}
	if _, err := e.Encode(context.Background(), tn); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(calls) != 3 || calls[2] != 3 {
		t.Fatalf("progress calls = %v", calls)
	}
	if !strings.Contains(logs.String(), "encoding tune") {
		t.Fatalf("missing debug log, got %q", logs.String())
	}
}

func TestEncodeInvalidNote(t *testing.T) {
	e := newEncoder(t)
	bad := flatNote(-5, 0.1)
	_, err := e.Encode(context.Background(), Tune{Channels: [][]synth.Note{{bad}}})
	if !errors.Is(err, synth.ErrInvalidFrequency) {
		t.Fatalf("Encode() error = %v, want ErrInvalidFrequency", err)
	}
}

func TestEncodeCancelled(t *testing.T) {
	e := newEncoder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Encode(ctx, Tune{Channels: [][]synth.Note{{flatNote(440, 0.1)}}}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestPortamentoChainsPreviousPitch(t *testing.T) {
	gliding := flatNote(440, 0.2)
	gliding.Glide = 0.05
	tn := Tune{Channels: [][]synth.Note{{flatNote(220, 0.1), gliding}}}

	prepared := newEncoder(t).prepare(tn)
	if got := prepared[0][1].GlideFrom; got != 220 {
		t.Fatalf("GlideFrom = %v, want 220", got)
	}

	prepared = newEncoder(t, WithPortamento(false)).prepare(tn)
	if got := prepared[0][1].GlideFrom; got != 0 {
		t.Fatalf("GlideFrom = %v, want 0 without portamento", got)
	}
}

func TestEncoderOptions(t *testing.T) {
	bad := []Option{WithMode(Mode(9)), WithStagger(-1), WithMaxSamples(0), WithNormalize(-1), WithConcurrency(0)}
	for _, opt := range bad {
		if _, err := NewEncoder(nil, opt); err == nil {
			t.Fatal("expected option error")
		}
	}
	if m, err := ParseMode("plane"); err != nil || m != ModePlane {
		t.Fatalf("ParseMode(plane) = %v, %v", m, err)
	}
	if _, err := ParseMode("surround"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestFromTracks(t *testing.T) {
	tracks := []estimate.Track{
		{
			ChunkSize: 11025,
			Count:     4,
			Chunks: []estimate.Chunk{
				{Index: 1, Estimate: estimate.Estimate{Frequency: 439.6, Volume: 0.3, Duration: 0.25}},
				{Index: 3, Estimate: estimate.Estimate{Frequency: 220.2, Volume: 0.1, Duration: 0.25}},
			},
		},
		{Offset: 4410, ChunkSize: 11025, Count: 4},
	}

	tn := FromTracks(synth.NewContext(), tracks, 44100)
	if len(tn.Channels) != 2 {
		t.Fatalf("channels = %d, want 2", len(tn.Channels))
	}
	ch := tn.Channels[0]
	if len(ch) != 4 {
		t.Fatalf("notes = %d, want rest, note, rest, note", len(ch))
	}
	if !ch[0].IsRest() || ch[0].Duration != 0.25 || !ch[2].IsRest() {
		t.Fatalf("rests = %+v / %+v", ch[0], ch[2])
	}
	if ch[1].Pitches[0].Frequency != 440 || ch[1].Volume != 0.3 {
		t.Fatalf("note = %+v", ch[1])
	}
	if ch[3].Pitches[0].Frequency != 220 {
		t.Fatalf("frequency = %v, want 220", ch[3].Pitches[0].Frequency)
	}
	if len(tn.Channels[1]) != 0 {
		t.Fatalf("silent track produced %d notes", len(tn.Channels[1]))
	}

	out, err := newEncoder(t).Encode(context.Background(), tn)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if out.Len() != 44100 {
		t.Fatalf("Len() = %d, want 44100", out.Len())
	}
}
