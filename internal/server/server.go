// Package server exposes the render and analysis pipelines over HTTP.
//
//	POST /render      notation JSON in, audio/wav out
//	POST /analyze     audio/wav in, analysis tracks JSON out
//	POST /resynth     audio/wav in, resynthesized audio/wav out
//	GET  /note/{token} one note by name or frequency, audio/wav out
//	GET  /instruments registered instrument names
//	GET  /healthz     liveness probe
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/cwbudde/algo-playnoise/dsp/core"
	"github.com/cwbudde/algo-playnoise/formats/wav"
	"github.com/cwbudde/algo-playnoise/internal/engine"
	"github.com/cwbudde/algo-playnoise/synth"
	"github.com/cwbudde/algo-playnoise/synth/notation"
	"github.com/cwbudde/algo-playnoise/synth/tune"
)

const (
	// DefaultMaxBodyBytes bounds request bodies (about a minute of CD-quality
	// stereo WAV).
	DefaultMaxBodyBytes = 12 << 20

	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// Option mutates server configuration.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxBodyBytes limits request body size. Non-positive values are
// ignored.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// Server serves one engine.
type Server struct {
	engine  *engine.Engine
	logger  *slog.Logger
	maxBody int64
}

// New creates a server around e.
func New(e *engine.Engine, opts ...Option) *Server {
	s := &Server{
		engine:  e,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Handler returns the routed, CORS-enabled handler.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/render", s.handleRender).Methods(http.MethodPost)
	router.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	router.HandleFunc("/resynth", s.handleResynth).Methods(http.MethodPost)
	router.HandleFunc("/note/{token}", s.handleNote).Methods(http.MethodGet)
	router.HandleFunc("/instruments", s.handleInstruments).Methods(http.MethodGet)
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Use(s.requestID)
	return cors.Default().Handler(router)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

type ctxKey struct{}

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		start := time.Now()
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"elapsed", time.Since(start),
		)
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RenderRequest is the body of POST /render.
type RenderRequest struct {
	Source string `json:"source"`
	// Volume is the WAV export divisor; zero selects wav.DefaultVolume.
	Volume float64 `json:"volume,omitempty"`
	engine.RenderParams
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody)).Decode(&req); err != nil {
		s.fail(w, r, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	out, err := s.engine.Render(r.Context(), req.Source, req.RenderParams)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	s.writeWAV(w, r, out, req.Volume)
}

func (s *Server) handleNote(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := engine.RenderParams{Instrument: q.Get("instrument"), Strict: q.Get("strict") == "true"}
	volume := 0.0
	if v := q.Get("volume"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			s.fail(w, r, http.StatusBadRequest, fmt.Errorf("volume: %w", err))
			return
		}
		volume = f
	}
	out, err := s.engine.Note(r.Context(), mux.Vars(r)["token"], params)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	s.writeWAV(w, r, out, volume)
}

// AnalyzeResponse is the body returned by POST /analyze.
type AnalyzeResponse struct {
	SampleRate int           `json:"sampleRate"`
	Samples    int           `json:"samples"`
	Truncated  bool          `json:"truncated,omitempty"`
	Method     string        `json:"method"`
	Tracks     []trackReport `json:"tracks"`
}

type trackReport struct {
	Offset    int           `json:"offset"`
	ChunkSize int           `json:"chunkSize"`
	Count     int           `json:"count"`
	Chunks    []chunkReport `json:"chunks"`
}

type chunkReport struct {
	Index     int     `json:"index"`
	Frequency float64 `json:"frequency"`
	Volume    float64 `json:"volume"`
	Duration  float64 `json:"duration"`
	PeakDBFS  float64 `json:"peakDbfs"`
	Centroid  float64 `json:"centroid,omitempty"`
}

// floorDB stands in for the -Inf level of an all-zero chunk, which JSON
// cannot carry.
const floorDB = -120

func peakDBFS(peak float64) float64 {
	return max(core.LinearToDB(peak), floorDB)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	a, ok := s.readAudio(w, r)
	if !ok {
		return
	}
	params, err := analyzeParams(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	tracks, err := s.engine.Analyze(r.Context(), a.Samples, float64(a.SampleRate), params)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}

	m, _ := engine.ParseMethod(params.Method)
	resp := AnalyzeResponse{
		SampleRate: a.SampleRate,
		Samples:    len(a.Samples),
		Truncated:  a.Truncated,
		Method:     m.String(),
		Tracks:     make([]trackReport, 0, len(tracks)),
	}
	for _, tr := range tracks {
		rep := trackReport{
			Offset:    tr.Offset,
			ChunkSize: tr.ChunkSize,
			Count:     tr.Count,
			Chunks:    make([]chunkReport, 0, len(tr.Chunks)),
		}
		for _, ch := range tr.Chunks {
			rep.Chunks = append(rep.Chunks, chunkReport{
				Index:     ch.Index,
				Frequency: ch.Frequency,
				Volume:    ch.Volume,
				Duration:  ch.Duration,
				PeakDBFS:  peakDBFS(ch.Peak),
				Centroid:  ch.Centroid,
			})
		}
		resp.Tracks = append(resp.Tracks, rep)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResynth(w http.ResponseWriter, r *http.Request) {
	a, ok := s.readAudio(w, r)
	if !ok {
		return
	}
	params, err := analyzeParams(r)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}
	q := r.URL.Query()
	render := engine.RenderParams{Instrument: q.Get("instrument")}

	out, t, err := s.engine.Resynth(r.Context(), a.Samples, float64(a.SampleRate), params, render)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return
	}
	notes := 0
	for _, ch := range t.Channels {
		notes += len(ch)
	}
	w.Header().Set("X-Notes", strconv.Itoa(notes))

	volume, _ := strconv.ParseFloat(q.Get("volume"), 64)
	s.writeWAV(w, r, out, volume)
}

func (s *Server) handleInstruments(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"default":     synth.DefaultInstrument,
		"instruments": synth.InstrumentNames(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) readAudio(w http.ResponseWriter, r *http.Request) (wav.Audio, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, err)
		} else {
			s.fail(w, r, http.StatusBadRequest, err)
		}
		return wav.Audio{}, false
	}
	a, err := wav.Read(body)
	if err != nil {
		s.fail(w, r, http.StatusUnsupportedMediaType, err)
		return wav.Audio{}, false
	}
	if a.Truncated {
		s.logger.Warn("truncated wav upload", "id", requestIDFrom(r.Context()), "samples", len(a.Samples))
	}
	return a, true
}

func analyzeParams(r *http.Request) (engine.AnalyzeParams, error) {
	q := r.URL.Query()
	p := engine.AnalyzeParams{Method: q.Get("method"), Window: q.Get("window")}
	for name, dst := range map[string]*int{
		"chunkSize": &p.ChunkSize,
		"voices":    &p.Voices,
		"hop":       &p.Hop,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return p, fmt.Errorf("invalid %s: %q", name, v)
		}
		*dst = n
	}
	return p, nil
}

func (s *Server) writeWAV(w http.ResponseWriter, r *http.Request, out tune.Stereo, volume float64) {
	if volume <= 0 {
		volume = wav.DefaultVolume
	}
	buf, err := wav.Serialize(out.Left, out.Right, int(out.SampleRate), volume)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf); err != nil {
		s.logger.Warn("write response", "id", requestIDFrom(r.Context()), "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	id := requestIDFrom(r.Context())
	s.logger.Warn("request failed", "id", id, "status", status, "err", err)
	s.writeJSON(w, status, errorBody{Error: err.Error(), RequestID: id})
}

func statusFor(err error) int {
	var (
		syntax     *notation.SyntaxError
		note       *synth.UnknownNoteError
		instrument *synth.UnknownInstrumentError
	)
	switch {
	case errors.As(err, &syntax), errors.As(err, &note), errors.As(err, &instrument):
		return http.StatusBadRequest
	case errors.Is(err, tune.ErrTooLong):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}
