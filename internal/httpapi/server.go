// Package httpapi exposes the voice registry over a small JSON HTTP surface:
// a listing endpoint, a per-voice lookup with "did you mean" suggestions, and
// an externally-triggered refresh. The registry itself never watches the
// filesystem; POST /v1/voices/refresh (or the host's periodic ticker) is what
// pulls new files in.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/timbre-tts/timbre/internal/health"
	"github.com/timbre-tts/timbre/internal/observe"
	"github.com/timbre-tts/timbre/internal/voice"
)

// Option is a functional option for configuring a [Server].
type Option func(*Server)

// WithLogger sets the request logger. Default: [slog.Default].
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithMetrics sets the metrics instance used by the request middleware.
// Default: [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// Server routes HTTP requests to a [voice.Registry]. All handlers are safe
// for concurrent use because the registry is.
type Server struct {
	reg     *voice.Registry
	log     *slog.Logger
	metrics *observe.Metrics
	handler http.Handler
}

// New builds a [Server] over reg with its routes mounted, including the
// health probes and the Prometheus /metrics scrape endpoint.
func New(reg *voice.Registry, opts ...Option) *Server {
	s := &Server{reg: reg}
	for _, o := range opts {
		o(s)
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if s.metrics == nil {
		s.metrics = observe.DefaultMetrics()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/voices", s.handleList)
	mux.HandleFunc("GET /v1/voices/{name}", s.handleGet)
	mux.HandleFunc("POST /v1/voices/refresh", s.handleRefresh)
	mux.Handle("GET /metrics", promhttp.Handler())
	health.New(health.Checker{
		Name:  "registry",
		Check: s.checkRegistry,
	}).Register(mux)

	s.handler = observe.Middleware(s.metrics)(mux)
	return s
}

// Handler returns the server's root [http.Handler], with the observability
// middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// voiceJSON is the wire representation of a [voice.VoiceInfo].
type voiceJSON struct {
	Name       string  `json:"name"`
	Source     string  `json:"source"`
	FilePath   string  `json:"file_path,omitempty"`
	Transcript *string `json:"transcript,omitempty"`
}

// listResponse is the body of GET /v1/voices.
type listResponse struct {
	Voices          []voiceJSON `json:"voices"`
	PredefinedCount int         `json:"predefined_count"`
	FileCount       int         `json:"file_count"`
	TotalCount      int         `json:"total_count"`
}

// errorResponse is the body of any non-2xx API response.
type errorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

// listing builds the wire shape of the current registry contents: predefined
// voices sorted by name, then file voices in scan order, plus counts.
func (s *Server) listing() listResponse {
	all := s.reg.AllVoices()
	out := make([]voiceJSON, 0, len(all))
	for _, v := range all {
		out = append(out, toJSON(v))
	}
	return listResponse{
		Voices:          out,
		PredefinedCount: s.reg.PredefinedCount(),
		FileCount:       s.reg.FileCount(),
		TotalCount:      s.reg.TotalCount(),
	}
}

// handleList serves the combined voice listing.
func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.listing())
}

// handleGet serves a single voice by name. Unknown names return 404 with a
// phonetic suggestion when one scores above the matcher thresholds.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	v, err := s.reg.Find(name)
	if errors.Is(err, voice.ErrVoiceNotFound) {
		resp := errorResponse{Error: "voice not found: " + name}
		if near, _, ok := s.reg.Nearest(name); ok {
			resp.Suggestion = near.Name
		}
		writeJSON(w, http.StatusNotFound, resp)
		return
	}
	writeJSON(w, http.StatusOK, toJSON(v))
}

// handleRefresh triggers a synchronous rescan and responds with the
// refreshed listing, so callers see exactly what the rescan produced.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.reg.Refresh(r.Context())
	writeJSON(w, http.StatusOK, s.listing())
}

// checkRegistry is the readiness probe for the registry. Refresh never
// fails, so readiness only confirms the query surface responds.
func (s *Server) checkRegistry(_ context.Context) error {
	_ = s.reg.TotalCount()
	return nil
}

// toJSON converts a registry value to its wire shape.
func toJSON(v voice.VoiceInfo) voiceJSON {
	return voiceJSON{
		Name:       v.Name,
		Source:     string(v.Source),
		FilePath:   v.FilePath,
		Transcript: v.Transcript,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code. On
// encoding failure it falls back to a plain-text 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"encoding failure"}`, http.StatusInternalServerError)
	}
}
