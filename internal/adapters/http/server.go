// Package http exposes the digit generators over a small JSON/text API.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/espigot"
	"github.com/aretw0/espigot/internal/logging"
	"github.com/aretw0/espigot/internal/metrics"
	"github.com/aretw0/espigot/pkg/domain"
	"github.com/aretw0/espigot/pkg/ports"
)

const (
	defaultDigits = 100
	defaultTerms  = 10
	streamChunk   = 64
)

// Options configures the handler.
type Options struct {
	// MaxDigits caps n on /digits and /terms. Zero means no cap.
	MaxDigits int
	Workers   int
	Hooks     domain.LifecycleHooks
	// Gatherer is served on /metrics when set.
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
	// Engines builds the engine for each request. Defaults to espigot
	// generators configured with Workers, Hooks and Logger.
	Engines ports.EngineFactory
}

// Server holds the handler state.
type Server struct {
	opts    Options
	logger  *slog.Logger
	engines ports.EngineFactory
}

// DigitsResponse is the JSON body of /digits?format=json.
type DigitsResponse struct {
	Engine    domain.EngineKind `json:"engine"`
	Precision int               `json:"precision"`
	Digits    string            `json:"digits"`
}

// NewHandler creates the HTTP handler.
func NewHandler(opts Options) http.Handler {
	s := &Server{opts: opts, logger: opts.Logger}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.engines = opts.Engines
	if s.engines == nil {
		s.engines = espigot.Factory(
			espigot.WithLifecycleHooks(opts.Hooks),
			espigot.WithWorkers(opts.Workers),
			espigot.WithLogger(s.logger),
		)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/digits", s.GetDigits)
	r.Get("/terms", s.GetTerms)
	r.Get("/stream", s.GetStream)
	if opts.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(opts.Gatherer))
	}
	return r
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":     "espigot-http",
		"version": espigot.VersionString(),
	})
}

// GetDigits handles GET /digits.
func (s *Server) GetDigits(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	n, err := s.count(q.Get("n"), defaultDigits)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	kind, err := domain.ParseEngineKind(q.Get("engine"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	raw := false
	if v := q.Get("raw"); v != "" {
		if raw, err = strconv.ParseBool(v); err != nil {
			http.Error(w, fmt.Sprintf("invalid raw %q", v), http.StatusBadRequest)
			return
		}
	}

	eng, err := s.engines(kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch format := q.Get("format"); format {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		runner := espigot.NewRunner(w)
		runner.Raw = raw
		runner.Logger = s.logger
		if err := runner.Run(r.Context(), eng, n); err != nil {
			s.logger.Warn("digits stream aborted", "engine", kind, "digits", n, "error", err)
		}
	case "json":
		digits, err := eng.Format(r.Context(), n)
		if err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		s.writeJSON(w, DigitsResponse{Engine: kind, Precision: n, Digits: digits})
	default:
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
	}
}

// GetStream handles GET /stream (SSE). Digits, integer part first, are sent
// in data events of up to streamChunk digits, followed by a done event.
func (s *Server) GetStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	q := r.URL.Query()
	n, err := s.count(q.Get("n"), defaultDigits)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	kind, err := domain.ParseEngineKind(q.Get("engine"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	eng, err := s.engines(kind)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	buf := make([]byte, 0, streamChunk)
	pos := 0
	for d := range eng.Stream(r.Context()) {
		buf = append(buf, '0'+d)
		if len(buf) == streamChunk || pos == n {
			fmt.Fprintf(w, "data: %s\n\n", buf)
			flusher.Flush()
			buf = buf[:0]
		}
		if pos == n {
			break
		}
		pos++
	}
	if r.Context().Err() != nil {
		s.logger.Debug("stream client went away", "engine", kind, "sent", pos)
		return
	}
	fmt.Fprint(w, "event: done\ndata: \n\n")
	flusher.Flush()
}

// GetTerms handles GET /terms.
func (s *Server) GetTerms(w http.ResponseWriter, r *http.Request) {
	n, err := s.count(r.URL.Query().Get("n"), defaultTerms)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.writeJSON(w, espigot.Terms(n))
}

func (s *Server) count(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid n %q", v)
	}
	if n < 0 {
		return 0, domain.ErrNegativePrecision
	}
	if s.opts.MaxDigits > 0 && n > s.opts.MaxDigits {
		return 0, fmt.Errorf("%w: %d > %d", domain.ErrPrecisionTooLarge, n, s.opts.MaxDigits)
	}
	return n, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
