package http

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sophialabs/harcleaner/internal/domain/cleaning"
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/history"
	"github.com/sophialabs/harcleaner/internal/domain/profile"
	"github.com/sophialabs/harcleaner/internal/infrastructure/ports"
	"github.com/sophialabs/harcleaner/internal/infrastructure/services"
	"github.com/sophialabs/harcleaner/internal/infrastructure/usecases"
)

// DefaultMaxBodySize bounds POST /v1/clean payloads.
const DefaultMaxBodySize = 32 << 20 // 32 MB

var runsPage = services.PageParams{DefaultSize: 20, MaxSize: 100}

// Server is the HTTP front end of the cleaning service.
type Server struct {
	router      *chi.Mux
	cleanUC     *usecases.CleanCaptureUseCase
	runs        *history.RingBuffer
	rateLimiter ports.RateLimiter
	metrics     *Metrics
	gatherer    prometheus.Gatherer
	logger      ports.Logger
	maxBodySize int64
}

// Options configures optional server behavior.
type Options struct {
	MaxBodySize int64
	Registry    *prometheus.Registry
}

// NewServer creates a new Server and builds its router.
func NewServer(
	cleanUC *usecases.CleanCaptureUseCase,
	runs *history.RingBuffer,
	rateLimiter ports.RateLimiter,
	logger ports.Logger,
	opts Options,
) *Server {
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	maxBody := opts.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}

	s := &Server{
		cleanUC:     cleanUC,
		runs:        runs,
		rateLimiter: rateLimiter,
		metrics:     NewMetrics(reg),
		gatherer:    reg,
		logger:      logger,
		maxBodySize: maxBody,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.With(s.rateLimit).Post("/clean", s.handleClean)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{runID}", s.handleGetRun)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "no route for "+r.Method+" "+r.URL.Path)
	})

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// rateLimit rejects clients whose token bucket is exhausted. Clients are keyed
// by the address RealIP resolved.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r.RemoteAddr)
		if !s.rateLimiter.Allow(r.Context(), key) {
			s.metrics.observeRejected("rate_limited")
			s.logger.Warn("request rate limited", "client", key)
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(remoteAddr string) string {
	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type cleanRequest struct {
	Profile *profile.Profile `json:"profile"`
	Format  string           `json:"format"`
	Verbose bool             `json:"verbose"`
	DryRun  bool             `json:"dry_run"`
	Capture json.RawMessage  `json:"capture"`
}

type cleanResponse struct {
	RunID   string          `json:"run_id"`
	Format  string          `json:"format"`
	Filters []string        `json:"filters"`
	Report  cleaning.Report `json:"report"`
	Output  json.RawMessage `json:"output,omitempty"`
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodySize)

	var req cleanRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.metrics.observeRejected("too_large")
			writeError(w, http.StatusRequestEntityTooLarge, "too_large", "request body exceeds the size limit")
			return
		}
		s.metrics.observeRejected("bad_request")
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body: "+err.Error())
		return
	}
	if len(req.Capture) == 0 {
		s.metrics.observeRejected("bad_request")
		writeError(w, http.StatusBadRequest, "bad_request", "capture is required")
		return
	}

	capture, err := har.Decode(req.Capture)
	if err != nil {
		s.metrics.observeRejected("malformed_capture")
		writeError(w, http.StatusBadRequest, "malformed_capture", err.Error())
		return
	}

	res, err := s.cleanUC.ExecuteDocument(r.Context(), capture, usecases.CleanRequest{
		Format:  req.Format,
		Profile: req.Profile,
		Verbose: req.Verbose,
		DryRun:  req.DryRun,
		Source:  history.SourceHTTP,
	})
	if err != nil {
		s.metrics.observeFailure()
		switch {
		case errors.Is(err, profile.ErrInvalid):
			writeError(w, http.StatusBadRequest, "invalid_profile", err.Error())
			return
		case errors.Is(err, services.ErrUnsupportedFormat):
			writeError(w, http.StatusBadRequest, "unsupported_format", err.Error())
			return
		}
		s.logger.Error("cleaning failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	s.metrics.observeRun(res.Report.OriginalCount, res.Report.RemovedCount())
	writeJSON(w, http.StatusOK, cleanResponse{
		RunID:   res.RunID,
		Format:  res.Format,
		Filters: res.Filters,
		Report:  res.Report,
		Output:  res.Data,
	})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	page := services.Paginate(s.runs.Recent(0), runsPage, extractQueryParams(r))
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "runID")
	run, ok := s.runs.Find(id)
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "run not found: "+id)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func extractQueryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"error": code, "message": strings.TrimSpace(message)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
