// Package server exposes the explain pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/explain   body: TOML plan file
//	                   query: format=json|text|dot|svg, compact, detailed, refresh
//	GET  /healthz      liveness and build version
//
// Every response carries an X-Request-ID header; explain responses also
// carry X-Cache: hit|miss. Errors are JSON objects of the form
// {"error": {"code": ..., "message": ...}, "request_id": ...}.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kkpan11/heavydb/pkg/buildinfo"
	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/jsonb"
	"github.com/kkpan11/heavydb/pkg/pipeline"
)

// DefaultMaxPlanBytes bounds the size of an uploaded plan file.
const DefaultMaxPlanBytes = 1 << 20

// Server serves explain requests from a shared pipeline runner.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	maxPlanBytes int64
	timeout      time.Duration
	router       chi.Router
}

// Option configures a [Server].
type Option func(*Server)

// WithMaxPlanBytes limits request bodies to n bytes.
func WithMaxPlanBytes(n int64) Option { return func(s *Server) { s.maxPlanBytes = n } }

// WithTimeout bounds the time spent on one request.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New returns a server backed by runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner:       runner,
		logger:       logger,
		maxPlanBytes: DefaultMaxPlanBytes,
		timeout:      30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/explain", s.handleExplain)
	})
	return r
}

// Handler returns the HTTP handler for all endpoints.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr, "version", buildinfo.Version)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := jsonb.NewMap()
	body.Put("status", "ok")
	body.Put("version", buildinfo.Version)
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:   q.Get("format"),
		Compact:  flag(q.Get("compact")),
		Detailed: flag(q.Get("detailed")),
		Refresh:  flag(q.Get("refresh")),
		Logger:   s.logger.With("request_id", requestIDFrom(r.Context())),
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxPlanBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "plan larger than %d bytes", s.maxPlanBytes))
			return
		}
		writeError(w, r, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidInput, err, "read plan"))
		return
	}
	opts.Plan = data

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	w.Header().Set("Content-Type", contentType(opts.Format))
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Output)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Output)
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatText:
		return "text/plain; charset=utf-8"
	case pipeline.FormatDOT:
		return "text/vnd.graphviz; charset=utf-8"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	}
	return "application/json"
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPlan, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeUnresolvedChild:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func flag(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
