// Package server exposes the analysis pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz
//	POST /v1/analyze              body: snapshot; ?detailed=1 ?save=1 ?refresh=1
//	GET  /v1/reports              ?limit=n
//	GET  /v1/reports/{id}
//	POST /v1/robots/safety        body: robots; ?seconds= ?width= ?height= ?easter_egg=1
//
// Errors are JSON objects of the form {"code": ..., "message": ...}; see
// [httputil.StatusFor] for the status mapping.
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

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/httputil"
	"github.com/matzehuels/slabtower/pkg/observability"
	"github.com/matzehuels/slabtower/pkg/pipeline"
	"github.com/matzehuels/slabtower/pkg/store"
)

// DefaultMaxBody caps request bodies when no limit is configured.
const DefaultMaxBody = 8 << 20

const shutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	maxBody int64
	robots  pipeline.RobotsOptions
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMaxBody caps request bodies at n bytes.
func WithMaxBody(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithRobotsDefaults sets the space and seconds used when a robots request
// leaves them out.
func WithRobotsDefaults(o pipeline.RobotsOptions) Option {
	return func(s *Server) { s.robots = o }
}

// New creates a server around runner. Reports are persisted in and listed
// from runner.Store; a nil store disables those endpoints.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner:  runner,
		logger:  runner.Logger,
		maxBody: DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/reports", s.handleListReports)
		r.Get("/reports/{id}", s.handleGetReport)
		r.Post("/robots/safety", s.handleRobots)
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe reports every request to the server hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hooks := observability.Server()
		hooks.OnRequest(ctx, r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := r.URL.Path
		if rc := chi.RouteContext(ctx); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q := r.URL.Query()
	opts := pipeline.Options{
		Detailed: flag(q.Get("detailed")),
		Save:     flag(q.Get("save")),
		Refresh:  flag(q.Get("refresh")),
	}
	if opts.Save && s.runner.Store == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeUnsupported, "report storage is disabled"))
		return
	}

	rep, hit, err := s.runner.Analyze(r.Context(), body, opts)
	if err != nil {
		s.logFailure(r, err)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	httputil.WriteJSON(w, http.StatusOK, rep)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	st, ok := s.reportStore(w)
	if !ok {
		return
	}
	limit, err := intParam(r, "limit", store.DefaultListLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reports, err := st.List(r.Context(), int(limit))
	if err != nil {
		s.logFailure(r, err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	st, ok := s.reportStore(w)
	if !ok {
		return
	}
	rep, err := st.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rep)
}

func (s *Server) handleRobots(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	opts := s.robots
	for name, dst := range map[string]*int64{
		"seconds": &opts.Seconds,
		"width":   &opts.Width,
		"height":  &opts.Height,
	} {
		if *dst, err = intParam(r, name, *dst); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	opts.EasterEgg = flag(r.URL.Query().Get("easter_egg"))

	res, hit, err := s.runner.Robots(r.Context(), body, opts)
	if err != nil {
		s.logFailure(r, err)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return data, nil
}

func (s *Server) reportStore(w http.ResponseWriter) (store.Store, bool) {
	if s.runner.Store == nil {
		httputil.WriteError(w, errors.New(errors.ErrCodeUnsupported, "report storage is disabled"))
		return nil, false
	}
	return s.runner.Store, true
}

func (s *Server) logFailure(r *http.Request, err error) {
	if httputil.StatusFor(err) >= http.StatusInternalServerError {
		s.logger.Error("request failed", "route", r.URL.Path, "err", err)
	}
}

func intParam(r *http.Request, name string, def int64) (int64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "query parameter %s", name)
	}
	return n, nil
}

func flag(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
