// Package server exposes the layout pipeline over HTTP.
//
// # Endpoints
//
//	GET    /healthz             liveness probe
//	POST   /layouts             compute a layout from a word list and store it
//	GET    /layouts             list stored layouts (summaries)
//	GET    /layouts/{id}        fetch a stored layout document
//	DELETE /layouts/{id}        delete a stored layout
//	GET    /layouts/{id}/svg    render a stored layout as SVG
//	GET    /layouts/{id}/dot    render a stored layout as Graphviz DOT
//
// Errors are returned as JSON with the machine-readable code:
//
//	{"error": {"code": "LAYOUT_NOT_FOUND", "message": "layout abc not found"}}
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	errs "github.com/wordgrove/wordgrove/pkg/errors"
	"github.com/wordgrove/wordgrove/pkg/pipeline"
	"github.com/wordgrove/wordgrove/pkg/render"
	"github.com/wordgrove/wordgrove/pkg/store"
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Store persists computed layouts. Required.
	Store store.Store

	// Runner executes the pipeline. Required.
	Runner *pipeline.Runner

	// Logger defaults to log.Default().
	Logger *log.Logger
}

// Server is the wordgrove HTTP API.
type Server struct {
	cfg    Config
	logger *log.Logger
	router chi.Router
}

// New assembles the router and middleware.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{cfg: cfg, logger: cfg.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreateLayout)
		r.Get("/", s.handleListLayouts)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetLayout)
			r.Delete("/", s.handleDeleteLayout)
			r.Get("/svg", s.handleRenderSVG)
			r.Get("/dot", s.handleRenderDOT)
		})
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler, for tests and custom servers.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// createLayoutRequest is the POST /layouts body: pipeline options plus an
// optional display name.
type createLayoutRequest struct {
	Name string `json:"name,omitempty"`
	pipeline.Options
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	var req createLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errs.New(errs.ErrCodeInvalidInput, "malformed request body"))
		return
	}

	trie, err := s.cfg.Runner.Build(r.Context(), req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := s.cfg.Runner.ComputeLayout(r.Context(), trie, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := store.NewRecord(req.Name, doc)
	if err := s.cfg.Store.Save(r.Context(), rec); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	recs, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(render.RenderSVG(rec.Layout))
}

func (s *Server) handleRenderDOT(w http.ResponseWriter, r *http.Request) {
	rec, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(render.ToDOT(rec.Layout, render.DOTOptions{})))
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}

	var body errorBody
	body.Error.Code = string(codeFor(err))
	body.Error.Message = errs.UserMessage(err)
	writeJSON(w, status, body)
}

func codeFor(err error) errs.Code {
	if code := errs.GetCode(err); code != "" {
		return code
	}
	return errs.ErrCodeInternal
}

// statusFor maps error codes onto HTTP statuses: validation and structure
// problems are the client's fault, missing resources are 404, the rest is
// on us.
func statusFor(err error) int {
	code := errs.GetCode(err)
	switch {
	case code == errs.ErrCodeNotFound,
		code == errs.ErrCodeLayoutNotFound,
		code == errs.ErrCodeFileNotFound:
		return http.StatusNotFound
	case code == errs.ErrCodeEmptyTree,
		code == errs.ErrCodeInvalidInput,
		code == errs.ErrCodeInvalidDirection,
		code == errs.ErrCodeInvalidDistance,
		code == errs.ErrCodeInvalidFormat,
		code == errs.ErrCodeInvalidWordList,
		errs.IsStructure(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// logRequests logs one line per request with the structured logger.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
