// Package web serves a computed census report over HTTP.
//
// The report is built once before the server starts and is only read by
// handlers, so requests never touch the dataset.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JonMunkholm/census/internal/config"
	"github.com/JonMunkholm/census/internal/logging"
	"github.com/JonMunkholm/census/internal/report"
	webmw "github.com/JonMunkholm/census/internal/web/middleware"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for a single report.
type Server struct {
	report report.Report
	cfg    config.ServerConfig
	router *chi.Mux
	server *http.Server
}

// NewServer creates a Server for rep.
func NewServer(rep report.Report, cfg config.ServerConfig) *Server {
	s := &Server{
		report: rep,
		cfg:    cfg,
		router: chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(webmw.TrustedRealIP(s.cfg.TrustedProxies))
	s.router.Use(webmw.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.RequestTimeout))
	s.router.Use(securityHeaders)
}

func (s *Server) setupRoutes() {
	s.router.Method(http.MethodGet, "/", templ.Handler(report.Page(s.report)))
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Get("/report/races", s.handleRaces)
	})

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not found")
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.report)
}

func (s *Server) handleRaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, s.report.Result.RaceCount)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status": "ok",
		"run_id": s.report.RunID,
		"rows":   s.report.Rows,
	})
}

// Start listens on the configured address until Shutdown is called.
// It returns nil after a clean shutdown, including one that happened
// before Start was reached.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.server.Addr, "run_id", s.report.RunID)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeError writes a JSON error body and logs it with the request ID.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Debug("request error",
		"path", r.URL.Path,
		"status", status,
		"error", message,
	)
	writeJSON(w, r, status, map[string]string{"error": message})
}

// writeJSON encodes v as JSON. Encoding errors are only logged since the
// status line has already been sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
