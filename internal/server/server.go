// Package server assembles the development backend.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Tedomi2525/My-project/config"
	"github.com/Tedomi2525/My-project/internal/backend"
	"github.com/Tedomi2525/My-project/internal/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	data       *backend.Memory
}

// Option configures a Server.
type Option func(*options)

type options struct {
	backendOpts []backend.Option
	quiet       bool
}

// WithBackendOptions forwards options to the in-memory data layer.
func WithBackendOptions(opts ...backend.Option) Option {
	return func(o *options) { o.backendOpts = append(o.backendOpts, opts...) }
}

// WithoutRequestLog drops the per-request access log.
func WithoutRequestLog() Option {
	return func(o *options) { o.quiet = true }
}

// New constructs a Server over freshly seeded data.
func New(cfg config.DevServerConfig, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	jwtSecret := strings.TrimSpace(cfg.Secret)
	if jwtSecret == "" {
		return nil, errors.New("dev server secret is required")
	}

	data, err := backend.New(o.backendOpts...)
	if err != nil {
		return nil, fmt.Errorf("seed backend: %w", err)
	}

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
	)
	if !o.quiet {
		router.Use(middleware.Logger)
	}
	router.Use(middleware.Timeout(60 * time.Second))

	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, data, jwtSecret, handlers.NewLoginLimiter(cfg.LoginRPM))

	router.Group(func(r chi.Router) {
		r.Use(handlers.RequireAuth(data, jwtSecret))
		r.Route("/classes", func(r chi.Router) { handlers.ClassRouter(r, data) })
		r.Route("/exams", func(r chi.Router) { handlers.ExamRouter(r, data) })
		r.Route("/questions", func(r chi.Router) { handlers.QuestionRouter(r, data) })
		r.Route("/users", func(r chi.Router) { handlers.UserRouter(r, data) })
		r.Route("/admin/users", func(r chi.Router) { handlers.AdminUserRouter(r, data) })
		r.Route("/results", func(r chi.Router) { handlers.ResultRouter(r, data) })
	})

	port := cfg.Port
	if port == 0 {
		port = 8000
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		data:       data,
	}, nil
}

// Router exposes the chi router, e.g. for httptest.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Data exposes the in-memory collections.
func (s *Server) Data() *backend.Memory {
	return s.data
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
