// Package server exposes the landing page, the prediction form and its
// supporting JSON endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-insurepredict/components/autocomplete"
	"github.com/goliatone/go-insurepredict/pkg/catalog"
	"github.com/goliatone/go-insurepredict/pkg/contract"
	"github.com/goliatone/go-insurepredict/pkg/formview"
	"github.com/goliatone/go-insurepredict/pkg/render"
)

// Config holds the server settings resolved by internal/config.
type Config struct {
	Addr          string
	ShutdownGrace time.Duration
	SessionTTL    time.Duration
	SessionLimit  int
	ThemeVariant  string
	Version       string
}

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithViewFactory sets how a new session's form view is built.
func WithViewFactory(fn func() *formview.View) Option {
	return func(s *Server) {
		if fn != nil {
			s.newView = fn
		}
	}
}

// WithCities sets the city autocomplete served at /api/cities.
func WithCities(c *autocomplete.Component) Option {
	return func(s *Server) {
		if c != nil {
			s.cities = c
		}
	}
}

// WithOccupations sets the occupation autocomplete served at
// /api/occupations.
func WithOccupations(c *autocomplete.Component) Option {
	return func(s *Server) {
		if c != nil {
			s.occupations = c
		}
	}
}

// WithContract sets the document served at /openapi.yaml.
func WithContract(ct *contract.Contract) Option {
	return func(s *Server) {
		if ct != nil {
			s.contract = ct
		}
	}
}

// WithRegistry replaces the page renderers. It must hold "html" and "json".
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// Server wires handlers, sessions and renderers.
type Server struct {
	cfg         Config
	logger      *zap.Logger
	newView     func() *formview.View
	cities      *autocomplete.Component
	occupations *autocomplete.Component
	contract    *contract.Contract
	registry    *render.Registry
	sessions    *Sessions
	handler     http.Handler
}

// New builds a Server. Missing collaborators get their defaults.
func New(ctx context.Context, cfg Config, opts ...Option) (*Server, error) {
	if cfg.SessionLimit <= 0 {
		cfg.SessionLimit = 1024
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	s := &Server{cfg: cfg, logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.newView == nil {
		logger := s.logger
		s.newView = func() *formview.View {
			return formview.New(formview.WithLogger(logger))
		}
	}
	if s.cities == nil {
		s.cities = autocomplete.Cities(catalog.MustDefault().Cities)
	}
	if s.occupations == nil {
		s.occupations = autocomplete.Occupations()
	}
	if s.contract == nil {
		ct, err := contract.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.contract = ct
	}
	if s.registry == nil {
		registry, err := render.DefaultRegistry()
		if err != nil {
			return nil, fmt.Errorf("server: %w", err)
		}
		s.registry = registry
	}

	s.sessions = newSessions(cfg.SessionLimit, cfg.SessionTTL, s.newView, s.logger)

	mux, err := s.routes()
	if err != nil {
		return nil, err
	}
	s.handler = recoverer(s.logger, requestLogger(s.logger, mux))
	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Sessions exposes the session store.
func (s *Server) Sessions() *Sessions {
	return s.sessions
}

// ListenAndServe serves until ctx is cancelled, then shuts down within the
// configured grace period.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("listening", zap.String("addr", s.cfg.Addr), zap.String("version", s.cfg.Version))

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
	}

	grace := s.cfg.ShutdownGrace
	if grace <= 0 {
		grace = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()

	s.logger.Info("shutting down", zap.Duration("grace", grace))
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
