// SPDX-License-Identifier: MIT

// Package web serves the exoplanet analytics dashboard: server-rendered
// pages, the JSON chart-data API, CSV export and operational endpoints.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/skyfold/exoatlas/internal/cache"
	xglog "github.com/skyfold/exoatlas/internal/log"
	"github.com/skyfold/exoatlas/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

// pageNames lists the page templates rendered inside the base layout.
var pageNames = []string{
	"dashboard.html",
	"explorer.html",
	"analytics.html",
	"discoveries.html",
	"about.html",
}

// Options configures the dashboard server.
type Options struct {
	ListenAddr     string
	CacheTTL       time.Duration
	RateLimitRPM   int
	RateLimitBurst int
	Version        string
	Tracing        bool
}

// Server hosts the dashboard.
type Server struct {
	opts      Options
	store     *store.Store
	cache     cache.Cache
	pages     map[string]*template.Template
	handler   http.Handler
	logger    zerolog.Logger
	startTime time.Time
}

// New builds a configured dashboard server.
func New(st *store.Store, c cache.Cache, opts Options) (*Server, error) {
	if opts.ListenAddr == "" {
		return nil, errors.New("web: listen address is required")
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("base.html").
			Funcs(templateFuncs()).
			ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("web: parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	s := &Server{
		opts:      opts,
		store:     st,
		cache:     c,
		pages:     pages,
		logger:    xglog.WithComponent("web"),
		startTime: time.Now(),
	}
	s.handler = s.routes()
	return s, nil
}

// Handler returns the assembled HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.opts.ListenAddr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	s.logger.Info().
		Str("event", "server.start").
		Str("addr", s.opts.ListenAddr).
		Msg("dashboard listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web: shutdown: %w", err)
		}
		s.logger.Info().Str("event", "server.stop").Msg("dashboard stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: serve: %w", err)
	}
}
