// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skyfold/exoatlas/internal/cache"
	xglog "github.com/skyfold/exoatlas/internal/log"
	"github.com/skyfold/exoatlas/internal/metrics"
)

// page is the envelope handed to every template: shared chrome plus the
// page-specific payload under Data.
type page struct {
	Title   string
	Active  string
	Version string
	Data    any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name, title string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		s.fail(w, r, fmt.Errorf("web: unknown template %s", name))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := tmpl.ExecuteTemplate(w, "base.html", page{
		Title:   title,
		Active:  name,
		Version: s.opts.Version,
		Data:    data,
	})
	if err != nil {
		// Headers are already out; just log.
		logger := xglog.WithComponentFromContext(r.Context(), "web")
		logger.Error().
			Err(err).
			Str("event", "render.failed").
			Str("template", name).
			Msg("template execution failed")
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	logger := xglog.WithComponentFromContext(r.Context(), "web")
	logger.Error().
		Err(err).
		Str("event", "handler.failed").
		Str("path", r.URL.Path).
		Msg("request failed")
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fetchCached serves v from the query cache when present, otherwise fills it
// and stores the JSON encoding under key.
func fetchCached[T any](ctx context.Context, c cache.Cache, key string, ttl time.Duration,
	fill func(context.Context) (T, error)) (T, error) {
	var zero T
	if c != nil {
		if raw, ok := c.Get(key); ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				metrics.IncCacheHit()
				return v, nil
			}
			c.Delete(key)
		}
		metrics.IncCacheMiss()
	}

	v, err := fill(ctx)
	if err != nil {
		return zero, err
	}
	if c != nil {
		if raw, err := json.Marshal(v); err == nil {
			c.Set(key, raw, ttl)
		}
	}
	return v, nil
}
