// SPDX-License-Identifier: MIT

package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	xglog "github.com/skyfold/exoatlas/internal/log"
	"github.com/skyfold/exoatlas/internal/metrics"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(requestID)
	r.Use(securityHeaders)
	if s.opts.Tracing {
		r.Use(func(next http.Handler) http.Handler {
			return otelhttp.NewHandler(next, "exoatlas.web")
		})
	}
	r.Use(s.observe)

	r.Group(func(r chi.Router) {
		if s.opts.RateLimitRPM > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimitRPM, time.Minute))
		}
		if s.opts.RateLimitBurst > 0 {
			r.Use(httprate.LimitByIP(s.opts.RateLimitBurst, time.Second))
		}

		r.Get("/", s.handleDashboard)
		r.Get("/explorer", s.handleExplorer)
		r.Get("/analytics", s.handleAnalytics)
		r.Get("/discoveries", s.handleDiscoveries)
		r.Get("/about", s.handleAbout)
		r.Get("/export.csv", s.handleExportCSV)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/stats", s.handleAPIStats)
			r.Get("/timeline", s.handleAPITimeline)
			r.Get("/methods", s.handleAPIMethods)
			r.Get("/types", s.handleAPITypes)
			r.Get("/eras", s.handleAPIEras)
			r.Get("/habitability", s.handleAPIHabitability)
			r.Get("/habitable", s.handleAPIHabitable)
			r.Get("/systems", s.handleAPISystems)
			r.Get("/top/{rank}", s.handleAPITop)
			r.Get("/explore", s.handleAPIExplore)
		})
	})

	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

// requestID tags every request with a correlation ID, honoring one supplied
// by an upstream proxy.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(xglog.ContextWithRequestID(r.Context(), id)))
	})
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// Chart.js is loaded from jsDelivr; chart setup runs inline.
		h.Set("Content-Security-Policy",
			"default-src 'self'; script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; "+
				"style-src 'self' 'unsafe-inline'; img-src 'self' data:")
		next.ServeHTTP(w, r)
	})
}

// observe records per-route Prometheus metrics and an access log line.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequest(route, r.Method, strconv.Itoa(status), elapsed)

		logger := xglog.WithComponentFromContext(r.Context(), "web")
		logger.Info().
			Str("event", "http.request").
			Str("method", r.Method).
			Str("route", route).
			Str("path", r.URL.Path).
			Int("status", status).
			Int64("duration_ms", elapsed.Milliseconds()).
			Int("bytes", ww.BytesWritten()).
			Str("remote", r.RemoteAddr).
			Msg("request served")
	})
}
