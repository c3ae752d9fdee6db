// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/skyfold/exoatlas/internal/store"
)

type statsResponse struct {
	Totals   store.Totals `json:"totals"`
	LastSync string       `json:"last_sync,omitempty"`
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	totals, err := fetchCached(ctx, s.cache, "q:totals", s.opts.CacheTTL, s.store.Totals)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	lastSync, err := s.store.LastFetchedAt(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Totals: totals, LastSync: lastSync})
}

func (s *Server) handleAPITimeline(w http.ResponseWriter, r *http.Request) {
	since := intParam(r.URL.Query(), "since", defaultYearMin)
	serveCached(s, w, r, fmt.Sprintf("q:timeline:%d", since), func(ctx context.Context) ([]store.YearCount, error) {
		return s.store.DiscoveriesByYear(ctx, since)
	})
}

func (s *Server) handleAPIMethods(w http.ResponseWriter, r *http.Request) {
	limit := boundedLimit(intParam(r.URL.Query(), "limit", 8), 50)
	serveCached(s, w, r, fmt.Sprintf("q:methods:%d", limit), func(ctx context.Context) ([]store.LabelCount, error) {
		return s.store.TopMethods(ctx, limit)
	})
}

func (s *Server) handleAPITypes(w http.ResponseWriter, r *http.Request) {
	serveCached(s, w, r, "q:types", s.store.PlanetTypes)
}

func (s *Server) handleAPIEras(w http.ResponseWriter, r *http.Request) {
	serveCached(s, w, r, "q:eras", s.store.DiscoveryEras)
}

func (s *Server) handleAPIHabitability(w http.ResponseWriter, r *http.Request) {
	serveCached(s, w, r, "q:histogram", s.store.HabitabilityHistogram)
}

func (s *Server) handleAPIHabitable(w http.ResponseWriter, r *http.Request) {
	limit := boundedLimit(intParam(r.URL.Query(), "limit", 15), 100)
	serveCached(s, w, r, fmt.Sprintf("q:habitable:%d", limit), func(ctx context.Context) ([]store.PlanetSummary, error) {
		return s.store.MostHabitable(ctx, limit)
	})
}

func (s *Server) handleAPISystems(w http.ResponseWriter, r *http.Request) {
	limit := boundedLimit(intParam(r.URL.Query(), "limit", 20), 100)
	serveCached(s, w, r, fmt.Sprintf("q:systems:%d", limit), func(ctx context.Context) ([]store.LabelCount, error) {
		return s.store.MultiPlanetSystems(ctx, limit)
	})
}

func (s *Server) handleAPITop(w http.ResponseWriter, r *http.Request) {
	rank := store.Ranking(chi.URLParam(r, "rank"))
	switch rank {
	case store.RankHottest, store.RankColdest, store.RankLargest, store.RankFastest:
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "unknown ranking; expected hottest, coldest, largest or fastest",
		})
		return
	}

	limit := boundedLimit(intParam(r.URL.Query(), "limit", 10), 100)
	serveCached(s, w, r, fmt.Sprintf("q:top:%s:%d", rank, limit),
		func(ctx context.Context) ([]store.PlanetSummary, error) {
			return s.store.TopPlanets(ctx, rank, limit)
		})
}

type exploreResponse struct {
	Count int                 `json:"count"`
	Rows  []store.ExplorerRow `json:"rows"`
}

// handleAPIExplore is deliberately uncached: the filter space is unbounded.
func (s *Server) handleAPIExplore(w http.ResponseWriter, r *http.Request) {
	rows, err := s.store.Explore(r.Context(), parseFilter(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exploreResponse{Count: len(rows), Rows: rows})
}

type healthResponse struct {
	Status        string `json:"status"`
	Database      string `json:"database"`
	Planets       int    `json:"planets"`
	LastSync      string `json:"last_sync,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Version       string `json:"version"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:        "ok",
		Database:      "ok",
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Version:       s.opts.Version,
	}
	status := http.StatusOK

	if err := s.store.DB().PingContext(ctx); err != nil {
		resp.Status = "degraded"
		resp.Database = "error"
		status = http.StatusServiceUnavailable
	} else {
		if totals, err := s.store.Totals(ctx); err == nil {
			resp.Planets = totals.Planets
		}
		if lastSync, err := s.store.LastFetchedAt(ctx); err == nil {
			resp.LastSync = lastSync
		}
	}

	writeJSON(w, status, resp)
}

// serveCached renders a cached query as JSON with the server's TTL.
func serveCached[T any](s *Server, w http.ResponseWriter, r *http.Request, key string,
	fill func(context.Context) (T, error)) {
	v, err := fetchCached(r.Context(), s.cache, key, s.opts.CacheTTL, fill)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func boundedLimit(n, max int) int {
	if n <= 0 || n > max {
		return max
	}
	return n
}
