// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/skyfold/exoatlas/internal/catalog"
	"github.com/skyfold/exoatlas/internal/store"
)

type dashboardData struct {
	Totals   store.Totals
	LastSync string
	Timeline []store.YearCount
	Methods  []store.LabelCount
	Types    []store.LabelCount
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ttl := s.opts.CacheTTL

	totals, err := fetchCached(ctx, s.cache, "q:totals", ttl, s.store.Totals)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	timeline, err := fetchCached(ctx, s.cache, fmt.Sprintf("q:timeline:%d", defaultYearMin), ttl,
		func(ctx context.Context) ([]store.YearCount, error) {
			return s.store.DiscoveriesByYear(ctx, defaultYearMin)
		})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	methods, err := fetchCached(ctx, s.cache, "q:methods:8", ttl,
		func(ctx context.Context) ([]store.LabelCount, error) {
			return s.store.TopMethods(ctx, 8)
		})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	types, err := fetchCached(ctx, s.cache, "q:types", ttl, s.store.PlanetTypes)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	lastSync, err := s.store.LastFetchedAt(ctx)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, "dashboard.html", "Overview", dashboardData{
		Totals:   totals,
		LastSync: lastSync,
		Timeline: timeline,
		Methods:  methods,
		Types:    types,
	})
}

type explorerData struct {
	Filter     store.Filter
	Methods    []string
	Types      []string
	Rows       []store.ExplorerRow
	Count      int
	AvgRadius  float64
	AvgTemp    float64
	AvgScore   float64
	ExportLink string
}

func (s *Server) handleExplorer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	methods, err := fetchCached(ctx, s.cache, "q:distinct_methods", s.opts.CacheTTL,
		s.store.DistinctMethods)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	types, err := fetchCached(ctx, s.cache, "q:distinct_types", s.opts.CacheTTL,
		s.store.DistinctTypes)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	filter := parseFilter(r.URL.Query())
	rows, err := s.store.Explore(ctx, filter)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	data := explorerData{
		Filter:     filter,
		Methods:    methods,
		Types:      types,
		Rows:       rows,
		Count:      len(rows),
		ExportLink: "/export.csv?" + r.URL.RawQuery,
	}
	var radiusSum, tempSum, scoreSum float64
	var radiusN, tempN int
	for _, row := range rows {
		if row.Radius != nil {
			radiusSum += *row.Radius
			radiusN++
		}
		if row.Temp != nil {
			tempSum += *row.Temp
			tempN++
		}
		scoreSum += float64(row.Score)
	}
	if radiusN > 0 {
		data.AvgRadius = radiusSum / float64(radiusN)
	}
	if tempN > 0 {
		data.AvgTemp = tempSum / float64(tempN)
	}
	if len(rows) > 0 {
		data.AvgScore = scoreSum / float64(len(rows))
	}

	s.render(w, r, "explorer.html", "Explorer", data)
}

type analyticsData struct {
	Eras      []store.LabelCount
	Histogram []store.ScoreBucket
	Habitable []store.PlanetSummary
	Systems   []store.LabelCount
	Threshold int
}

func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ttl := s.opts.CacheTTL

	eras, err := fetchCached(ctx, s.cache, "q:eras", ttl, s.store.DiscoveryEras)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	histogram, err := fetchCached(ctx, s.cache, "q:histogram", ttl, s.store.HabitabilityHistogram)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	habitable, err := fetchCached(ctx, s.cache, "q:habitable:15", ttl,
		func(ctx context.Context) ([]store.PlanetSummary, error) {
			return s.store.MostHabitable(ctx, 15)
		})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	systems, err := fetchCached(ctx, s.cache, "q:systems:20", ttl,
		func(ctx context.Context) ([]store.LabelCount, error) {
			return s.store.MultiPlanetSystems(ctx, 20)
		})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.render(w, r, "analytics.html", "Analytics", analyticsData{
		Eras:      eras,
		Histogram: histogram,
		Habitable: habitable,
		Systems:   systems,
		Threshold: catalog.HabitabilityThreshold,
	})
}

type discoveriesData struct {
	Hottest []store.PlanetSummary
	Coldest []store.PlanetSummary
	Largest []store.PlanetSummary
	Fastest []store.PlanetSummary
}

func (s *Server) handleDiscoveries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ttl := s.opts.CacheTTL

	lists := map[store.Ranking]*[]store.PlanetSummary{}
	data := discoveriesData{}
	lists[store.RankHottest] = &data.Hottest
	lists[store.RankColdest] = &data.Coldest
	lists[store.RankLargest] = &data.Largest
	lists[store.RankFastest] = &data.Fastest

	for rank, dst := range lists {
		rows, err := fetchCached(ctx, s.cache, fmt.Sprintf("q:top:%s:%d", rank, 10), ttl,
			func(ctx context.Context) ([]store.PlanetSummary, error) {
				return s.store.TopPlanets(ctx, rank, 10)
			})
		if err != nil {
			s.fail(w, r, err)
			return
		}
		*dst = rows
	}

	s.render(w, r, "discoveries.html", "Notable Discoveries", data)
}

type aboutData struct {
	Threshold int
	CacheTTL  string
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "about.html", "About", aboutData{
		Threshold: catalog.HabitabilityThreshold,
		CacheTTL:  s.opts.CacheTTL.String(),
	})
}
