// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Totals are the headline numbers shown on every page.
type Totals struct {
	Planets    int  `json:"planets"`
	HostStars  int  `json:"host_stars"`
	Habitable  int  `json:"habitable"`
	LatestYear *int `json:"latest_year"`
}

// Totals returns catalog-wide counts. Habitable counts scores strictly above
// the 50-point threshold.
func (s *Store) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	row := s.db.QueryRowContext(ctx, `SELECT
		(SELECT COUNT(*) FROM planets),
		(SELECT COUNT(DISTINCT hostname) FROM planets WHERE hostname IS NOT NULL),
		(SELECT COUNT(*) FROM planets WHERE habitability_score > 50),
		(SELECT MAX(disc_year) FROM planets WHERE disc_year IS NOT NULL)`)
	var latest sql.NullInt64
	if err := row.Scan(&t.Planets, &t.HostStars, &t.Habitable, &latest); err != nil {
		return Totals{}, fmt.Errorf("totals: %w", err)
	}
	if latest.Valid {
		y := int(latest.Int64)
		t.LatestYear = &y
	}
	return t, nil
}

// LastFetchedAt returns the newest data_fetched_at stamp, or empty when the
// catalog has never been synced.
func (s *Store) LastFetchedAt(ctx context.Context) (string, error) {
	var stamp sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(data_fetched_at) FROM planets`).Scan(&stamp)
	if err != nil {
		return "", fmt.Errorf("last fetched at: %w", err)
	}
	return stamp.String, nil
}

// YearCount is one point on the discoveries-over-time chart.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

func (s *Store) DiscoveriesByYear(ctx context.Context, minYear int) ([]YearCount, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT disc_year, COUNT(*)
		FROM planets
		WHERE disc_year IS NOT NULL AND disc_year >= ?
		GROUP BY disc_year
		ORDER BY disc_year`, minYear)
	if err != nil {
		return nil, fmt.Errorf("discoveries by year: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []YearCount
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("discoveries by year: scan: %w", err)
		}
		out = append(out, yc)
	}
	return out, rows.Err()
}

// LabelCount is a generic label/count pair for bar and doughnut charts.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func (s *Store) TopMethods(ctx context.Context, limit int) ([]LabelCount, error) {
	return s.labelCounts(ctx, `SELECT discoverymethod, COUNT(*) AS n
		FROM planets
		WHERE discoverymethod IS NOT NULL
		GROUP BY discoverymethod
		ORDER BY n DESC
		LIMIT ?`, limit)
}

func (s *Store) PlanetTypes(ctx context.Context) ([]LabelCount, error) {
	return s.labelCounts(ctx, `SELECT planet_type, COUNT(*) AS n
		FROM planets
		WHERE planet_type IS NOT NULL AND planet_type != 'Unknown'
		GROUP BY planet_type
		ORDER BY n DESC`)
}

func (s *Store) DiscoveryEras(ctx context.Context) ([]LabelCount, error) {
	return s.labelCounts(ctx, `SELECT discovery_era, COUNT(*)
		FROM planets
		WHERE discovery_era IS NOT NULL
		GROUP BY discovery_era
		ORDER BY MIN(COALESCE(disc_year, 0))`)
}

func (s *Store) labelCounts(ctx context.Context, query string, args ...any) ([]LabelCount, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("label counts: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []LabelCount
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("label counts: scan: %w", err)
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// ScoreBucket is one bar of the habitability histogram (buckets of 10).
type ScoreBucket struct {
	Bucket int `json:"bucket"`
	Count  int `json:"count"`
}

func (s *Store) HabitabilityHistogram(ctx context.Context) ([]ScoreBucket, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT (habitability_score / 10) * 10 AS bucket, COUNT(*)
		FROM planets
		GROUP BY bucket
		ORDER BY bucket`)
	if err != nil {
		return nil, fmt.Errorf("habitability histogram: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []ScoreBucket
	for rows.Next() {
		var b ScoreBucket
		if err := rows.Scan(&b.Bucket, &b.Count); err != nil {
			return nil, fmt.Errorf("habitability histogram: scan: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// PlanetSummary is a compact row for top-N tables.
type PlanetSummary struct {
	Name   string   `json:"name"`
	Host   *string  `json:"host"`
	Value  *float64 `json:"value"`
	Year   *int     `json:"year"`
	Score  int      `json:"score"`
	Radius *float64 `json:"radius,omitempty"`
	Temp   *float64 `json:"temp,omitempty"`
}

// MostHabitable lists planets above the habitability threshold.
func (s *Store) MostHabitable(ctx context.Context, limit int) ([]PlanetSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT pl_name, hostname, pl_rade, pl_eqt, habitability_score
		FROM planets
		WHERE habitability_score > 50
		ORDER BY habitability_score DESC, pl_name
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("most habitable: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []PlanetSummary
	for rows.Next() {
		var p PlanetSummary
		if err := rows.Scan(&p.Name, &p.Host, &p.Radius, &p.Temp, &p.Score); err != nil {
			return nil, fmt.Errorf("most habitable: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Ranking selects which top-N list to build.
type Ranking string

const (
	RankHottest Ranking = "hottest"
	RankColdest Ranking = "coldest"
	RankLargest Ranking = "largest"
	RankFastest Ranking = "fastest"
)

// TopPlanets returns one of the notable-discoveries lists. The ranked metric
// lands in Value (temperature in K, radius in Earth radii, or period in days).
func (s *Store) TopPlanets(ctx context.Context, rank Ranking, limit int) ([]PlanetSummary, error) {
	var query string
	switch rank {
	case RankHottest:
		query = `SELECT pl_name, hostname, pl_eqt, disc_year FROM planets
			WHERE pl_eqt IS NOT NULL ORDER BY pl_eqt DESC LIMIT ?`
	case RankColdest:
		query = `SELECT pl_name, hostname, pl_eqt, disc_year FROM planets
			WHERE pl_eqt IS NOT NULL AND pl_eqt > 0 ORDER BY pl_eqt ASC LIMIT ?`
	case RankLargest:
		query = `SELECT pl_name, hostname, pl_rade, disc_year FROM planets
			WHERE pl_rade IS NOT NULL ORDER BY pl_rade DESC LIMIT ?`
	case RankFastest:
		query = `SELECT pl_name, hostname, pl_orbper, disc_year FROM planets
			WHERE pl_orbper IS NOT NULL AND pl_orbper > 0 ORDER BY pl_orbper ASC LIMIT ?`
	default:
		return nil, fmt.Errorf("top planets: unknown ranking %q", rank)
	}

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top planets (%s): %w", rank, err)
	}
	defer rows.Close() //nolint:errcheck

	var out []PlanetSummary
	for rows.Next() {
		var p PlanetSummary
		if err := rows.Scan(&p.Name, &p.Host, &p.Value, &p.Year); err != nil {
			return nil, fmt.Errorf("top planets (%s): scan: %w", rank, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// MultiPlanetSystems lists hosts with more than one catalogued planet.
func (s *Store) MultiPlanetSystems(ctx context.Context, limit int) ([]LabelCount, error) {
	return s.labelCounts(ctx, `SELECT hostname, planet_count
		FROM stars
		WHERE planet_count > 1
		ORDER BY planet_count DESC, hostname
		LIMIT ?`, limit)
}

// DistinctMethods returns the discovery methods present in the catalog.
func (s *Store) DistinctMethods(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT discoverymethod FROM planets
		WHERE discoverymethod IS NOT NULL ORDER BY discoverymethod`)
}

// DistinctTypes returns the planet types present in the catalog.
func (s *Store) DistinctTypes(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT planet_type FROM planets
		WHERE planet_type IS NOT NULL ORDER BY planet_type`)
}

func (s *Store) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("distinct: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("distinct: scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Filter captures the explorer's form. Range filters apply unconditionally,
// so rows missing year, radius or temperature never match; that mirrors how
// the explorer has always behaved.
type Filter struct {
	Methods   []string
	Types     []string
	YearMin   int
	YearMax   int
	RadiusMin float64
	RadiusMax float64
	TempMin   float64
	TempMax   float64
	MinScore  int
	Limit     int
}

// ExplorerRow is one row of the filtered results table.
type ExplorerRow struct {
	Name   string   `json:"name"`
	Host   *string  `json:"host"`
	Method *string  `json:"method"`
	Year   *int     `json:"year"`
	Type   *string  `json:"type"`
	Radius *float64 `json:"radius"`
	Mass   *float64 `json:"mass"`
	Temp   *float64 `json:"temp"`
	Period *float64 `json:"period"`
	Score  int      `json:"score"`
}

// Explore runs the filtered catalog query. All values travel as bind
// parameters; no filter input is ever spliced into SQL.
func (s *Store) Explore(ctx context.Context, f Filter) ([]ExplorerRow, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT pl_name, hostname, discoverymethod, disc_year, planet_type,
		pl_rade, pl_masse, pl_eqt, pl_orbper, habitability_score
		FROM planets
		WHERE disc_year BETWEEN ? AND ?
		AND pl_rade BETWEEN ? AND ?
		AND pl_eqt BETWEEN ? AND ?
		AND habitability_score >= ?`)
	args := []any{f.YearMin, f.YearMax, f.RadiusMin, f.RadiusMax, f.TempMin, f.TempMax, f.MinScore}

	if len(f.Methods) > 0 {
		sb.WriteString(` AND discoverymethod IN (` + placeholders(len(f.Methods)) + `)`)
		for _, m := range f.Methods {
			args = append(args, m)
		}
	}
	if len(f.Types) > 0 {
		sb.WriteString(` AND planet_type IN (` + placeholders(len(f.Types)) + `)`)
		for _, t := range f.Types {
			args = append(args, t)
		}
	}

	sb.WriteString(` ORDER BY disc_year DESC, habitability_score DESC LIMIT ?`)
	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("explore: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []ExplorerRow
	for rows.Next() {
		var r ExplorerRow
		if err := rows.Scan(&r.Name, &r.Host, &r.Method, &r.Year, &r.Type,
			&r.Radius, &r.Mass, &r.Temp, &r.Period, &r.Score); err != nil {
			return nil, fmt.Errorf("explore: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
