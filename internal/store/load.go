// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/skyfold/exoatlas/internal/catalog"
)

// LoadResult reports how one load pass went.
type LoadResult struct {
	PlanetsInserted int
	PlanetsSkipped  int
	Stars           int
	Systems         int
}

const insertPlanet = `INSERT OR IGNORE INTO planets (
	pl_name, hostname, discoverymethod, disc_year, disc_facility,
	pl_orbper, pl_orbsmax, pl_rade, pl_radj, pl_masse, pl_massj,
	pl_bmasse, pl_bmassj, pl_bmassprov, pl_dens, pl_eqt, pl_insol,
	habitability_score, planet_type, discovery_era, distance_category,
	ra, dec, glat, glon, data_fetched_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const upsertStar = `INSERT OR REPLACE INTO stars
	(hostname, st_teff, st_rad, st_mass, st_met, st_logg, st_age, planet_count)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const upsertSystem = `INSERT OR REPLACE INTO systems
	(hostname, sy_snum, sy_pnum, sy_dist, sy_gaiamag)
	VALUES (?, ?, ?, ?, ?)`

// Load writes cleaned planets into the three tables inside one transaction.
// Planets already present keep their existing row (INSERT OR IGNORE); star and
// system rows are rebuilt from the incoming batch.
func (s *Store) Load(ctx context.Context, planets []catalog.Planet) (LoadResult, error) {
	var result LoadResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("load: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	planetStmt, err := tx.PrepareContext(ctx, insertPlanet)
	if err != nil {
		return result, fmt.Errorf("load: prepare planets: %w", err)
	}
	defer planetStmt.Close() //nolint:errcheck

	for _, p := range planets {
		res, err := planetStmt.ExecContext(ctx,
			p.Name, p.Host, p.DiscoveryMethod, p.DiscYear, p.Facility,
			p.OrbitalPeriodDays, p.SemiMajorAxisAU, p.RadiusEarth, p.RadiusJupiter, p.MassEarth, p.MassJupiter,
			p.BestMassEarth, p.BestMassJupiter, p.MassProvenance, p.Density, p.EqTempK, p.Insolation,
			p.HabitabilityScore, p.PlanetType, p.DiscoveryEra, p.DistanceCategory,
			p.RA, p.Dec, p.GalLat, p.GalLon, p.FetchedAt.Format(time.DateTime),
		)
		if err != nil {
			return result, fmt.Errorf("load: insert planet %q: %w", p.Name, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			result.PlanetsInserted++
		} else {
			result.PlanetsSkipped++
		}
	}

	hosts := groupByHost(planets)

	starStmt, err := tx.PrepareContext(ctx, upsertStar)
	if err != nil {
		return result, fmt.Errorf("load: prepare stars: %w", err)
	}
	defer starStmt.Close() //nolint:errcheck

	systemStmt, err := tx.PrepareContext(ctx, upsertSystem)
	if err != nil {
		return result, fmt.Errorf("load: prepare systems: %w", err)
	}
	defer systemStmt.Close() //nolint:errcheck

	for _, h := range hosts {
		if _, err := starStmt.ExecContext(ctx,
			h.name, h.teff, h.radius, h.mass, h.metallicity, h.logg, h.age, h.planetCount,
		); err != nil {
			return result, fmt.Errorf("load: upsert star %q: %w", h.name, err)
		}
		result.Stars++

		if _, err := systemStmt.ExecContext(ctx,
			h.name, h.starCount, h.systemPlanets, h.distance, h.gaiaMag,
		); err != nil {
			return result, fmt.Errorf("load: upsert system %q: %w", h.name, err)
		}
		result.Systems++
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("load: commit: %w", err)
	}
	return result, nil
}

// hostAggregate carries the first observed (non-null) value per stellar and
// system column, plus the number of catalog planets around the host.
type hostAggregate struct {
	name          string
	teff          *float64
	radius        *float64
	mass          *float64
	metallicity   *float64
	logg          *float64
	age           *float64
	planetCount   int
	starCount     *int
	systemPlanets *int
	distance      *float64
	gaiaMag       *float64
}

func groupByHost(planets []catalog.Planet) []*hostAggregate {
	index := make(map[string]*hostAggregate)
	var order []*hostAggregate

	for _, p := range planets {
		if p.Host == nil || *p.Host == "" {
			continue
		}
		agg, ok := index[*p.Host]
		if !ok {
			agg = &hostAggregate{name: *p.Host}
			index[*p.Host] = agg
			order = append(order, agg)
		}
		agg.planetCount++
		fillFloat(&agg.teff, p.StarTeffK)
		fillFloat(&agg.radius, p.StarRadiusSun)
		fillFloat(&agg.mass, p.StarMassSun)
		fillFloat(&agg.metallicity, p.StarMetallicity)
		fillFloat(&agg.logg, p.StarLogG)
		fillFloat(&agg.age, p.StarAgeGyr)
		fillInt(&agg.starCount, p.StarCount)
		fillInt(&agg.systemPlanets, p.PlanetCount)
		fillFloat(&agg.distance, p.DistancePC)
		fillFloat(&agg.gaiaMag, p.GaiaMag)
	}
	return order
}

func fillFloat(dst **float64, src *float64) {
	if *dst == nil && src != nil {
		v := *src
		*dst = &v
	}
}

func fillInt(dst **int, src *int) {
	if *dst == nil && src != nil {
		v := *src
		*dst = &v
	}
}
