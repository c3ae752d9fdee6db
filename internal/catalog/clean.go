// SPDX-License-Identifier: MIT

package catalog

import (
	"strings"
	"time"

	"github.com/skyfold/exoatlas/internal/archive"
)

// Stats summarizes one cleaning pass.
type Stats struct {
	RowsIn            int
	RowsOut           int
	EmptyDropped      int
	NamelessDropped   int
	DuplicatesDropped int
}

// Clean turns raw archive rows into catalog planets:
// drop all-null rows, drop rows without a planet name, keep the first
// occurrence per planet name, then derive score, type, era and distance
// category. Input order is preserved.
func Clean(records []archive.Record, fetchedAt time.Time) ([]Planet, Stats) {
	stats := Stats{RowsIn: len(records)}

	seen := make(map[string]struct{}, len(records))
	planets := make([]Planet, 0, len(records))

	for _, rec := range records {
		if rec.Empty() {
			stats.EmptyDropped++
			continue
		}
		name := strings.TrimSpace(rec.Name.Value)
		if !rec.Name.Valid || name == "" {
			stats.NamelessDropped++
			continue
		}
		if _, dup := seen[name]; dup {
			stats.DuplicatesDropped++
			continue
		}
		seen[name] = struct{}{}

		p := convert(rec, name, fetchedAt)
		p.HabitabilityScore = HabitabilityScore(p.RadiusEarth, p.EqTempK, p.OrbitalPeriodDays)
		p.PlanetType = ClassifyPlanetType(p.RadiusEarth)
		p.DiscoveryEra = DiscoveryEra(p.DiscYear)
		p.DistanceCategory = DistanceCategory(p.DistancePC)

		planets = append(planets, p)
	}

	stats.RowsOut = len(planets)
	return planets, stats
}

func convert(rec archive.Record, name string, fetchedAt time.Time) Planet {
	return Planet{
		Name:            name,
		Host:            str(rec.Host),
		DiscoveryMethod: str(rec.DiscoveryMethod),
		DiscYear:        whole(rec.DiscYear),
		Facility:        str(rec.Facility),

		OrbitalPeriodDays: num(rec.OrbitalPeriod),
		SemiMajorAxisAU:   num(rec.SemiMajorAxis),
		RadiusEarth:       num(rec.RadiusEarth),
		RadiusJupiter:     num(rec.RadiusJupiter),
		MassEarth:         num(rec.MassEarth),
		MassJupiter:       num(rec.MassJupiter),
		BestMassEarth:     num(rec.BestMassEarth),
		BestMassJupiter:   num(rec.BestMassJup),
		MassProvenance:    str(rec.MassProv),
		Density:           num(rec.Density),
		EqTempK:           num(rec.EqTemp),
		Insolation:        num(rec.Insolation),

		StarTeffK:       num(rec.StarTeff),
		StarRadiusSun:   num(rec.StarRadius),
		StarMassSun:     num(rec.StarMass),
		StarMetallicity: num(rec.StarMetallicity),
		StarLogG:        num(rec.StarLogG),
		StarAgeGyr:      num(rec.StarAge),

		StarCount:   whole(rec.StarCount),
		PlanetCount: whole(rec.PlanetCount),
		DistancePC:  num(rec.Distance),
		GaiaMag:     num(rec.GaiaMag),

		RA:     num(rec.RA),
		Dec:    num(rec.Dec),
		GalLat: num(rec.GalLat),
		GalLon: num(rec.GalLon),

		FetchedAt: fetchedAt,
	}
}

func num(f archive.Float) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

func whole(f archive.Float) *int {
	if !f.Valid {
		return nil
	}
	v := int(f.Value)
	return &v
}

func str(s archive.String) *string {
	if !s.Valid {
		return nil
	}
	v := s.Value
	return &v
}
