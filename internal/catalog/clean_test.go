// SPDX-License-Identifier: MIT

package catalog

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/skyfold/exoatlas/internal/archive"
)

func rec(name string) archive.Record {
	r := archive.Record{}
	if name != "" {
		r.Name = archive.String{Value: name, Valid: true}
	}
	return r
}

func TestCleanDropsAndDedupes(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	dup := rec("Kepler-22 b")
	dup.EqTemp = archive.Float{Value: 999, Valid: true}

	nameless := archive.Record{
		RadiusEarth: archive.Float{Value: 1.0, Valid: true},
	}

	records := []archive.Record{
		rec("Kepler-22 b"),
		{}, // all-null row
		nameless,
		dup, // duplicate name, later values must lose
		rec("TRAPPIST-1 e"),
	}

	planets, stats := Clean(records, now)

	wantStats := Stats{
		RowsIn:            5,
		RowsOut:           2,
		EmptyDropped:      1,
		NamelessDropped:   1,
		DuplicatesDropped: 1,
	}
	if diff := cmp.Diff(wantStats, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	if len(planets) != 2 {
		t.Fatalf("len(planets) = %d, want 2", len(planets))
	}
	if planets[0].Name != "Kepler-22 b" || planets[1].Name != "TRAPPIST-1 e" {
		t.Errorf("order not preserved: %q, %q", planets[0].Name, planets[1].Name)
	}
	// First occurrence wins: the duplicate's temperature must not leak in.
	if planets[0].EqTempK != nil {
		t.Errorf("EqTempK = %v, want nil from first occurrence", *planets[0].EqTempK)
	}
	if !planets[0].FetchedAt.Equal(now) {
		t.Errorf("FetchedAt = %v, want %v", planets[0].FetchedAt, now)
	}
}

func TestCleanDerivesAttributes(t *testing.T) {
	r := rec("Kepler-442 b")
	r.Host = archive.String{Value: "Kepler-442", Valid: true}
	r.DiscYear = archive.Float{Value: 2015, Valid: true}
	r.RadiusEarth = archive.Float{Value: 1.34, Valid: true}
	r.EqTemp = archive.Float{Value: 233, Valid: true}
	r.OrbitalPeriod = archive.Float{Value: 112.3, Valid: true}
	r.Distance = archive.Float{Value: 370, Valid: true}

	planets, _ := Clean([]archive.Record{r}, time.Now())
	if len(planets) != 1 {
		t.Fatalf("len(planets) = %d, want 1", len(planets))
	}
	p := planets[0]

	// radius (35) + temperature (40); the 112-day period is out of band
	if p.HabitabilityScore != 75 {
		t.Errorf("HabitabilityScore = %d, want 75", p.HabitabilityScore)
	}
	if p.PlanetType != TypeSuperEarth {
		t.Errorf("PlanetType = %q, want %q", p.PlanetType, TypeSuperEarth)
	}
	if p.DiscoveryEra == nil || *p.DiscoveryEra != "2010-2015" {
		t.Errorf("DiscoveryEra = %v, want 2010-2015", p.DiscoveryEra)
	}
	if p.DistanceCategory == nil || *p.DistanceCategory != "Moderate (100-500pc)" {
		t.Errorf("DistanceCategory = %v, want Moderate (100-500pc)", p.DistanceCategory)
	}
	if p.Host == nil || *p.Host != "Kepler-442" {
		t.Errorf("Host = %v, want Kepler-442", p.Host)
	}
	if p.DiscYear == nil || *p.DiscYear != 2015 {
		t.Errorf("DiscYear = %v, want 2015", p.DiscYear)
	}
}

func TestCleanTrimsNames(t *testing.T) {
	records := []archive.Record{
		rec("  Kepler-22 b  "),
		rec("Kepler-22 b"),
	}
	planets, stats := Clean(records, time.Now())
	if len(planets) != 1 {
		t.Fatalf("len(planets) = %d, want 1 after trim-aware dedupe", len(planets))
	}
	if planets[0].Name != "Kepler-22 b" {
		t.Errorf("Name = %q, want trimmed", planets[0].Name)
	}
	if stats.DuplicatesDropped != 1 {
		t.Errorf("DuplicatesDropped = %d, want 1", stats.DuplicatesDropped)
	}
}
