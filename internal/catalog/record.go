// SPDX-License-Identifier: MIT

// Package catalog cleans raw archive rows and derives the scored attributes
// the dashboard is built around.
package catalog

import "time"

// Planet is one cleaned catalog row, ready for persistence. Pointer fields
// map to nullable columns.
type Planet struct {
	Name            string
	Host            *string
	DiscoveryMethod *string
	DiscYear        *int
	Facility        *string

	OrbitalPeriodDays *float64
	SemiMajorAxisAU   *float64
	RadiusEarth       *float64
	RadiusJupiter     *float64
	MassEarth         *float64
	MassJupiter       *float64
	BestMassEarth     *float64
	BestMassJupiter   *float64
	MassProvenance    *string
	Density           *float64
	EqTempK           *float64
	Insolation        *float64

	StarTeffK       *float64
	StarRadiusSun   *float64
	StarMassSun     *float64
	StarMetallicity *float64
	StarLogG        *float64
	StarAgeGyr      *float64

	StarCount   *int
	PlanetCount *int
	DistancePC  *float64
	GaiaMag     *float64

	RA     *float64
	Dec    *float64
	GalLat *float64
	GalLon *float64

	// Derived attributes
	HabitabilityScore int
	PlanetType        string
	DiscoveryEra      *string
	DistanceCategory  *string

	FetchedAt time.Time
}
