// SPDX-License-Identifier: MIT

package catalog

// Planet type labels keyed off radius in Earth radii.
const (
	TypeRocky       = "Rocky (Earth-like)"
	TypeSuperEarth  = "Super-Earth"
	TypeMiniNeptune = "Mini-Neptune"
	TypeNeptuneLike = "Neptune-like"
	TypeJupiterLike = "Jupiter-like"
	TypeUnknown     = "Unknown"
)

// Habitability score weights. The score is a plain additive rubric over three
// independent criteria; a planet missing a measurement earns no points for it.
const (
	radiusPoints = 35 // 0.5 to 2.0 Earth radii
	tempPoints   = 40 // 200 to 350 K equilibrium temperature
	periodPoints = 25 // 200 to 500 day orbital period
)

// HabitabilityThreshold divides "potentially habitable" candidates from the
// rest everywhere the dashboard counts them.
const HabitabilityThreshold = 50

// HabitabilityScore computes the 0-100 additive score.
func HabitabilityScore(radiusEarth, eqTempK, orbitalPeriodDays *float64) int {
	score := 0
	if inRange(radiusEarth, 0.5, 2.0) {
		score += radiusPoints
	}
	if inRange(eqTempK, 200, 350) {
		score += tempPoints
	}
	if inRange(orbitalPeriodDays, 200, 500) {
		score += periodPoints
	}
	return score
}

func inRange(v *float64, lo, hi float64) bool {
	return v != nil && *v >= lo && *v <= hi
}

// ClassifyPlanetType bins a planet by radius.
func ClassifyPlanetType(radiusEarth *float64) string {
	if radiusEarth == nil {
		return TypeUnknown
	}
	r := *radiusEarth
	switch {
	case r < 1.25:
		return TypeRocky
	case r < 2.0:
		return TypeSuperEarth
	case r < 4.0:
		return TypeMiniNeptune
	case r < 10.0:
		return TypeNeptuneLike
	default:
		return TypeJupiterLike
	}
}

// DiscoveryEra bins a discovery year into the labels the analytics page
// groups by. Bins are right-closed: 2000 still counts as Pre-2000, matching
// the published catalog this service replaces.
func DiscoveryEra(year *int) *string {
	if year == nil {
		return nil
	}
	y := *year
	var label string
	switch {
	case y <= 0 || y > 2030:
		return nil
	case y <= 2000:
		label = "Pre-2000"
	case y <= 2010:
		label = "2000s"
	case y <= 2015:
		label = "2010-2015"
	case y <= 2020:
		label = "2015-2020"
	default:
		label = "2020+"
	}
	return &label
}

// DistanceCategory bins system distance (parsecs) into the explorer's coarse
// buckets. Distances outside (0, 10000] stay null.
func DistanceCategory(distancePC *float64) *string {
	if distancePC == nil {
		return nil
	}
	d := *distancePC
	var label string
	switch {
	case d <= 0 || d > 10000:
		return nil
	case d <= 50:
		label = "Very Close (<50pc)"
	case d <= 100:
		label = "Close (50-100pc)"
	case d <= 500:
		label = "Moderate (100-500pc)"
	default:
		label = "Far (>500pc)"
	}
	return &label
}
