// SPDX-License-Identifier: MIT

package web

import (
	"net/url"
	"strconv"

	"github.com/skyfold/exoatlas/internal/store"
)

// Default filter bounds. They are deliberately wide so an empty form shows
// the whole catalog.
const (
	defaultYearMin   = 1990
	defaultYearMax   = 2030
	defaultRadiusMax = 25.0
	defaultTempMax   = 3000.0
	defaultLimit     = 1000
)

// parseFilter builds the explorer filter from query parameters. Unparseable
// values fall back to the defaults rather than erroring.
func parseFilter(q url.Values) store.Filter {
	f := store.Filter{
		Methods:   compact(q["method"]),
		Types:     compact(q["type"]),
		YearMin:   intParam(q, "year_min", defaultYearMin),
		YearMax:   intParam(q, "year_max", defaultYearMax),
		RadiusMin: floatParam(q, "radius_min", 0),
		RadiusMax: floatParam(q, "radius_max", defaultRadiusMax),
		TempMin:   floatParam(q, "temp_min", 0),
		TempMax:   floatParam(q, "temp_max", defaultTempMax),
		MinScore:  intParam(q, "min_score", 0),
		Limit:     intParam(q, "limit", defaultLimit),
	}
	if f.YearMax < f.YearMin {
		f.YearMin, f.YearMax = f.YearMax, f.YearMin
	}
	if f.RadiusMax < f.RadiusMin {
		f.RadiusMin, f.RadiusMax = f.RadiusMax, f.RadiusMin
	}
	if f.TempMax < f.TempMin {
		f.TempMin, f.TempMax = f.TempMax, f.TempMin
	}
	return f
}

func compact(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func intParam(q url.Values, key string, fallback int) int {
	v := q.Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func floatParam(q url.Values, key string, fallback float64) float64 {
	v := q.Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}
