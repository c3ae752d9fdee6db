// SPDX-License-Identifier: MIT

package archive

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Float is a nullable numeric TAP column. The archive serves numeric columns
// as JSON numbers, but older result sets carry them as quoted strings, and
// missing measurements arrive as null or "".
type Float struct {
	Value float64
	Valid bool
}

func (f *Float) UnmarshalJSON(b []byte) error {
	f.Value, f.Valid = 0, false

	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) >= 2 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil || s == "" {
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// Coercion contract: unparseable values become null, not errors.
			return nil
		}
		f.Value, f.Valid = v, true
		return nil
	}

	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return nil
	}
	f.Value, f.Valid = v, true
	return nil
}

// String is a nullable text TAP column.
type String struct {
	Value string
	Valid bool
}

func (s *String) UnmarshalJSON(b []byte) error {
	s.Value, s.Valid = "", false

	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) >= 2 && b[0] == '"' {
		// Escape sequences must be decoded, not carried through verbatim:
		// the TAP service escapes non-ASCII names.
		var v string
		if err := json.Unmarshal(b, &v); err != nil || v == "" {
			return nil
		}
		s.Value, s.Valid = v, true
	}
	return nil
}

// Record mirrors one row of the planetary systems (ps) table, restricted to
// the columns the sync query selects.
type Record struct {
	Name            String `json:"pl_name"`
	Host            String `json:"hostname"`
	DiscoveryMethod String `json:"discoverymethod"`
	DiscYear        Float  `json:"disc_year"`
	Facility        String `json:"disc_facility"`

	OrbitalPeriod Float `json:"pl_orbper"`
	SemiMajorAxis Float `json:"pl_orbsmax"`
	RadiusEarth   Float `json:"pl_rade"`
	RadiusJupiter Float `json:"pl_radj"`
	MassEarth     Float `json:"pl_masse"`
	MassJupiter   Float `json:"pl_massj"`
	BestMassEarth Float `json:"pl_bmasse"`
	BestMassJup   Float `json:"pl_bmassj"`
	MassProv      String `json:"pl_bmassprov"`
	EqTemp        Float `json:"pl_eqt"`
	Insolation    Float `json:"pl_insol"`
	Density       Float `json:"pl_dens"`

	StarTeff        Float `json:"st_teff"`
	StarRadius      Float `json:"st_rad"`
	StarMass        Float `json:"st_mass"`
	StarMetallicity Float `json:"st_met"`
	StarLogG        Float `json:"st_logg"`
	StarAge         Float `json:"st_age"`

	StarCount   Float `json:"sy_snum"`
	PlanetCount Float `json:"sy_pnum"`
	Distance    Float `json:"sy_dist"`
	GaiaMag     Float `json:"sy_gaiamag"`

	RA     Float `json:"ra"`
	Dec    Float `json:"dec"`
	GalLat Float `json:"glat"`
	GalLon Float `json:"glon"`
}

// Empty reports whether every column of the record is null.
func (r Record) Empty() bool {
	if r.Name.Valid || r.Host.Valid || r.DiscoveryMethod.Valid || r.Facility.Valid || r.MassProv.Valid {
		return false
	}
	floats := []Float{
		r.DiscYear, r.OrbitalPeriod, r.SemiMajorAxis, r.RadiusEarth, r.RadiusJupiter,
		r.MassEarth, r.MassJupiter, r.BestMassEarth, r.BestMassJup, r.EqTemp,
		r.Insolation, r.Density, r.StarTeff, r.StarRadius, r.StarMass,
		r.StarMetallicity, r.StarLogG, r.StarAge, r.StarCount, r.PlanetCount,
		r.Distance, r.GaiaMag, r.RA, r.Dec, r.GalLat, r.GalLon,
	}
	for _, f := range floats {
		if f.Valid {
			return false
		}
	}
	return true
}
