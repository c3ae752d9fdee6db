// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"fmt"
)

// Schema: three normalized tables. planets carries the full per-planet row
// including derived attributes; stars and systems are keyed by hostname.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS planets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pl_name TEXT UNIQUE NOT NULL,
		hostname TEXT,
		discoverymethod TEXT,
		disc_year INTEGER,
		disc_facility TEXT,

		pl_orbper REAL,
		pl_orbsmax REAL,

		pl_rade REAL,
		pl_radj REAL,
		pl_masse REAL,
		pl_massj REAL,
		pl_bmasse REAL,
		pl_bmassj REAL,
		pl_bmassprov TEXT,
		pl_dens REAL,

		pl_eqt REAL,
		pl_insol REAL,

		habitability_score INTEGER,
		planet_type TEXT,
		discovery_era TEXT,
		distance_category TEXT,

		ra REAL,
		dec REAL,
		glat REAL,
		glon REAL,

		data_fetched_at TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS stars (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hostname TEXT UNIQUE NOT NULL,
		st_teff REAL,
		st_rad REAL,
		st_mass REAL,
		st_met REAL,
		st_logg REAL,
		st_age REAL,
		planet_count INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS systems (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hostname TEXT UNIQUE NOT NULL,
		sy_snum INTEGER,
		sy_pnum INTEGER,
		sy_dist REAL,
		sy_gaiamag REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_discoverymethod ON planets(discoverymethod)`,
	`CREATE INDEX IF NOT EXISTS idx_disc_year ON planets(disc_year)`,
	`CREATE INDEX IF NOT EXISTS idx_hostname ON planets(hostname)`,
	`CREATE INDEX IF NOT EXISTS idx_habitability ON planets(habitability_score)`,
	`CREATE INDEX IF NOT EXISTS idx_planet_type ON planets(planet_type)`,
	`CREATE INDEX IF NOT EXISTS idx_distance ON systems(sy_dist)`,
}

// Migrate creates the catalog tables and indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
