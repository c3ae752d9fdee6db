// SPDX-License-Identifier: MIT

// Package jobs orchestrates the catalog sync pipeline: fetch, clean, load.
package jobs

import (
	"context"
	"time"

	"github.com/skyfold/exoatlas/internal/archive"
	"github.com/skyfold/exoatlas/internal/catalog"
	"github.com/skyfold/exoatlas/internal/store"
)

// ArchiveClient fetches raw rows from the exoplanet archive.
type ArchiveClient interface {
	ConfirmedPlanets(ctx context.Context) ([]archive.Record, []byte, error)
}

// Loader persists cleaned planets.
type Loader interface {
	Migrate(ctx context.Context) error
	Load(ctx context.Context, planets []catalog.Planet) (store.LoadResult, error)
}

// MetricsRecorder publishes sync outcomes.
type MetricsRecorder interface {
	RecordSync(duration time.Duration, planets, stars, systems int)
	IncSyncFailure(reason string)
}

// Options controls one sync run.
type Options struct {
	// SnapshotDir, when set, receives an atomic copy of the raw archive
	// response (archive_raw.json).
	SnapshotDir string
}

// Deps holds the collaborators of a sync run.
type Deps struct {
	Client  ArchiveClient
	Store   Loader
	Metrics MetricsRecorder
	Clock   func() time.Time // nil means time.Now
}

// Status is the persisted outcome of the most recent sync.
type Status struct {
	LastRun time.Time `json:"last_run"`
	Planets int       `json:"planets"`
	Stars   int       `json:"stars"`
	Systems int       `json:"systems"`
	Skipped int       `json:"skipped"`
	Error   string    `json:"error,omitempty"`
}

// Stats carries timing and per-stage counts for logging.
type Stats struct {
	StartTime  time.Time
	EndTime    time.Time
	DurationMS int64
	RowsRaw    int
	Clean      catalog.Stats
	Load       store.LoadResult
}
