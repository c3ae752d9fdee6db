// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/skyfold/exoatlas/internal/catalog"
	xglog "github.com/skyfold/exoatlas/internal/log"
)

// Sync performs the complete catalog cycle: fetch → clean → load.
func Sync(ctx context.Context, deps Deps, opts Options) (*Status, error) {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}

	jobID := uuid.NewString()
	ctx = xglog.ContextWithJobID(ctx, jobID)
	logger := xglog.WithComponentFromContext(ctx, "jobs")

	stats := Stats{StartTime: clock()}
	logger.Info().Str("event", "sync.start").Msg("starting catalog sync")

	records, raw, err := deps.Client.ConfirmedPlanets(ctx)
	if err != nil {
		return failed(deps, logger, "fetch", err)
	}
	stats.RowsRaw = len(records)
	logger.Info().
		Str("event", "sync.fetch").
		Int("rows", stats.RowsRaw).
		Msg("archive fetch complete")

	if opts.SnapshotDir != "" {
		path := filepath.Join(opts.SnapshotDir, "archive_raw.json")
		if err := renameio.WriteFile(path, raw, 0o644); err != nil {
			// The snapshot is a diagnostic aid; a failed write must not
			// abort the sync.
			logger.Warn().
				Err(err).
				Str("event", "sync.snapshot_failed").
				Str("path", path).
				Msg("raw snapshot write failed")
		} else {
			logger.Info().
				Str("event", "sync.snapshot").
				Str("path", path).
				Int("bytes", len(raw)).
				Msg("raw snapshot written")
		}
	}

	planets, cleanStats := catalog.Clean(records, clock())
	stats.Clean = cleanStats
	logger.Info().
		Str("event", "sync.clean").
		Int("rows_in", cleanStats.RowsIn).
		Int("rows_out", cleanStats.RowsOut).
		Int("duplicates", cleanStats.DuplicatesDropped).
		Int("nameless", cleanStats.NamelessDropped).
		Int("empty", cleanStats.EmptyDropped).
		Msg("cleaning complete")

	if len(planets) == 0 {
		return failed(deps, logger, "empty", fmt.Errorf("sync: no usable rows after cleaning"))
	}

	if err := deps.Store.Migrate(ctx); err != nil {
		return failed(deps, logger, "migrate", err)
	}

	result, err := deps.Store.Load(ctx, planets)
	if err != nil {
		return failed(deps, logger, "load", err)
	}
	stats.Load = result

	stats.EndTime = clock()
	stats.DurationMS = stats.EndTime.Sub(stats.StartTime).Milliseconds()

	if deps.Metrics != nil {
		deps.Metrics.RecordSync(stats.EndTime.Sub(stats.StartTime),
			result.PlanetsInserted+result.PlanetsSkipped, result.Stars, result.Systems)
	}

	status := &Status{
		LastRun: stats.EndTime,
		Planets: result.PlanetsInserted,
		Stars:   result.Stars,
		Systems: result.Systems,
		Skipped: result.PlanetsSkipped,
	}
	logger.Info().
		Str("event", "sync.success").
		Int("planets_inserted", result.PlanetsInserted).
		Int("planets_skipped", result.PlanetsSkipped).
		Int("stars", result.Stars).
		Int("systems", result.Systems).
		Int64("duration_ms", stats.DurationMS).
		Msg("catalog sync completed")
	return status, nil
}

func failed(deps Deps, logger zerolog.Logger, reason string, err error) (*Status, error) {
	if deps.Metrics != nil {
		deps.Metrics.IncSyncFailure(reason)
	}
	logger.Error().
		Err(err).
		Str("event", "sync.failed").
		Str("reason", reason).
		Msg("catalog sync failed")
	return nil, fmt.Errorf("%s: %w", reason, err)
}
