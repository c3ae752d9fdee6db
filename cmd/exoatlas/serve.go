// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/skyfold/exoatlas/internal/archive"
	"github.com/skyfold/exoatlas/internal/cache"
	"github.com/skyfold/exoatlas/internal/config"
	"github.com/skyfold/exoatlas/internal/jobs"
	xglog "github.com/skyfold/exoatlas/internal/log"
	"github.com/skyfold/exoatlas/internal/metrics"
	"github.com/skyfold/exoatlas/internal/store"
	"github.com/skyfold/exoatlas/internal/telemetry"
	"github.com/skyfold/exoatlas/internal/version"
	"github.com/skyfold/exoatlas/internal/web"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analytics dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := xglog.WithComponent("serve")

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	st, err := store.Open(cfg.DBPath, store.DefaultConfig())
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	var queryCache cache.Cache
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		}, xglog.WithComponent("cache"))
		if err != nil {
			return err
		}
		defer rc.Close() //nolint:errcheck
		queryCache = rc
	} else {
		mem := cache.NewMemory(5 * time.Minute)
		defer mem.Close()
		queryCache = mem
	}

	tracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    cfg.LogService,
		ServiceVersion: version.Version,
		Endpoint:       cfg.OTLPEndpoint,
		SamplingRate:   cfg.TraceSample,
	})
	if err != nil {
		return err
	}
	defer tracing.Shutdown(context.Background()) //nolint:errcheck

	srv, err := web.New(st, queryCache, web.Options{
		ListenAddr:     cfg.ListenAddr,
		CacheTTL:       cfg.CacheTTL,
		RateLimitRPM:   cfg.RateLimitRPM,
		RateLimitBurst: cfg.RateLimitBurst,
		Version:        version.Version,
		Tracing:        cfg.OTLPEndpoint != "",
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	g.Go(func() error { return web.WatchDB(ctx, cfg.DBPath, queryCache) })
	if cfg.SyncInterval > 0 {
		g.Go(func() error { return syncLoop(ctx, cfg, st, logger) })
	}
	return g.Wait()
}

// syncLoop keeps the catalog fresh. A failed run is logged and retried on the
// next tick; it never takes the dashboard down.
func syncLoop(ctx context.Context, cfg config.Config, st *store.Store, logger zerolog.Logger) error {
	client := archive.New(cfg.ArchiveBaseURL,
		archive.WithTimeout(cfg.FetchTimeout),
		archive.WithRateLimit(cfg.FetchRPS),
	)
	deps := jobs.Deps{
		Client:  client,
		Store:   st,
		Metrics: metrics.SyncRecorder{},
	}
	opts := jobs.Options{}
	if cfg.SnapshotRaw {
		opts.SnapshotDir = cfg.DataDir
	}

	run := func() {
		if _, err := jobs.Sync(ctx, deps, opts); err != nil {
			logger.Warn().
				Err(err).
				Str("event", "serve.sync_failed").
				Msg("scheduled sync failed, will retry on next tick")
		}
	}

	// Populate an empty catalog right away instead of waiting a full
	// interval.
	if totals, err := st.Totals(ctx); err == nil && totals.Planets == 0 {
		run()
	}

	ticker := time.NewTicker(cfg.SyncInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			run()
		}
	}
}
