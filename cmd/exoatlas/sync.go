// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skyfold/exoatlas/internal/archive"
	"github.com/skyfold/exoatlas/internal/jobs"
	"github.com/skyfold/exoatlas/internal/metrics"
	"github.com/skyfold/exoatlas/internal/store"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Fetch the archive once and rebuild the local catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}

			st, err := store.Open(cfg.DBPath, store.DefaultConfig())
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			client := archive.New(cfg.ArchiveBaseURL,
				archive.WithTimeout(cfg.FetchTimeout),
				archive.WithRateLimit(cfg.FetchRPS),
			)

			opts := jobs.Options{}
			if cfg.SnapshotRaw {
				opts.SnapshotDir = cfg.DataDir
			}

			status, err := jobs.Sync(ctx, jobs.Deps{
				Client:  client,
				Store:   st,
				Metrics: metrics.SyncRecorder{},
			}, opts)
			if err != nil {
				return err
			}

			fmt.Printf("synced %d planets (%d already present), %d stars, %d systems\n",
				status.Planets, status.Skipped, status.Stars, status.Systems)
			return nil
		},
	}
}
