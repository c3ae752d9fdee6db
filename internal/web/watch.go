// SPDX-License-Identifier: MIT

package web

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/skyfold/exoatlas/internal/cache"
	xglog "github.com/skyfold/exoatlas/internal/log"
)

// WatchDB invalidates the query cache when the database file changes on disk,
// so a sync run (in this process or another) is reflected without waiting for
// TTL expiry. It blocks until ctx is cancelled.
//
// Writes arrive in bursts (WAL, shm and main file), so invalidation is
// debounced.
func WatchDB(ctx context.Context, dbPath string, c cache.Cache) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("web: create watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck

	dir := filepath.Dir(dbPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("web: watch %s: %w", dir, err)
	}

	logger := xglog.WithComponent("web.watch")
	logger.Info().
		Str("event", "watch.start").
		Str("path", dbPath).
		Msg("watching database file")

	base := filepath.Base(dbPath)
	const debounce = 2 * time.Second
	var lastClear time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if time.Since(lastClear) < debounce {
				continue
			}
			lastClear = time.Now()
			c.Clear()
			logger.Info().
				Str("event", "watch.invalidate").
				Str("file", event.Name).
				Msg("database changed, query cache cleared")
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().
				Err(err).
				Str("event", "watch.error").
				Msg("watcher error")
		}
	}
}
