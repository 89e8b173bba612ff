package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Watch converts src to dst, then converts again every time src is written
// or recreated, until ctx is done. At most one rebuild runs per interval;
// changes arriving while a rebuild is pending are folded into it.
// Rebuild failures are logged and do not stop the loop.
func Watch(ctx context.Context, src, dst string, interval time.Duration, std stdio) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher error: %w", err)
	}
	defer watcher.Close()

	// editors often replace the file, so watch its directory
	if err := watcher.Add(filepath.Dir(src)); err != nil {
		return fmt.Errorf("watch source error, file:%s, error: %w", src, err)
	}

	ctx = CtxAddKvs(ctx, "watch", src)
	rebuild := func() {
		if _, err := Convert(ctx, src, dst, std); err != nil {
			LoggerOf(ctx).Error("rebuild failed", zap.Error(err))
		}
	}

	rebuild()

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	limiter.Allow()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()
	pending := false

	name := filepath.Base(src)
	for {
		select {
		case <-ctx.Done():
			LoggerOf(ctx).Info("watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			LoggerOf(ctx).Debug("source changed", zap.String("op", event.Op.String()))
			if pending {
				continue
			}
			pending = true
			timer.Reset(limiter.Reserve().Delay())

		case <-timer.C:
			pending = false
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			LoggerOf(ctx).Error("watcher error", zap.Error(err))
		}
	}
}
