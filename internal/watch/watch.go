package watch

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Run re-invokes run whenever the file at path is written or replaced,
// after one immediate run. The parent directory is watched rather than
// the file itself so editors that save via rename keep triggering.
// Pipeline failures are logged and watching continues; the loop ends
// on watcher setup failure, channel closure, or context cancellation.
func Run(ctx context.Context, path string, logger *slog.Logger, run func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	if err := run(); err != nil {
		logger.Error("parse failed", "file", path, "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || name != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			logger.Debug("source changed", "op", event.Op.String())
			if err := run(); err != nil {
				logger.Error("parse failed", "file", path, "error", err)
				continue
			}
			logger.Info("parse succeeded", "file", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error", "error", err)
		}
	}
}
