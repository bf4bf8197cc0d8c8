package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch reloads the config file into store whenever it changes on disk. The
// parent directory is watched so editors that replace the file atomically are
// still seen. A file that fails to parse leaves the previous snapshot in
// place. resolve, when non-nil, is applied to every loaded file before it
// reaches the store, so settings layered on top of the file survive a reload.
// Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, store *Store, logger *zap.Logger, resolve func(Options) Options) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if resolve == nil {
		resolve = func(o Options) Options { return o }
	}
	resolved, err := ResolvePath(path)
	if err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	dir := filepath.Dir(resolved)
	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	logger.Debug("watching config", zap.String("path", resolved))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != resolved {
				continue
			}
			switch {
			case ev.Op&fsnotify.Write != 0,
				ev.Op&fsnotify.Create != 0,
				ev.Op&fsnotify.Remove != 0,
				ev.Op&fsnotify.Rename != 0:
				reload(resolved, store, logger, resolve)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher error", zap.Error(err))
		}
	}
}

func reload(path string, store *Store, logger *zap.Logger, resolve func(Options) Options) {
	opts, err := Load(path)
	if err != nil {
		logger.Warn("config reload failed; keeping previous settings", zap.String("path", path), zap.Error(err))
		return
	}
	opts = resolve(opts)
	if opts == store.Current() {
		return
	}
	store.Replace(opts)
	logger.Info("config reloaded", zap.String("path", path), zap.String("theme", opts.Theme))
}
