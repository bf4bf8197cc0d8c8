package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/five82/tinct/internal/replay"
)

// RenderOptions control a render run.
type RenderOptions struct {
	Tail     int           // replay only the last N lines of each input; zero replays all
	Follow   bool          // keep printing lines appended to files
	Interval time.Duration // follow poll interval; zero uses the default
}

// Render replays JSON-lines logs from the given paths or glob patterns ("-"
// is stdin, and no paths means stdin). Config file edits apply to lines
// printed after the edit.
func (a *App) Render(ctx context.Context, patterns []string, opts RenderOptions) error {
	if len(patterns) == 0 {
		patterns = []string{replay.Stdin}
	}
	paths, err := replay.Expand(patterns)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.watchConfig(ctx)

	offsets := make(map[string]int64, len(paths))
	for _, path := range paths {
		a.log.Debug("replaying {path}", zap.String("path", path))
		end, err := replay.ReadFile(path, opts.Tail, a.write)
		if err != nil {
			return fmt.Errorf("replay %s: %w", path, err)
		}
		offsets[path] = end
	}

	if !opts.Follow {
		return nil
	}
	return a.follow(ctx, offsets, opts.Interval)
}

// follow tails every file from the offset its initial replay reached, so
// nothing written in between is skipped.
func (a *App) follow(ctx context.Context, offsets map[string]int64, interval time.Duration) error {
	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for path, offset := range offsets {
		if path == replay.Stdin {
			continue
		}
		wg.Add(1)
		go func(path string, offset int64) {
			defer wg.Done()
			if err := replay.Follow(ctx, path, offset, interval, a.log, a.write); err != nil {
				errOnce.Do(func() {
					firstErr = fmt.Errorf("follow %s: %w", path, err)
					cancel()
				})
			}
		}(path, offset)
	}
	wg.Wait()
	return firstErr
}
