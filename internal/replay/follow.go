package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultFollowInterval = 500 * time.Millisecond
	maxBackoff            = 30 * time.Second
)

// Follow replays lines appended to path from byte offset on, polling at
// interval until ctx is cancelled. A negative offset starts at the file's
// current end. A file that shrinks is taken to be rotated
// and is read again from the start; a missing file is waited for. Read errors
// back off exponentially up to maxBackoff. An error from fn stops Follow and is
// returned as is.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, logger *zap.Logger, fn func(Record) error) error {
	if interval <= 0 {
		interval = defaultFollowInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &follower{path: path, offset: offset}
	if offset < 0 {
		t.offset = 0
		if info, err := os.Stat(path); err == nil {
			t.offset = info.Size()
		}
	}

	failures := 0
	timer := time.NewTimer(interval)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		lines, err := t.poll()
		if err != nil {
			failures++
			wait := calculateBackoff(failures, interval)
			logger.Warn("follow poll failed", zap.String("path", path), zap.Error(err), zap.Duration("retry_in", wait))
			timer.Reset(wait)
			continue
		}
		failures = 0
		for _, line := range lines {
			if err := emit(line, fn); err != nil {
				return err
			}
		}
		timer.Reset(interval)
	}
}

type follower struct {
	path    string
	offset  int64
	pending string
}

// poll returns the complete lines appended since the last call. A trailing
// partial line is held back until its newline arrives.
func (t *follower) poll() ([]string, error) {
	file, err := os.Open(t.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.offset, t.pending = 0, ""
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat log: %w", err)
	}
	size := info.Size()
	if size < t.offset {
		t.offset, t.pending = 0, ""
	}
	if size == t.offset {
		return nil, nil
	}

	if _, err := file.Seek(t.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek log: %w", err)
	}
	data, err := io.ReadAll(io.LimitReader(file, size-t.offset))
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	t.offset += int64(len(data))

	text := t.pending + string(data)
	cut := strings.LastIndexByte(text, '\n')
	if cut < 0 {
		t.pending = text
		return nil, nil
	}
	t.pending = text[cut+1:]
	lines := strings.Split(text[:cut], "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines, nil
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
