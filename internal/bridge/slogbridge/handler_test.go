package slogbridge

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tinct/internal/ansi"
	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/entry"
	"github.com/five82/tinct/internal/formatter"
)

func newLogger(t *testing.T, opts *HandlerOptions, mutate func(*config.Options)) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	o := config.Defaults()
	o.UseUTC = true
	o.Theme = "None"
	if mutate != nil {
		mutate(&o)
	}
	f := formatter.New(config.NewStore(o), formatter.WithClock(func() time.Time {
		return time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	}))
	t.Cleanup(func() { _ = f.Close() })

	var buf bytes.Buffer
	return slog.New(New(&buf, f, opts)), &buf
}

func TestHandler_RendersTemplateFromAttrs(t *testing.T) {
	logger, buf := newLogger(t, nil, nil)
	logger.Info("user {user} bought {count} items", "user", "Peter", "count", 3)
	assert.Equal(t, `[04:05:06 INF] user "Peter" bought 3 items`+"\n", ansi.Strip(buf.String()))
}

func TestHandler_GroupsAndWithAttrs(t *testing.T) {
	logger, buf := newLogger(t, nil, nil)
	logger = logger.With("svc", "api").WithGroup("req")
	logger.Warn("{svc} {req.method} {req.user.id}",
		"method", "GET",
		slog.Group("user", "id", 7),
	)
	assert.Equal(t, `[04:05:06 WRN] "api" "GET" 7`+"\n", ansi.Strip(buf.String()))
}

func TestHandler_ErrorAttrBecomesEntryError(t *testing.T) {
	logger, buf := newLogger(t, nil, func(o *config.Options) { o.ShowErrors = true })
	logger.Error("save failed", "err", errors.New("disk full"))
	assert.Equal(t, "[04:05:06 ERR] save failed disk full\n", ansi.Strip(buf.String()))
}

func TestHandler_LevelFilterAndCategory(t *testing.T) {
	var lv slog.LevelVar
	lv.Set(LevelTrace)
	logger, buf := newLogger(t, &HandlerOptions{Level: &lv, Category: "worker"},
		func(o *config.Options) { o.ShowCategory = true })

	logger.Log(context.Background(), LevelTrace, "tick")
	assert.Equal(t, "[04:05:06 TRACE] worker: tick\n", ansi.Strip(buf.String()))

	buf.Reset()
	lv.Set(slog.LevelWarn)
	logger.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestLevel(t *testing.T) {
	tests := []struct {
		in   slog.Level
		want entry.Level
	}{
		{LevelTrace, entry.Trace},
		{slog.LevelDebug, entry.Debug},
		{slog.LevelInfo, entry.Information},
		{slog.LevelInfo + 2, entry.Information},
		{slog.LevelWarn, entry.Warning},
		{slog.LevelError, entry.Error},
		{LevelCritical, entry.Critical},
		{slog.Level(100), entry.Critical},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			got := Level(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestHandler_EmptyMessageWritesNothing(t *testing.T) {
	logger, buf := newLogger(t, nil, nil)
	logger.Info("", "k", "v")
	assert.Empty(t, buf.String())
}

// captureWriter keeps each Write as one line; the handler serializes calls.
type captureWriter struct{ lines []string }

func (c *captureWriter) Write(p []byte) (int, error) {
	c.lines = append(c.lines, string(p))
	return len(p), nil
}

func TestHandler_ConcurrentWritesAreWholeLines(t *testing.T) {
	o := config.Defaults()
	o.Theme = "None"
	f := formatter.New(config.NewStore(o))
	defer f.Close()
	w := &captureWriter{}
	logger := slog.New(New(w, f, nil))

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 50; j++ {
				logger.Info("n={n}", "n", j)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	require.Len(t, w.lines, 400)
	for _, l := range w.lines {
		assert.Regexp(t, `^\[.* INF\] n=\d+\n$`, ansi.Strip(l))
	}
}
