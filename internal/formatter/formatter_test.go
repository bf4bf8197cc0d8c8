package formatter

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/tinct/internal/ansi"
	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/entry"
)

var fixed = time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)

func clock() time.Time { return fixed }

func newStore() *config.Store {
	opts := config.Defaults()
	opts.UseUTC = true
	return config.NewStore(opts)
}

// countingWriter records each Write call separately.
type countingWriter struct {
	mu     sync.Mutex
	writes [][]byte
}

func (c *countingWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.writes = append(c.writes, append([]byte(nil), p...))
	return len(p), nil
}

func TestWrite_SingleWritePerLine(t *testing.T) {
	f := New(newStore(), WithClock(clock))
	defer f.Close()

	w := &countingWriter{}
	e := entry.Templated(entry.Information, "hello {name}", "world")
	require.NoError(t, f.Write(e, w))

	require.Len(t, w.writes, 1)
	assert.Equal(t, `[08:30:00 INF] hello "world"`+"\n", ansi.Strip(string(w.writes[0])))
}

func TestWrite_EmptyMessageWritesNothing(t *testing.T) {
	f := New(newStore(), WithClock(clock))
	w := &countingWriter{}

	require.NoError(t, f.Write(entry.New(entry.Error, ""), w))
	require.NoError(t, f.Write(entry.Entry{Level: entry.Warning}, w))
	assert.Empty(t, w.writes)
}

func TestWrite_FollowsReloads(t *testing.T) {
	store := newStore()
	f := New(store, WithClock(clock))
	defer f.Close()

	var buf bytes.Buffer
	e := entry.New(entry.Information, "x")
	require.NoError(t, f.Write(e, &buf))
	assert.True(t, strings.HasPrefix(ansi.Strip(buf.String()), "[08:30:00 "))

	next := store.Current()
	next.Prefix = "svc "
	next.TimestampFormat = "HH:mm "
	store.Replace(next)

	buf.Reset()
	require.NoError(t, f.Write(e, &buf))
	assert.Equal(t, "svc [08:30 INF] x\n", ansi.Strip(buf.String()))
	assert.Equal(t, "svc ", f.Options().Prefix)
}

func TestWrite_SnapshotIsNeverMixed(t *testing.T) {
	store := newStore()
	a := store.Current()
	a.Prefix, a.TimestampFormat = "A ", "'A' "
	b := store.Current()
	b.Prefix, b.TimestampFormat = "B ", "'B' "
	store.Replace(a)

	f := New(store, WithClock(clock))
	defer f.Close()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				store.Replace(b)
			} else {
				store.Replace(a)
			}
		}
	}()

	e := entry.New(entry.Information, "m")
	for i := 0; i < 500; i++ {
		var buf bytes.Buffer
		require.NoError(t, f.Write(e, &buf))
		line := ansi.Strip(buf.String())
		if line != "A [A INF] m\n" && line != "B [B INF] m\n" {
			t.Fatalf("mixed snapshot line %q", line)
		}
	}
	wg.Wait()
}

func TestClose_IsIdempotent(t *testing.T) {
	store := newStore()
	f := New(store, WithClock(clock))
	require.Equal(t, 1, store.Subscribers())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, f.Close())
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, store.Subscribers())

	// Writes after Close keep the last snapshot.
	next := store.Current()
	next.Prefix = "ignored "
	store.Replace(next)
	var buf bytes.Buffer
	require.NoError(t, f.Write(entry.New(entry.Debug, "late"), &buf))
	assert.NotContains(t, buf.String(), "ignored")
}

type errWriter struct{}

var errBroken = errors.New("broken pipe")

func (errWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestWrite_PropagatesWriterErrors(t *testing.T) {
	f := New(newStore(), WithClock(clock))
	err := f.Write(entry.New(entry.Information, "m"), errWriter{})
	assert.ErrorIs(t, err, errBroken)
}

func TestWrite_UsesConfiguredTheme(t *testing.T) {
	store := newStore()
	opts := store.Current()
	opts.Theme = "None"
	store.Replace(opts)
	f := New(store, WithClock(clock))

	var buf bytes.Buffer
	require.NoError(t, f.Write(entry.New(entry.Information, "v={v}", entry.F("v", 1)), &buf))
	// Only the fixed bracket and badge codes remain; the message is bare.
	assert.True(t, strings.HasSuffix(buf.String(), ansi.DefaultForeground+" v=1\n"), buf.String())
}

func TestWriteAt_UsesGivenTime(t *testing.T) {
	f := New(newStore(), WithClock(clock))
	defer f.Close()

	var buf bytes.Buffer
	at := time.Date(2020, 1, 1, 23, 59, 58, 0, time.UTC)
	require.NoError(t, f.WriteAt(entry.New(entry.Warning, "old"), at, &buf))
	assert.Equal(t, "[23:59:58 WRN] old\n", ansi.Strip(buf.String()))
}
