// Package formatter is the entry point a host logging pipeline calls for each
// log entry. It reads one configuration snapshot per call, renders the
// message and line, and hands the result to the output stream in a single
// write.
package formatter

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/entry"
	"github.com/five82/tinct/internal/render"
	"github.com/five82/tinct/internal/theme"
)

// Option customizes a Formatter.
type Option func(*Formatter)

// WithClock replaces time.Now as the source of line timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Formatter) {
		if now != nil {
			f.now = now
		}
	}
}

// Formatter renders entries to colored lines. It is safe for concurrent use;
// serializing writes to a shared stream is the caller's job.
type Formatter struct {
	opts   atomic.Pointer[config.Options]
	now    func() time.Time
	cancel func()
	once   sync.Once
}

// New returns a Formatter that follows the snapshots published by p.
func New(p config.Provider, opts ...Option) *Formatter {
	f := &Formatter{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	f.cancel = p.Subscribe(func(o config.Options) {
		f.opts.Store(&o)
	})
	// A replacement delivered during Subscribe is newer than Current.
	current := p.Current()
	f.opts.CompareAndSwap(nil, &current)
	return f
}

// Options returns the snapshot the next Write will use.
func (f *Formatter) Options() config.Options {
	return *f.opts.Load()
}

const maxPooledBuffer = 64 << 10

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Write renders e and writes it to w as exactly one line in one Write call.
// An entry with nothing to print writes nothing. Errors from w are returned
// unchanged.
func (f *Formatter) Write(e entry.Entry, w io.Writer) error {
	return f.WriteAt(e, f.now(), w)
}

// WriteAt is Write with an explicit timestamp, for entries replayed from a
// log that recorded their own time.
func (f *Formatter) WriteAt(e entry.Entry, at time.Time, w io.Writer) error {
	opts := f.opts.Load()
	th := theme.Get(opts.Theme)

	msg := render.Message(e, th, *opts)
	if msg == "" {
		return nil
	}

	buf := bufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		if buf.Cap() <= maxPooledBuffer {
			bufPool.Put(buf)
		}
	}()

	if err := render.Line(buf, at, *opts, e.Level, e.Category, msg); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Close releases the configuration subscription. Later calls do nothing, and
// Write keeps using the last snapshot.
func (f *Formatter) Close() error {
	f.once.Do(func() {
		if f.cancel != nil {
			f.cancel()
		}
	})
	return nil
}
