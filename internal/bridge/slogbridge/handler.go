// Package slogbridge plugs the tinct formatter into log/slog.
package slogbridge

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/five82/tinct/internal/entry"
	"github.com/five82/tinct/internal/formatter"
)

// Extra slog levels for the two tinct severities slog has no name for.
const (
	LevelTrace    = slog.Level(-8)
	LevelCritical = slog.Level(12)
)

// HandlerOptions configures a Handler. A nil *HandlerOptions is valid.
type HandlerOptions struct {
	// Level is the minimum level handled. Defaults to slog.LevelInfo.
	Level slog.Leveler
	// Category is printed as the logger name when show_category is on.
	Category string
}

// Handler is a slog.Handler that renders records with a Formatter. The
// record message is the template; attributes become its fields, with group
// names joined by ".".
type Handler struct {
	fmt  *formatter.Formatter
	w    io.Writer
	mu   *sync.Mutex
	opts HandlerOptions

	fields entry.Fields
	err    error
	prefix string
}

var _ slog.Handler = (*Handler)(nil)

// New returns a Handler writing to w.
func New(w io.Writer, f *formatter.Formatter, opts *HandlerOptions) *Handler {
	h := &Handler{fmt: f, w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle implements slog.Handler.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	fields := slices.Clone(h.fields)
	err := h.err
	r.Attrs(func(a slog.Attr) bool {
		fields, err = appendAttr(fields, err, h.prefix, a)
		return true
	})

	e := entry.Entry{
		Level:    Level(r.Level),
		Category: h.opts.Category,
		Message:  r.Message,
		State:    fields,
		Err:      err,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fmt.Write(e, h.w)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.fields, h2.err = appendAttr(h2.fields, h2.err, h2.prefix, a)
	}
	return h2
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.prefix += name + "."
	return h2
}

func (h *Handler) clone() *Handler {
	h2 := *h
	h2.fields = slices.Clip(h.fields)
	return &h2
}

// appendAttr flattens a into fields. A top-level "error" or "err" attribute
// holding an error also becomes the entry error.
func appendAttr(fields entry.Fields, err error, prefix string, a slog.Attr) (entry.Fields, error) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields, err
	}
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return fields, err
		}
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix += a.Key + "."
		}
		for _, ga := range attrs {
			fields, err = appendAttr(fields, err, groupPrefix, ga)
		}
		return fields, err
	}

	v := a.Value.Any()
	if prefix == "" && (a.Key == "error" || a.Key == "err") {
		if e, ok := v.(error); ok {
			err = e
		}
	}
	return append(fields, entry.F(prefix+a.Key, v)), err
}

// Level maps a slog level onto the closed tinct severity set.
func Level(l slog.Level) entry.Level {
	switch {
	case l < slog.LevelDebug:
		return entry.Trace
	case l < slog.LevelInfo:
		return entry.Debug
	case l < slog.LevelWarn:
		return entry.Information
	case l < slog.LevelError:
		return entry.Warning
	case l < LevelCritical:
		return entry.Error
	default:
		return entry.Critical
	}
}
