// Package zapbridge plugs the tinct formatter into go.uber.org/zap as a
// zapcore.Core.
package zapbridge

import (
	"sort"
	"sync"

	"go.uber.org/zap/zapcore"

	"github.com/five82/tinct/internal/entry"
	"github.com/five82/tinct/internal/formatter"
)

// Core renders zap entries with a Formatter. The entry message is the
// template and fields fill its placeholders in the order they were added.
type Core struct {
	zapcore.LevelEnabler

	fmt *formatter.Formatter
	out zapcore.WriteSyncer
	mu  *sync.Mutex

	acc accumulated
}

// accumulated is the field context built up by With calls.
type accumulated struct {
	fields entry.Fields
	err    error
	prefix string
}

var _ zapcore.Core = (*Core)(nil)

// NewCore returns a Core writing to out for levels enabled by enab.
func NewCore(f *formatter.Formatter, out zapcore.WriteSyncer, enab zapcore.LevelEnabler) *Core {
	return &Core{LevelEnabler: enab, fmt: f, out: out, mu: &sync.Mutex{}}
}

// With implements zapcore.Core.
func (c *Core) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.acc = c.acc.with(fields)
	return &clone
}

// Check implements zapcore.Core.
func (c *Core) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write implements zapcore.Core.
func (c *Core) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	acc := c.acc.with(fields)
	e := entry.Entry{
		Level:    Level(ent.Level),
		Category: ent.LoggerName,
		Message:  ent.Message,
		State:    acc.fields,
		Err:      acc.err,
	}

	c.mu.Lock()
	werr := c.fmt.Write(e, c.out)
	c.mu.Unlock()
	if werr != nil {
		return werr
	}
	if ent.Level > zapcore.ErrorLevel {
		// Panic and fatal entries may be the last thing the process does.
		_ = c.Sync()
	}
	return nil
}

// Sync implements zapcore.Core.
func (c *Core) Sync() error {
	return c.out.Sync()
}

// with returns a copy of a extended by fields, converted in order. Namespaces
// prefix the keys of every field that follows them.
func (a accumulated) with(fields []zapcore.Field) accumulated {
	dst := append(entry.Fields(nil), a.fields...)
	err, prefix := a.err, a.prefix
	for _, f := range fields {
		switch f.Type {
		case zapcore.SkipType:
			continue
		case zapcore.NamespaceType:
			prefix += f.Key + "."
			continue
		case zapcore.ErrorType:
			if e, ok := f.Interface.(error); ok {
				if prefix == "" {
					err = e
				}
				dst = append(dst, entry.F(prefix+f.Key, e))
				continue
			}
		}

		enc := zapcore.NewMapObjectEncoder()
		f.AddTo(enc)
		if v, ok := enc.Fields[f.Key]; ok && len(enc.Fields) == 1 {
			dst = append(dst, entry.F(prefix+f.Key, v))
			continue
		}
		// Inline objects add several keys at once.
		keys := make([]string, 0, len(enc.Fields))
		for k := range enc.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			dst = append(dst, entry.F(prefix+k, enc.Fields[k]))
		}
	}
	return accumulated{fields: dst, err: err, prefix: prefix}
}

// Level maps a zap level onto the closed tinct severity set.
func Level(l zapcore.Level) entry.Level {
	switch {
	case l < zapcore.DebugLevel:
		return entry.Trace
	case l == zapcore.DebugLevel:
		return entry.Debug
	case l == zapcore.InfoLevel:
		return entry.Information
	case l == zapcore.WarnLevel:
		return entry.Warning
	case l == zapcore.ErrorLevel:
		return entry.Error
	default:
		return entry.Critical
	}
}
