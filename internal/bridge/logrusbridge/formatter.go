// Package logrusbridge plugs the tinct formatter into sirupsen/logrus.
package logrusbridge

import (
	"bytes"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/five82/tinct/internal/entry"
	"github.com/five82/tinct/internal/formatter"
)

// Formatter is a logrus.Formatter. Entry.Data fills the message's
// placeholders; logrus keeps Data in a map, so fields are ordered by their
// first placeholder in the message and then by key.
type Formatter struct {
	fmt *formatter.Formatter
	// Category is printed as the logger name when show_category is on.
	Category string
}

var _ logrus.Formatter = (*Formatter)(nil)

// New returns a logrus formatter backed by f.
func New(f *formatter.Formatter) *Formatter {
	return &Formatter{fmt: f}
}

// Format implements logrus.Formatter. An entry with nothing to print yields
// no bytes.
func (lf *Formatter) Format(e *logrus.Entry) ([]byte, error) {
	ent := entry.Entry{
		Level:    Level(e.Level),
		Category: lf.Category,
		Message:  e.Message,
		State:    orderedFields(e.Message, e.Data),
	}
	if err, ok := e.Data[logrus.ErrorKey].(error); ok {
		ent.Err = err
	}

	var buf bytes.Buffer
	if err := lf.fmt.Write(ent, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func orderedFields(message string, data logrus.Fields) entry.Fields {
	fields := make(entry.Fields, 0, len(data))
	used := make(map[string]bool, len(data))
	for _, name := range entry.Placeholders(message) {
		if v, ok := data[name]; ok {
			fields = append(fields, entry.F(name, v))
			used[name] = true
		}
	}

	rest := make([]string, 0, len(data)-len(used))
	for k := range data {
		if !used[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	for _, k := range rest {
		fields = append(fields, entry.F(k, data[k]))
	}
	return fields
}

// Level maps a logrus level onto the closed tinct severity set.
func Level(l logrus.Level) entry.Level {
	switch l {
	case logrus.TraceLevel:
		return entry.Trace
	case logrus.DebugLevel:
		return entry.Debug
	case logrus.InfoLevel:
		return entry.Information
	case logrus.WarnLevel:
		return entry.Warning
	case logrus.ErrorLevel:
		return entry.Error
	default:
		return entry.Critical
	}
}
