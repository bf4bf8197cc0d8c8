package render

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/five82/tinct/internal/ansi"
	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/entry"
)

// ErrUnknownLevel is the panic value (wrapped) raised when a line is composed
// for a level outside the closed set. Entries built through the public
// constructors can never carry one.
var ErrUnknownLevel = errors.New("render: unknown severity level")

type badge struct {
	text   string
	fg, bg ansi.Color
}

var badges = [...]badge{
	entry.Trace:       {"TRACE", ansi.Gray, ansi.Black},
	entry.Debug:       {"DBG", ansi.Gray, ansi.Black},
	entry.Information: {"INF", ansi.DarkGreen, ansi.Black},
	entry.Warning:     {"WRN", ansi.Yellow, ansi.Black},
	entry.Error:       {"ERR", ansi.Black, ansi.DarkRed},
	entry.Critical:    {"CRI", ansi.White, ansi.DarkRed},
}

// Bracket foreground around the timestamp and badge.
const bracketColor = ansi.DarkBlue

// Badge returns the short uppercase badge for level. It panics for a level
// outside the closed set.
func Badge(level entry.Level) string {
	return badgeFor(level).text
}

func badgeFor(level entry.Level) badge {
	if !level.Valid() {
		panic(fmt.Errorf("%w: %s", ErrUnknownLevel, level))
	}
	return badges[level]
}

// Line writes one complete line to w:
//
//	<prefix>[<timestamp><badge>] <category: ><message>\n
//
// with the brackets and badge colored and every color returned to default.
// w should be a buffer; the formatter hands the finished line to the real
// stream in a single write.
func Line(w io.Writer, now time.Time, opts config.Options, level entry.Level, category, message string) error {
	b := badgeFor(level)

	if opts.Prefix != "" {
		if _, err := io.WriteString(w, opts.Prefix); err != nil {
			return err
		}
	}
	bracket := ansi.Ptr(bracketColor)
	if err := ansi.WriteColored(w, "[", bracket, nil); err != nil {
		return err
	}

	if opts.UseUTC {
		now = now.UTC()
	} else {
		now = now.Local()
	}
	if _, err := io.WriteString(w, now.Format(config.Layout(opts.TimestampFormat))); err != nil {
		return err
	}

	if err := ansi.WriteColored(w, b.text, ansi.Ptr(b.fg), ansi.Ptr(b.bg)); err != nil {
		return err
	}
	if err := ansi.WriteColored(w, "]", bracket, nil); err != nil {
		return err
	}

	tail := " "
	if opts.ShowCategory && category != "" {
		tail += category + ": "
	}
	_, err := io.WriteString(w, tail+message+"\n")
	return err
}
