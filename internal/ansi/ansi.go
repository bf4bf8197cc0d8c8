// Package ansi maps console colors to ANSI SGR escape sequences and writes
// color-wrapped text. Sequences are emitted unconditionally; there is no
// terminal capability detection.
package ansi

import (
	"io"
	"strings"
)

// Color is one of the sixteen classic console colors.
type Color uint8

const (
	Black Color = iota
	DarkRed
	DarkGreen
	DarkYellow
	DarkBlue
	DarkMagenta
	DarkCyan
	Gray
	DarkGray
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
	colorCount
)

const (
	// Reset clears every SGR attribute. Theme spans are closed with it.
	Reset = "\x1b[0m"
	// DefaultForeground restores the default foreground and normal intensity.
	DefaultForeground = "\x1b[39m\x1b[22m"
	// DefaultBackground restores the default background.
	DefaultBackground = "\x1b[49m"
)

var colorNames = [colorCount]string{
	"Black", "DarkRed", "DarkGreen", "DarkYellow", "DarkBlue", "DarkMagenta", "DarkCyan", "Gray",
	"DarkGray", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "White",
}

func (c Color) String() string {
	if c < colorCount {
		return colorNames[c]
	}
	return "Default"
}

// ParseColor returns the color with the given name (case-insensitive).
func ParseColor(name string) (Color, bool) {
	for i, n := range colorNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Color(i), true
		}
	}
	return colorCount, false
}

// Ptr returns a pointer to c, for the optional arguments of WriteColored.
func Ptr(c Color) *Color {
	return &c
}

// ForegroundCode returns the sequence selecting c as foreground color.
// Bright colors also switch on bold. Unknown colors yield DefaultForeground.
func ForegroundCode(c Color) string {
	switch c {
	case Black:
		return "\x1b[30m"
	case DarkRed:
		return "\x1b[31m"
	case DarkGreen:
		return "\x1b[32m"
	case DarkYellow:
		return "\x1b[33m"
	case DarkBlue:
		return "\x1b[34m"
	case DarkMagenta:
		return "\x1b[35m"
	case DarkCyan:
		return "\x1b[36m"
	case Gray:
		return "\x1b[37m"
	case DarkGray:
		return "\x1b[1m\x1b[30m"
	case Red:
		return "\x1b[1m\x1b[31m"
	case Green:
		return "\x1b[1m\x1b[32m"
	case Yellow:
		return "\x1b[1m\x1b[33m"
	case Blue:
		return "\x1b[1m\x1b[34m"
	case Magenta:
		return "\x1b[1m\x1b[35m"
	case Cyan:
		return "\x1b[1m\x1b[36m"
	case White:
		return "\x1b[1m\x1b[37m"
	default:
		return DefaultForeground
	}
}

// BackgroundCode returns the sequence selecting c as background color.
// Terminals have no bright backgrounds here, so bright colors share the code
// of their dark counterpart. Unknown colors yield DefaultBackground.
func BackgroundCode(c Color) string {
	switch c {
	case Black, DarkGray:
		return "\x1b[40m"
	case DarkRed, Red:
		return "\x1b[41m"
	case DarkGreen, Green:
		return "\x1b[42m"
	case DarkYellow, Yellow:
		return "\x1b[43m"
	case DarkBlue, Blue:
		return "\x1b[44m"
	case DarkMagenta, Magenta:
		return "\x1b[45m"
	case DarkCyan, Cyan:
		return "\x1b[46m"
	case Gray, White:
		return "\x1b[47m"
	default:
		return DefaultBackground
	}
}

// WriteColored writes text wrapped in the given colors. Either color may be
// nil. Order is fixed: background, foreground, text, foreground reset,
// background reset.
func WriteColored(w io.Writer, text string, fg, bg *Color) error {
	var b strings.Builder
	b.Grow(len(text) + 32)
	if bg != nil {
		b.WriteString(BackgroundCode(*bg))
	}
	if fg != nil {
		b.WriteString(ForegroundCode(*fg))
	}
	b.WriteString(text)
	if fg != nil {
		b.WriteString(DefaultForeground)
	}
	if bg != nil {
		b.WriteString(DefaultBackground)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Strip removes CSI escape sequences from s.
func Strip(s string) string {
	if !strings.Contains(s, "\x1b[") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inEscape := false
	for i := 0; i < len(s); i++ {
		if !inEscape && s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			inEscape = true
			i++
			continue
		}
		if inEscape {
			// Final byte of a CSI sequence is in 0x40–0x7E.
			if s[i] >= 0x40 && s[i] <= 0x7e {
				inEscape = false
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
