package theme

import (
	"strings"

	"github.com/five82/tinct/internal/ansi"
)

// Role names the reason a span of text is colored.
type Role uint8

const (
	Text Role = iota
	SecondaryText
	TertiaryText
	Invalid
	Null
	Name
	String
	Number
	Boolean
	Scalar
	DateTime   // optional, falls back to Scalar
	Duration   // optional, falls back to Scalar
	Identifier // optional, falls back to Scalar
	LevelTrace
	LevelDebug
	LevelInformation
	LevelWarning
	LevelError
	LevelCritical
	roleCount
)

var roleNames = [roleCount]string{
	"Text", "SecondaryText", "TertiaryText", "Invalid", "Null", "Name", "String", "Number",
	"Boolean", "Scalar", "DateTime", "Duration", "Identifier", "LevelTrace", "LevelDebug",
	"LevelInformation", "LevelWarning", "LevelError", "LevelCritical",
}

func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return "Role(?)"
}

// Roles returns every role in declaration order.
func Roles() []Role {
	out := make([]Role, 0, roleCount)
	for r := Text; r < roleCount; r++ {
		out = append(out, r)
	}
	return out
}

// Theme maps style roles to ANSI sequences. A missing or empty entry means
// the role is rendered without escape codes.
type Theme struct {
	Name   string
	Styles map[Role]string
}

// Code returns the sequence for r. Optional roles the theme leaves empty
// resolve to Scalar.
func (t Theme) Code(r Role) string {
	if code := t.Styles[r]; code != "" {
		return code
	}
	switch r {
	case DateTime, Duration, Identifier:
		return t.Styles[Scalar]
	}
	return ""
}

// Open returns the sequence that starts a span of role r.
func (t Theme) Open(r Role) string {
	return t.Code(r)
}

// Close returns the sequence that ends a span of role r, or "" when the role
// opened nothing.
func (t Theme) Close(r Role) string {
	if t.Code(r) == "" {
		return ""
	}
	return ansi.Reset
}

// Wrap colors text with role r.
func (t Theme) Wrap(text string, r Role) string {
	code := t.Code(r)
	if code == "" {
		return text
	}
	return code + text + ansi.Reset
}

// Defines reports whether the theme carries its own sequence for r.
func (t Theme) Defines(r Role) bool {
	return t.Styles[r] != ""
}

const defaultName = "Code"

var themes = map[string]Theme{
	"Code":      codeTheme(),
	"Literate":  literateTheme(),
	"Grayscale": grayscaleTheme(),
	"Sixteen":   sixteenTheme(),
	"None":      {Name: "None", Styles: map[Role]string{}},
}

var themeOrder = []string{"Code", "Literate", "Grayscale", "Sixteen", "None"}

// Default returns the theme used when none is configured.
func Default() Theme {
	return themes[defaultName]
}

// Get returns a theme by name, case-insensitively, falling back to Default.
func Get(name string) Theme {
	t, ok := Lookup(name)
	if !ok {
		return Default()
	}
	return t
}

// Lookup returns the theme with the given name, if any.
func Lookup(name string) (Theme, bool) {
	name = strings.TrimSpace(name)
	for _, n := range themeOrder {
		if strings.EqualFold(n, name) {
			return themes[n], true
		}
	}
	return Theme{}, false
}

// Next returns the theme name after current in the cycle.
func Next(current string) string {
	for i, name := range themeOrder {
		if strings.EqualFold(name, current) {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// Names returns available theme names in display order.
func Names() []string {
	out := make([]string, len(themeOrder))
	copy(out, themeOrder)
	return out
}

func codeTheme() Theme {
	// 256-color palette, tuned for dark backgrounds.
	return Theme{
		Name: "Code",
		Styles: map[Role]string{
			Text:             "\x1b[38;5;0253m",
			SecondaryText:    "\x1b[38;5;0246m",
			TertiaryText:     "\x1b[38;5;0242m",
			Invalid:          "\x1b[33;1m",
			Null:             "\x1b[38;5;0038m",
			Name:             "\x1b[38;5;0081m",
			String:           "\x1b[38;5;0216m",
			Number:           "\x1b[38;5;151m",
			Boolean:          "\x1b[38;5;0038m",
			Scalar:           "\x1b[38;5;0079m",
			LevelTrace:       "\x1b[37m",
			LevelDebug:       "\x1b[37m",
			LevelInformation: "\x1b[37;1m",
			LevelWarning:     "\x1b[38;5;0229m",
			LevelError:       "\x1b[38;5;0197m\x1b[48;5;0238m",
			LevelCritical:    "\x1b[38;5;0197m\x1b[48;5;0238m",
		},
	}
}

func literateTheme() Theme {
	return Theme{
		Name: "Literate",
		Styles: map[Role]string{
			Text:             "\x1b[37m",
			SecondaryText:    "\x1b[37m",
			TertiaryText:     "\x1b[30;1m",
			Invalid:          "\x1b[33m",
			Null:             "\x1b[34m",
			Name:             "\x1b[37m",
			String:           "\x1b[36m",
			Number:           "\x1b[35m",
			Boolean:          "\x1b[34m",
			Scalar:           "\x1b[32m",
			LevelTrace:       "\x1b[37m",
			LevelDebug:       "\x1b[37m",
			LevelInformation: "\x1b[37;1m",
			LevelWarning:     "\x1b[33;1m",
			LevelError:       "\x1b[31;1m",
			LevelCritical:    "\x1b[31;1m",
		},
	}
}

func grayscaleTheme() Theme {
	return Theme{
		Name: "Grayscale",
		Styles: map[Role]string{
			Text:             "\x1b[37;1m",
			SecondaryText:    "\x1b[37m",
			TertiaryText:     "\x1b[30;1m",
			Invalid:          "\x1b[37;1m\x1b[47m",
			Null:             "\x1b[1m\x1b[37m",
			Name:             "\x1b[37m",
			String:           "\x1b[1m\x1b[37m",
			Number:           "\x1b[1m\x1b[37m",
			Boolean:          "\x1b[1m\x1b[37m",
			Scalar:           "\x1b[1m\x1b[37m",
			LevelTrace:       "\x1b[30;1m",
			LevelDebug:       "\x1b[30;1m",
			LevelInformation: "\x1b[37;1m",
			LevelWarning:     "\x1b[37;1m\x1b[47m",
			LevelError:       "\x1b[30m\x1b[47m",
			LevelCritical:    "\x1b[30m\x1b[47m",
		},
	}
}

func sixteenTheme() Theme {
	// Built from the console palette; the only built-in defining the
	// optional date/duration/identifier roles.
	fg := ansi.ForegroundCode
	return Theme{
		Name: "Sixteen",
		Styles: map[Role]string{
			Text:             fg(ansi.Gray),
			SecondaryText:    fg(ansi.DarkGray),
			TertiaryText:     fg(ansi.DarkGray),
			Invalid:          fg(ansi.Yellow),
			Null:             fg(ansi.Blue),
			Name:             fg(ansi.Gray),
			String:           fg(ansi.Cyan),
			Number:           fg(ansi.Magenta),
			Boolean:          fg(ansi.Blue),
			Scalar:           fg(ansi.Green),
			DateTime:         fg(ansi.DarkCyan),
			Duration:         fg(ansi.DarkCyan),
			Identifier:       fg(ansi.DarkYellow),
			LevelTrace:       fg(ansi.DarkGray),
			LevelDebug:       fg(ansi.Gray),
			LevelInformation: fg(ansi.White),
			LevelWarning:     fg(ansi.Yellow),
			LevelError:       fg(ansi.Red),
			LevelCritical:    ansi.BackgroundCode(ansi.DarkRed) + fg(ansi.White),
		},
	}
}
