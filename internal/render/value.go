package render

import (
	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/entry"
	"github.com/five82/tinct/internal/theme"
)

// Value returns the textual form of v and the role it is colored with. Only
// strings receive the configured prefix and suffix decoration.
func Value(v entry.Value, th theme.Theme, opts config.Options) (string, theme.Role) {
	switch v.Kind() {
	case entry.KindNull:
		return v.String(), theme.Null
	case entry.KindBool:
		return v.String(), theme.Boolean
	case entry.KindInt, entry.KindUint, entry.KindFloat, entry.KindDecimal:
		return v.String(), theme.Number
	case entry.KindTime:
		return v.String(), theme.DateTime
	case entry.KindDuration:
		return v.String(), theme.Duration
	case entry.KindGUID:
		return v.String(), theme.Identifier
	case entry.KindString:
		return opts.StringPrefix + v.Str() + opts.StringSuffix, theme.String
	default:
		// No textual form renders as the empty string.
		return v.String(), theme.Text
	}
}

// Colorize wraps text in the theme's sequence for role. Roles the theme leaves
// empty produce no escape codes at all.
func Colorize(text string, role theme.Role, th theme.Theme) string {
	return th.Wrap(text, role)
}
