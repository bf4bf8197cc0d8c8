package config

import "strings"

// Pattern tokens and their Go layout equivalents, longest first so that
// "yyyy" wins over "yy".
var layoutTokens = []struct{ token, layout string }{
	{"yyyy", "2006"},
	{"MMMM", "January"},
	{"dddd", "Monday"},
	{"MMM", "Jan"},
	{"ddd", "Mon"},
	{"fff", "000"},
	{"zzz", "-07:00"},
	{"yy", "06"},
	{"MM", "01"},
	{"dd", "02"},
	{"HH", "15"},
	{"hh", "03"},
	{"mm", "04"},
	{"ss", "05"},
	{"ff", "00"},
	{"tt", "PM"},
}

// Layout converts a timestamp format into a Go time layout. Pattern tokens
// such as "HH:mm:ss.fff" are translated; text inside single quotes and
// everything else is copied as is, so a plain Go layout passes through
// unchanged.
func Layout(format string) string {
	var b strings.Builder
	b.Grow(len(format) + 8)
	for i := 0; i < len(format); {
		if format[i] == '\'' {
			end := strings.IndexByte(format[i+1:], '\'')
			if end < 0 {
				b.WriteString(format[i+1:])
				break
			}
			b.WriteString(format[i+1 : i+1+end])
			i += end + 2
			continue
		}
		matched := false
		for _, tok := range layoutTokens {
			if strings.HasPrefix(format[i:], tok.token) {
				b.WriteString(tok.layout)
				i += len(tok.token)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}
