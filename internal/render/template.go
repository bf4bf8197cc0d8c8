package render

import (
	"strings"

	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/entry"
	"github.com/five82/tinct/internal/theme"
)

// Template substitutes fields into tmpl. The whole message is colored with
// the Text role; every {key} occurrence is replaced with the field's colored
// value, closing and reopening the Text span around it so the spans never
// nest. Placeholders without a field stay literal and fields without a
// placeholder are dropped.
func Template(tmpl string, fields entry.Fields, th theme.Theme, opts config.Options) string {
	open, closing := th.Open(theme.Text), th.Close(theme.Text)

	out := open + tmpl
	for _, f := range fields {
		if f.Key == entry.OriginalFormatKey {
			continue
		}
		token := "{" + f.Key + "}"
		if !strings.Contains(out, token) {
			continue
		}
		text, role := Value(f.Value, th, opts)
		out = strings.ReplaceAll(out, token, closing+Colorize(text, role, th)+open)
	}
	return out + closing
}

// Message renders the message text of e. Structured state is templated, using
// the template carried under the sentinel key when present. Any other state
// falls back to its plain textual form without color. An empty result means
// there is nothing to print.
func Message(e entry.Entry, th theme.Theme, opts config.Options) string {
	var msg string
	if fields, ok := e.State.(entry.Fields); ok {
		tmpl, found := fields.OriginalFormat()
		if !found {
			tmpl = e.Message
		}
		if tmpl != "" {
			msg = Template(tmpl, fields, th, opts)
		}
	} else {
		msg = e.Message
		if msg == "" && e.State != nil {
			msg = entry.OtherValue(e.State).String()
		}
	}
	if msg == "" {
		return ""
	}

	if opts.ShowErrors && e.Err != nil {
		msg += " " + Colorize(singleLine(e.Err.Error()), theme.Invalid, th)
	}
	return msg
}

func singleLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
