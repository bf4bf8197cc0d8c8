package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/entry"
	"github.com/five82/tinct/internal/formatter"
	"github.com/five82/tinct/internal/theme"
)

// sampleTime is the clock used for sample lines so previews are stable.
var sampleTime = time.Date(2025, 10, 19, 9, 41, 7, 0, time.Local)

// Samples returns entries exercising every value kind and severity.
func Samples() []entry.Entry {
	orderID := uuid.MustParse("8d3f2c9e-1b7a-4e55-9f0d-6c2a1e4b7d30")
	crit := entry.Templated(entry.Critical, "Payment processor {name} unreachable after {attempts} attempts", "stripe", 5)
	crit.Err = errors.New("dial tcp 10.0.4.12:443: connect: connection refused")
	return []entry.Entry{
		entry.Templated(entry.Trace, "Entering {method} with {args}", "Checkout", nil),
		entry.Templated(entry.Debug, "Cache hit ratio {ratio} over {window}", 0.93, 5*time.Minute),
		entry.Templated(entry.Information, "This is an information message: {string1} and {string2}", "Peter", "Emma"),
		entry.Templated(entry.Information, "Order {id} paid {amount} at {when}", orderID, decimal.RequireFromString("129.90"), sampleTime),
		entry.Templated(entry.Warning, "Retry {n} of {max}, backoff enabled: {backoff}", 2, 3, true),
		entry.Templated(entry.Error, "Request {path} failed with {status}", "/api/orders", 502),
		crit,
	}
}

// SampleLines renders Samples with th, keeping every other option from opts.
// Lines carry their ANSI sequences and no trailing newline.
func SampleLines(th theme.Theme, opts config.Options) []string {
	opts.Theme = th.Name
	opts.ShowErrors = true
	f := formatter.New(config.NewStore(opts), formatter.WithClock(func() time.Time { return sampleTime }))
	defer f.Close()

	var lines []string
	for _, e := range Samples() {
		var b strings.Builder
		if err := f.Write(e, &b); err != nil {
			continue
		}
		if s := strings.TrimSuffix(b.String(), "\n"); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// Preview renders a bordered panel showing each style role of th in its own
// colors, followed by sample log lines.
func Preview(th theme.Theme, opts config.Options) string {
	st := defaultChrome().styles()

	var roles strings.Builder
	for _, r := range theme.Roles() {
		marker := " "
		if !th.Defines(r) {
			marker = st.Muted.Render("*")
		}
		fmt.Fprintf(&roles, "%s%-17s %s\n", marker, r.String(), th.Wrap(roleSample(r), r))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		st.Title.Render(th.Name),
		"",
		strings.TrimSuffix(roles.String(), "\n"),
		st.Muted.Render("* inherited or uncolored"),
		"",
		strings.Join(SampleLines(th, opts), "\n"),
	)
	return st.Panel.Render(body)
}

func roleSample(r theme.Role) string {
	switch r {
	case theme.Null:
		return "null"
	case theme.String:
		return `"text"`
	case theme.Number:
		return "42"
	case theme.Boolean:
		return "true"
	case theme.DateTime:
		return sampleTime.Format(time.RFC3339)
	case theme.Duration:
		return "1m30s"
	case theme.Identifier:
		return "8d3f2c9e-1b7a-4e55-9f0d-6c2a1e4b7d30"
	default:
		return "The quick brown fox"
	}
}
