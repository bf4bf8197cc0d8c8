package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// chrome holds the picker's own colors. The colors of the sample log lines
// come from the tinct theme being previewed, never from here.
type chrome struct {
	Border        string
	BorderFocus   string
	Title         string
	Text          string
	Muted         string
	SelectionBg   string
	SelectionText string
}

func defaultChrome() chrome {
	return chrome{
		Border:        "#39506d",
		BorderFocus:   "#719cd6",
		Title:         "#dbc074",
		Text:          "#cdcecf",
		Muted:         "#738091",
		SelectionBg:   "#2b3b51",
		SelectionText: "#e4e4e5",
	}
}

// styles contains pre-built lipgloss styles for the chrome.
type styles struct {
	Panel      lipgloss.Style
	PanelFocus lipgloss.Style
	Title      lipgloss.Style
	Item       lipgloss.Style
	Selected   lipgloss.Style
	Current    lipgloss.Style
	Muted      lipgloss.Style
}

func (c chrome) styles() styles {
	return styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1),

		PanelFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.BorderFocus)).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Title)).
			Bold(true),

		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Text)).
			Padding(0, 1),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(c.SelectionBg)).
			Foreground(lipgloss.Color(c.SelectionText)).
			Bold(true).
			Padding(0, 1),

		Current: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Title)),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Muted)),
	}
}
