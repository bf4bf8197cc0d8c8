package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/tinct/internal/config"
	"github.com/five82/tinct/internal/theme"
)

// ErrCancelled is returned by Pick when the user leaves without choosing.
var ErrCancelled = errors.New("theme selection cancelled")

// Model is the picker state for Bubble Tea.
type Model struct {
	names   []string
	cursor  int
	current string
	opts    config.Options

	keys   keyMap
	styles styles
	width  int
	height int

	chosen    string
	cancelled bool
}

// NewModel returns a picker positioned on current.
func NewModel(current string, opts config.Options) Model {
	names := theme.Names()
	cursor := 0
	if th, ok := theme.Lookup(current); ok {
		for i, n := range names {
			if n == th.Name {
				cursor = i
			}
		}
		current = th.Name
	}
	return Model{
		names:   names,
		cursor:  cursor,
		current: current,
		opts:    opts,
		keys:    defaultKeyMap(),
		styles:  defaultChrome().styles(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.cancelled = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Select):
			m.chosen = m.names[m.cursor]
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.names)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Top):
			m.cursor = 0
		case key.Matches(msg, m.keys.Bottom):
			m.cursor = len(m.names) - 1
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var list strings.Builder
	list.WriteString(m.styles.Title.Render("Themes"))
	list.WriteString("\n\n")
	for i, name := range m.names {
		label := name
		if name == m.current {
			label += m.styles.Current.Render(" (current)")
		}
		if i == m.cursor {
			list.WriteString(m.styles.Selected.Render(label))
		} else {
			list.WriteString(m.styles.Item.Render(label))
		}
		list.WriteString("\n")
	}

	left := m.styles.PanelFocus.Render(strings.TrimSuffix(list.String(), "\n"))
	right := Preview(theme.Get(m.Highlighted()), m.opts)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.keys.helpLine(m.styles))
}

// Highlighted returns the theme name under the cursor.
func (m Model) Highlighted() string {
	return m.names[m.cursor]
}

// Chosen returns the selected theme, or "" if none was selected.
func (m Model) Chosen() string {
	return m.chosen
}

// Pick runs the picker and returns the chosen theme name. It returns
// ErrCancelled when the user quits without choosing.
func Pick(ctx context.Context, current string, opts config.Options) (string, error) {
	p := tea.NewProgram(NewModel(current, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(Model)
	if !ok || m.cancelled || m.chosen == "" {
		return "", ErrCancelled
	}
	return m.chosen, nil
}
