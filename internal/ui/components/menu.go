package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codegenius/internal/ui/theme"
)

// MenuItem is one menu entry. Hint describes the item while it is
// selected.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of items. Arrow keys (or j/k) move over disabled
// items, Enter activates, and 1-9 jump straight to an item.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

func (m Menu) Init() tea.Cmd {
	return nil
}

// Current returns the selected item, or false for an empty menu.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.run()
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.run()
			}
		}
	}
	return m, nil
}

// move selects the nearest enabled item in direction step. The selection
// stays put at either end.
func (m *Menu) move(step int) {
	for i := m.Selected + step; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) run() tea.Cmd {
	if item, ok := m.Current(); ok && !item.Disabled && item.Action != nil {
		return item.Action()
	}
	return nil
}

func (m Menu) View() string {
	sel := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	plain := lipgloss.NewStyle().Foreground(theme.Text)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			lines = append(lines, dim.Render("    "+item.Label))
		case i == m.Selected:
			lines = append(lines, sel.Render("  ▸ "+item.Label))
		default:
			lines = append(lines, plain.Render("    "+item.Label))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}
