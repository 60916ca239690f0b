package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/venusquiz/internal/ui/keys"
	"github.com/abhisek/venusquiz/internal/ui/theme"
)

// MenuItem represents a single item in a navigation menu.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a new menu with the first item highlighted.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, keys.Down):
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, keys.Confirm):
		if m.Selected < len(m.Items) && m.Items[m.Selected].Action != nil {
			return m, m.Items[m.Selected].Action()
		}
	}
	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i == m.Selected {
			b.WriteString(theme.Selected.Render("▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("  " + item.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}
