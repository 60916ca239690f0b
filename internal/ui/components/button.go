package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/venusquiz/internal/ui/keys"
	"github.com/abhisek/venusquiz/internal/ui/theme"
)

// Button is a styled button. An inactive button renders dimmed and ignores Enter.
type Button struct {
	Label   string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a new button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// Update handles key events.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active || b.OnPress == nil {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && key.Matches(kmsg, keys.Confirm) {
		return b, b.OnPress()
	}
	return b, nil
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
