// Package keys holds the key bindings shared by every screen.
package keys

import (
	"fmt"

	"charm.land/bubbles/v2/key"

	"github.com/abhisek/venusquiz/internal/ui/layout"
)

// Up moves the selection up.
var Up = key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Select"))

// Down moves the selection down.
var Down = key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↑↓", "Select"))

// Options selects an option directly by number or letter.
var Options = [4]key.Binding{
	key.NewBinding(key.WithKeys("1", "a", "A"), key.WithHelp("1-4", "Choose")),
	key.NewBinding(key.WithKeys("2", "b", "B"), key.WithHelp("1-4", "Choose")),
	key.NewBinding(key.WithKeys("3", "c", "C"), key.WithHelp("1-4", "Choose")),
	key.NewBinding(key.WithKeys("4", "d", "D"), key.WithHelp("1-4", "Choose")),
}

var (
	Confirm = key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Confirm"))
	Review  = key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("R", "Review"))
	Back    = key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back"))
	Home    = key.NewBinding(key.WithKeys("h", "H"), key.WithHelp("H", "Home"))
	History = key.NewBinding(key.WithKeys("l", "L"), key.WithHelp("L", "History"))
	Quit    = key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "Quit"))
)

// Hints converts bindings to footer hints, collapsing repeated help keys.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	seen := make(map[string]bool)
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" || seen[h.Key] || !b.Enabled() {
			continue
		}
		seen[h.Key] = true
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

// OptionIndex returns the option selected by msg, or -1.
func OptionIndex(msg fmt.Stringer) int {
	for i, b := range Options {
		if key.Matches(msg, b) {
			return i
		}
	}
	return -1
}
