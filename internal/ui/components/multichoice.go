package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/venusquiz/internal/ui/keys"
	"github.com/abhisek/venusquiz/internal/ui/theme"
)

// OptionLabels are the letters shown in front of each option.
var OptionLabels = [4]string{"A", "B", "C", "D"}

// ChoiceMsg is emitted when the user confirms the highlighted option.
type ChoiceMsg struct {
	Index int
}

// MultiChoice is a four-option selector. Once Revealed it is read-only and
// marks the correct option and the one the user chose.
type MultiChoice struct {
	Options  []string
	Selected int

	Revealed bool
	Correct  int
	Chosen   int
}

// NewMultiChoice creates a selector with the first option highlighted.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		Correct: -1,
		Chosen:  -1,
	}
}

// NewRevealedChoice creates a read-only selector showing the outcome of an answer.
func NewRevealedChoice(options []string, correct, chosen int) MultiChoice {
	return MultiChoice{
		Options:  options,
		Selected: chosen,
		Revealed: true,
		Correct:  correct,
		Chosen:   chosen,
	}
}

// Update handles arrow keys, direct option keys and Enter.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}
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
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, keys.Confirm):
		idx := m.Selected
		return m, func() tea.Msg { return ChoiceMsg{Index: idx} }
	default:
		if i := keys.OptionIndex(kmsg); i >= 0 && i < len(m.Options) {
			m.Selected = i
		}
	}
	return m, nil
}

// View renders the options, one per line, wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, OptionLabels[i], opt)

		style := theme.Unselected
		switch {
		case m.Revealed && i == m.Correct:
			style = theme.Correct
		case m.Revealed && i == m.Chosen:
			style = theme.Incorrect
		case m.Revealed:
			style = theme.Muted
		case i == m.Selected:
			style = theme.Selected
		}
		if width > 0 {
			style = style.Width(width)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
