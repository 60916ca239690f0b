// Package landing is the first screen: brand, tagline and the start button.
package landing

import (
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/router"
	"github.com/abhisek/venusquiz/internal/screen"
	"github.com/abhisek/venusquiz/internal/screens/history"
	"github.com/abhisek/venusquiz/internal/ui/components"
	"github.com/abhisek/venusquiz/internal/ui/keys"
	"github.com/abhisek/venusquiz/internal/ui/layout"
	"github.com/abhisek/venusquiz/internal/ui/theme"
)

const spinInterval = 120 * time.Millisecond

var spinFrames = []string{"◐", "◓", "◑", "◒"}

type spinMsg time.Time

// Screen is the landing screen.
type Screen struct {
	env      screen.Env
	state    quiz.Landing
	frame    int
	spinning bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the landing screen for state.
func New(env screen.Env, state quiz.Landing) *Screen {
	return &Screen{env: env, state: state}
}

func (s *Screen) Init() tea.Cmd {
	return s.spin()
}

func (s *Screen) Title() string {
	return ""
}

func (s *Screen) KeyHints() []layout.KeyHint {
	bindings := []key.Binding{keys.Confirm, keys.Quit}
	if s.env.History != nil {
		bindings = []key.Binding{keys.Confirm, keys.History, keys.Quit}
	}
	hints := keys.Hints(bindings...)
	hints[0].Description = s.env.Copy.Start
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		if st, ok := msg.State.(quiz.Landing); ok {
			s.state = st
		}
		return s, s.spin()

	case spinMsg:
		s.spinning = false
		if !s.state.Generating {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinFrames)
		return s, s.spin()

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Confirm):
			if s.state.Generating {
				return s, nil
			}
			return s, screen.Do(s.env.Session.Start)
		case key.Matches(msg, keys.History):
			if s.env.History == nil {
				return s, nil
			}
			h := history.New(s.env.History)
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: h} }
		}
	}
	return s, nil
}

// spin schedules the next spinner frame while a question set is generating.
func (s *Screen) spin() tea.Cmd {
	if !s.state.Generating || s.spinning {
		return nil
	}
	s.spinning = true
	return tea.Tick(spinInterval, func(t time.Time) tea.Msg { return spinMsg(t) })
}

func (s *Screen) View(width, height int) string {
	c := s.env.Copy
	textWidth := min(width-8, 72)

	sections := []string{
		theme.Title.Width(textWidth).Render(c.Title),
		"",
		theme.Subtitle.Width(textWidth).Render(c.Tagline),
		"",
	}

	label := c.Start
	if s.state.Generating {
		label = spinFrames[s.frame] + " " + c.Generating
	}
	sections = append(sections, components.NewButton(label, !s.state.Generating, nil).View())

	if s.state.Err != nil {
		sections = append(sections, "", theme.Alert.Width(textWidth).Render(alertText(c.GenerationFailed, s.state.Err)))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return layout.Center(content, width, height)
}

// alertText is the user-facing failure message followed by the cause, if any.
func alertText(message string, err error) string {
	var ge *quiz.GenerationError
	if !errors.As(err, &ge) || ge.Err == nil {
		return message
	}
	return strings.Join([]string{message, theme.Muted.Render(ge.Err.Error())}, "\n")
}
