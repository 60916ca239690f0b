// Package result shows the score and evaluation of a finished attempt.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/screen"
	"github.com/abhisek/venusquiz/internal/ui/components"
	"github.com/abhisek/venusquiz/internal/ui/keys"
	"github.com/abhisek/venusquiz/internal/ui/layout"
	"github.com/abhisek/venusquiz/internal/ui/theme"
)

// Screen shows the result. It stays interactive while the evaluation is pending.
type Screen struct {
	env   screen.Env
	state quiz.Result
	menu  components.Menu
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates the result screen for state.
func New(env screen.Env, state quiz.Result) *Screen {
	s := &Screen{env: env, state: state}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: env.Copy.Review, Action: s.review},
		{Label: env.Copy.Home, Action: s.home},
	})
	return s
}

func (s *Screen) review() tea.Cmd { return screen.Do(s.env.Session.OpenReview) }
func (s *Screen) home() tea.Cmd   { return screen.Do(s.env.Session.Reset) }

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.env.Copy.ResultTitle
}

func (s *Screen) Status() string {
	return fmt.Sprintf("%d/%d", s.state.Result.Score, s.state.Result.TotalQuestions)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Up, keys.Confirm, keys.Review, keys.Home, keys.Quit)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		if st, ok := msg.State.(quiz.Result); ok {
			s.state = st
		}
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Review):
			return s, s.review()
		case key.Matches(msg, keys.Home):
			return s, s.home()
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	c := s.env.Copy
	r := s.state.Result
	textWidth := min(width-8, 72)

	var b strings.Builder
	b.WriteString(theme.Title.Width(textWidth).Render(c.ResultTitle))
	b.WriteString("\n\n")

	score := fmt.Sprintf("%s %d / %d", c.ScoreLabel, r.Score, r.TotalQuestions)
	b.WriteString(theme.Label.Render(score))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", r.Percent(), true, textWidth).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render(c.EvaluationTitle))
	b.WriteString("\n")
	if s.state.Evaluation.Pending {
		b.WriteString(theme.Hint.Width(textWidth).Render(c.EvaluationPending))
	} else {
		b.WriteString(theme.Body.Width(textWidth).Render(s.state.Evaluation.Text))
	}
	b.WriteString("\n\n")
	b.WriteString(s.menu.View())

	card := theme.Card.Render(b.String())
	return layout.Center(lipgloss.NewStyle().MaxWidth(width).Render(card), width, height)
}
