// Package review lists every question of an attempt with the chosen and
// correct options and the explanation.
package review

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

// Screen is a scrollable review of the attempt.
type Screen struct {
	env    screen.Env
	state  quiz.Review
	offset int
	lines  int // rendered line count of the last View
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the review screen for state.
func New(env screen.Env, state quiz.Review) *Screen {
	return &Screen{env: env, state: state}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return s.env.Copy.ReviewTitle
}

func (s *Screen) KeyHints() []layout.KeyHint {
	hints := keys.Hints(keys.Up, keys.Back, keys.Home, keys.Quit)
	hints[0].Description = "Scroll"
	return hints
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		if st, ok := msg.State.(quiz.Review); ok {
			s.state = st
		}
		return s, nil

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.offset > 0 {
				s.offset--
			}
		case key.Matches(msg, keys.Down):
			if s.offset < s.lines-1 {
				s.offset++
			}
		case key.Matches(msg, keys.Back):
			return s, screen.Do(s.env.Session.CloseReview)
		case key.Matches(msg, keys.Home):
			return s, screen.Do(s.env.Session.Reset)
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	textWidth := min(width-8, 90)
	body := s.render(textWidth)

	lines := strings.Split(body, "\n")
	s.lines = len(lines)
	start := min(s.offset, max(len(lines)-1, 0))
	end := min(start+height, len(lines))

	return lipgloss.NewStyle().Padding(0, 4).Render(strings.Join(lines[start:end], "\n"))
}

// render lays out every question in order.
func (s *Screen) render(width int) string {
	c := s.env.Copy
	var b strings.Builder
	for i, question := range s.state.Questions {
		chosen := -1
		if resp, ok := s.state.Result.Result.ResponseFor(question.ID); ok {
			chosen = resp.SelectedOption
		}

		level := theme.DifficultyColor(int(question.Difficulty))
		head := fmt.Sprintf("%d. %s", i+1, question.Text)
		b.WriteString(theme.Body.Bold(true).Width(width).Render(head))
		b.WriteString("\n")
		b.WriteString(level.Render(s.env.Labels.Label(question.Difficulty)))
		b.WriteString("\n")

		opts := question.Options
		b.WriteString(components.NewRevealedChoice(opts[:], question.CorrectAnswer, chosen).View(width))

		tags := []string{theme.Tag.Render(c.CorrectTag + " " + components.OptionLabels[question.CorrectAnswer])}
		if chosen >= 0 && chosen != question.CorrectAnswer {
			tags = append(tags, theme.Incorrect.Render(c.ChosenTag+" "+components.OptionLabels[chosen]))
		}
		b.WriteString(strings.Join(tags, "  "))
		b.WriteString("\n")

		b.WriteString(theme.Hint.Width(width).Render(c.ExplanationLabel + " " + question.Explanation))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
