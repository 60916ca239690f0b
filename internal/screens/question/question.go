// Package question renders the question being answered.
package question

import (
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/screen"
	"github.com/abhisek/venusquiz/internal/ui/components"
	"github.com/abhisek/venusquiz/internal/ui/keys"
	"github.com/abhisek/venusquiz/internal/ui/layout"
	"github.com/abhisek/venusquiz/internal/ui/theme"
)

// Screen shows one question at a time.
type Screen struct {
	env    screen.Env
	state  quiz.Quiz
	choice components.MultiChoice
	errMsg string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New creates the quiz screen for state.
func New(env screen.Env, state quiz.Quiz) *Screen {
	s := &Screen{env: env}
	s.load(state)
	return s
}

func (s *Screen) load(state quiz.Quiz) {
	s.state = state
	if state.Index < len(state.Questions) {
		opts := state.Current().Options
		s.choice = components.NewMultiChoice(opts[:])
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return fmt.Sprintf(s.env.Copy.Progress, s.state.Index+1, len(s.state.Questions))
}

func (s *Screen) Status() string {
	if s.state.Index >= len(s.state.Questions) {
		return ""
	}
	return s.env.Labels.Label(s.state.Current().Difficulty)
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return keys.Hints(keys.Up, keys.Options[0], keys.Confirm, keys.Quit)
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.StateMsg:
		st, ok := msg.State.(quiz.Quiz)
		if ok && (st.Index != s.state.Index || st.AttemptID != s.state.AttemptID) {
			s.load(st)
			s.errMsg = ""
		}
		return s, nil

	case components.ChoiceMsg:
		return s, s.answer(msg.Index)

	case screen.ActionErrMsg:
		// A repeated Enter races the screen refresh; the machine rejects it
		// because the question was already answered.
		if !errors.Is(msg.Err, quiz.ErrOutOfOrderAnswer) {
			s.errMsg = msg.Err.Error()
		}
		return s, nil

	case tea.KeyPressMsg:
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		return s, cmd
	}
	return s, nil
}

// answer submits option for the question on screen, identified by id so a
// stale submission can never land on the next question.
func (s *Screen) answer(option int) tea.Cmd {
	ev := quiz.AnswerSubmitted{QuestionID: s.state.Current().ID, Option: option}
	return screen.Do(func() error { return s.env.Session.Dispatch(ev) })
}

func (s *Screen) View(width, height int) string {
	if s.state.Index >= len(s.state.Questions) {
		return ""
	}
	question := s.state.Current()
	textWidth := min(width-8, 90)

	var b strings.Builder
	bar := components.NewStepBar("", len(s.state.Responses), len(s.state.Questions), textWidth)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	level := theme.DifficultyColor(int(question.Difficulty)).Bold(true)
	b.WriteString(level.Render("● " + s.env.Labels.Label(question.Difficulty)))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Width(textWidth).Render(question.Text))
	b.WriteString("\n\n")
	b.WriteString(s.choice.View(textWidth))

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := lipgloss.NewStyle().Padding(1, 4).Render(b.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
