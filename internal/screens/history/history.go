// Package history lists finished attempts recorded in the store.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/venusquiz/internal/screen"
	"github.com/abhisek/venusquiz/internal/store"
	"github.com/abhisek/venusquiz/internal/ui/keys"
	"github.com/abhisek/venusquiz/internal/ui/layout"
	"github.com/abhisek/venusquiz/internal/ui/theme"
)

const pageSize = 50

type attemptsLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

// Screen displays past attempts, newest first.
type Screen struct {
	repo     store.EventRepo
	attempts []store.AttemptRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates a history screen reading from repo.
func New(repo store.EventRepo) *Screen {
	return &Screen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *Screen) Init() tea.Cmd {
	return func() tea.Msg {
		attempts, err := s.repo.QueryAttempts(context.Background(), store.QueryOpts{Limit: pageSize})
		return attemptsLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *Screen) Title() string {
	return "History"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Evaluation"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if s.selected > 0 {
				s.selected--
			}
		case key.Matches(msg, keys.Down):
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case key.Matches(msg, keys.Confirm):
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return centered.Foreground(theme.Error).Render("\n\nError: " + s.errMsg)
	case !s.loaded:
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	case len(s.attempts) == 0:
		return centered.Foreground(theme.TextDim).Italic(true).Render("\n\n  No finished attempts yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, a := range s.attempts {
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "> "
			style = theme.Selected
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(attemptLine(prefix, a))))
		b.WriteString("\n")

		if s.expanded[i] {
			text := a.Evaluation
			if a.EvaluationFallback {
				text += "  (fallback)"
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				theme.Hint.Width(min(width-8, 72)).Render(text)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func attemptLine(prefix string, a store.AttemptRecord) string {
	var pct float64
	if a.TotalQuestions > 0 {
		pct = float64(a.Score) / float64(a.TotalQuestions) * 100
	}
	return fmt.Sprintf("%s%s  %d/%d  %3.0f%%  %d:%02d",
		prefix, a.Timestamp.Local().Format("Jan 02, 2006 15:04"),
		a.Score, a.TotalQuestions, pct, a.DurationSecs/60, a.DurationSecs%60)
}
