package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/venusquiz/internal/config"
	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/store"
	"github.com/abhisek/venusquiz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a short
// status on the right of the header.
type StatusProvider interface {
	Status() string
}

// Session is the quiz session a screen drives. *session.Controller
// implements it.
type Session interface {
	State() quiz.State
	Dispatch(ev quiz.Event) error
	Start() error
	OpenReview() error
	CloseReview() error
	Reset() error
}

// Env is shared by every screen of the quiz flow.
type Env struct {
	Session Session
	Brand   string
	Copy    config.Copy
	Labels  quiz.DifficultyLabels

	// History is nil when attempts are not recorded.
	History store.EventRepo
}

// StateMsg carries the session state after a change.
type StateMsg struct {
	State quiz.State
}

// ActionErrMsg reports a session action the machine rejected.
type ActionErrMsg struct {
	Err error
}

// Do runs a session action as a command, reporting rejections as ActionErrMsg.
func Do(action func() error) tea.Cmd {
	return func() tea.Msg {
		if err := action(); err != nil {
			return ActionErrMsg{Err: err}
		}
		return nil
	}
}
