// Package app is the root Bubble Tea model of the terminal quiz.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/router"
	"github.com/abhisek/venusquiz/internal/screen"
	"github.com/abhisek/venusquiz/internal/screens/landing"
	"github.com/abhisek/venusquiz/internal/screens/question"
	"github.com/abhisek/venusquiz/internal/screens/result"
	"github.com/abhisek/venusquiz/internal/screens/review"
	"github.com/abhisek/venusquiz/internal/ui/keys"
	"github.com/abhisek/venusquiz/internal/ui/layout"
)

// changedMsg is sent after the session signalled a state change.
type changedMsg struct{}

// closedMsg is sent once the session's change channel is closed.
type closedMsg struct{}

// AppModel is the root Bubble Tea model. The screen on top of the router
// always follows the step of the session state.
type AppModel struct {
	env     screen.Env
	changes <-chan struct{}
	router  *router.Router
	step    quiz.Step
	width   int
	height  int
}

// newAppModel creates the model for the current session state.
func newAppModel(env screen.Env, changes <-chan struct{}) AppModel {
	st := env.Session.State()
	return AppModel{
		env:     env,
		changes: changes,
		router:  router.New(screenFor(env, st)),
		step:    st.Step(),
	}
}

// screenFor builds the screen that renders st.
func screenFor(env screen.Env, st quiz.State) screen.Screen {
	switch st := st.(type) {
	case quiz.Quiz:
		return question.New(env, st)
	case quiz.Result:
		return result.New(env, st)
	case quiz.Review:
		return review.New(env, st)
	case quiz.Landing:
		return landing.New(env, st)
	}
	return landing.New(env, quiz.Landing{})
}

// waitForChange blocks until the session signals a change.
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return closedMsg{}
		}
		return changedMsg{}
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), waitForChange(m.changes))
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case changedMsg:
		cmd := m.sync()
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case closedMsg:
		return m, tea.Quit

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Back) && m.router.Depth() > 1:
			return m, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// sync brings the screens in line with the session state. A new step
// replaces the flow screen and drops anything pushed on top of it.
func (m *AppModel) sync() tea.Cmd {
	st := m.env.Session.State()
	if st.Step() == m.step {
		return m.router.Update(screen.StateMsg{State: st})
	}
	m.step = st.Step()
	for m.router.Depth() > 1 {
		m.router.Pop()
	}
	return m.router.Replace(screenFor(m.env, st))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var status string
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(m.env.Brand, active.Title(), status, m.width)

	var hints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		hints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = keys.Hints(keys.Back, keys.Quit)
	}
	footer := layout.RenderFooter(hints, m.env.Copy.Footer, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program over env.Session and blocks until the
// user quits or changes is closed.
func Run(env screen.Env, changes <-chan struct{}) error {
	p := tea.NewProgram(newAppModel(env, changes))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
