package question

import (
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/venusquiz/internal/config"
	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/screen"
	"github.com/abhisek/venusquiz/internal/ui/components"
)

// recordingSession records dispatched events and returns err for each.
type recordingSession struct {
	events []quiz.Event
	err    error
}

func (s *recordingSession) State() quiz.State { return quiz.Initial() }
func (s *recordingSession) Dispatch(ev quiz.Event) error {
	s.events = append(s.events, ev)
	return s.err
}
func (s *recordingSession) Start() error       { return nil }
func (s *recordingSession) OpenReview() error  { return nil }
func (s *recordingSession) CloseReview() error { return nil }
func (s *recordingSession) Reset() error       { return nil }

func testState(index int) quiz.Quiz {
	qs := []quiz.Question{
		{ID: 7, Difficulty: quiz.DifficultyEasy, Text: "First?", Options: [4]string{"a1", "b1", "c1", "d1"}, CorrectAnswer: 0},
		{ID: 9, Difficulty: quiz.DifficultyHard, Text: "Second?", Options: [4]string{"a2", "b2", "c2", "d2"}, CorrectAnswer: 2},
	}
	st := quiz.Quiz{AttemptID: "att-1", Questions: qs, Index: index}
	for i := 0; i < index; i++ {
		st.Responses = append(st.Responses, quiz.UserResponse{QuestionID: qs[i].ID})
	}
	return st
}

func newTestScreen(state quiz.Quiz) (*Screen, *recordingSession) {
	sess := &recordingSession{}
	profile := config.Default()
	env := screen.Env{Session: sess, Copy: profile.UI, Labels: profile.Labels}
	return New(env, state), sess
}

func TestQuestion_TitleAndStatus(t *testing.T) {
	s, _ := newTestScreen(testState(1))
	if got := s.Title(); got != "المهمة 2 / 2" {
		t.Errorf("Title = %q", got)
	}
	if got := s.Status(); got != "صعب" {
		t.Errorf("Status = %q, want the hard label", got)
	}
}

func TestQuestion_ChoiceDispatchesQuestionID(t *testing.T) {
	s, sess := newTestScreen(testState(0))

	s.Update(tea.KeyPressMsg{Code: '3', Text: "3"})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg := cmd().(components.ChoiceMsg)

	_, cmd = s.Update(msg)
	if cmd() != nil {
		t.Fatal("expected no error message")
	}
	want := quiz.AnswerSubmitted{QuestionID: 7, Option: 2}
	if len(sess.events) != 1 || sess.events[0] != want {
		t.Fatalf("events = %#v, want %#v", sess.events, want)
	}
}

func TestQuestion_NewQuestionResetsCursor(t *testing.T) {
	s, _ := newTestScreen(testState(0))
	s.Update(tea.KeyPressMsg{Code: '4', Text: "4"})

	s.Update(screen.StateMsg{State: testState(1)})
	if s.choice.Selected != 0 {
		t.Errorf("Selected = %d, want 0 on a new question", s.choice.Selected)
	}
	if view := s.View(100, 30); !strings.Contains(view, "Second?") || !strings.Contains(view, "a2") {
		t.Errorf("view not refreshed:\n%s", view)
	}
}

func TestQuestion_StaleSubmissionIsSilent(t *testing.T) {
	s, _ := newTestScreen(testState(0))

	s.Update(screen.ActionErrMsg{Err: quiz.ErrOutOfOrderAnswer})
	if s.errMsg != "" {
		t.Errorf("out of order answer surfaced: %q", s.errMsg)
	}

	s.Update(screen.ActionErrMsg{Err: errors.New("session closed")})
	if s.errMsg != "session closed" {
		t.Errorf("errMsg = %q", s.errMsg)
	}
}
