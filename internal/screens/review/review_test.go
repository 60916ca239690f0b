package review

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/venusquiz/internal/config"
	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/screen"
)

type stubSession struct {
	closed, reset int
}

func (s *stubSession) State() quiz.State         { return quiz.Initial() }
func (s *stubSession) Dispatch(quiz.Event) error { return nil }
func (s *stubSession) Start() error              { return nil }
func (s *stubSession) OpenReview() error         { return nil }
func (s *stubSession) CloseReview() error        { s.closed++; return nil }
func (s *stubSession) Reset() error              { s.reset++; return nil }

func testReview() quiz.Review {
	qs := []quiz.Question{
		{ID: 1, Text: "Spam wave?", Options: [4]string{"Slowmode", "Ban all", "Leave", "Nothing"}, CorrectAnswer: 0, Explanation: "Slow the flood."},
		{ID: 2, Difficulty: quiz.DifficultyHard, Text: "Leaked logs?", Options: [4]string{"Deny", "Rotate keys", "Blame", "Wait"}, CorrectAnswer: 1, Explanation: "Contain the leak."},
	}
	responses := []quiz.UserResponse{
		{QuestionID: 1, SelectedOption: 0, IsCorrect: true},
		{QuestionID: 2, SelectedOption: 3},
	}
	return quiz.Review{Result: quiz.Result{
		AttemptID: "att",
		Questions: qs,
		Result:    quiz.NewResult(len(qs), responses),
	}}
}

func newTestReview() (*Screen, *stubSession) {
	sess := &stubSession{}
	profile := config.Default()
	return New(screen.Env{Session: sess, Copy: profile.UI, Labels: profile.Labels}, testReview()), sess
}

func TestReview_ShowsEveryQuestion(t *testing.T) {
	s, _ := newTestReview()
	view := s.View(100, 80)
	c := config.Default().UI
	for _, want := range []string{"1. Spam wave?", "2. Leaked logs?", "Slow the flood.", "Contain the leak.", c.CorrectTag + " B", c.ChosenTag + " D"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestReview_Scroll(t *testing.T) {
	s, _ := newTestReview()
	s.View(100, 5)

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.offset != 0 {
		t.Fatalf("offset = %d, want 0", s.offset)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.offset != 2 {
		t.Fatalf("offset = %d, want 2", s.offset)
	}
	if view := s.View(100, 5); strings.Contains(view, "Spam wave?") {
		t.Error("scrolled view still shows the first line")
	}
}

func TestReview_BackAndHome(t *testing.T) {
	s, sess := newTestReview()

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	cmd()
	_, cmd = s.Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	cmd()
	if sess.closed != 1 || sess.reset != 1 {
		t.Fatalf("closed=%d reset=%d, want 1 and 1", sess.closed, sess.reset)
	}
}
