package session

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/store"
)

var testFallbacks = quiz.Fallbacks{Empty: "empty fallback", Failure: "failure fallback"}

// fakeContent is a content.Provider whose calls can be held open with gates.
type fakeContent struct {
	mu        sync.Mutex
	questions []quiz.Question
	genErr    error
	genGate   chan struct{}
	evalText  string
	evalErr   error
	evalGate  chan struct{}
	generated int
	evaluated int
}

func (f *fakeContent) GenerateQuestionSet(ctx context.Context) ([]quiz.Question, error) {
	f.mu.Lock()
	f.generated++
	gate, questions, err := f.genGate, f.questions, f.genErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (f *fakeContent) Evaluate(ctx context.Context, _ quiz.QuizResult) (string, error) {
	f.mu.Lock()
	f.evaluated++
	gate, text, err := f.evalGate, f.evalText, f.evalErr
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return text, err
}

func question(id, correct int) quiz.Question {
	return quiz.Question{
		ID:            id,
		Difficulty:    quiz.DifficultyMedium,
		Text:          "question",
		Options:       [4]string{"a", "b", "c", "d"},
		CorrectAnswer: correct,
		Explanation:   "because",
	}
}

// steppingClock advances one minute per reading.
func steppingClock() func() time.Time {
	t := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func newController(t *testing.T, fc *fakeContent, opts ...Option) *Controller {
	t.Helper()
	c := New(quiz.NewMachine(testFallbacks), fc, opts...)
	t.Cleanup(c.Close)
	return c
}

func mustDo(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestController_FullAttempt(t *testing.T) {
	fc := &fakeContent{
		questions: []quiz.Question{question(1, 1), question(2, 3)},
		evalText:  "  solid judgement  ",
	}
	var summaries []Summary
	c := newController(t, fc,
		WithClock(steppingClock()),
		OnAttemptFinished(func(s Summary) { summaries = append(summaries, s) }),
	)

	mustDo(t, c.Start())
	c.Wait()
	if _, ok := c.State().(quiz.Quiz); !ok {
		t.Fatalf("expected quiz state, got %T", c.State())
	}

	mustDo(t, c.Answer(1))
	mustDo(t, c.Answer(2))
	res, ok := c.State().(quiz.Result)
	if !ok {
		t.Fatalf("expected result state, got %T", c.State())
	}
	if res.Result.Score != 1 || res.Result.TotalQuestions != 2 {
		t.Fatalf("score = %d/%d, want 1/2", res.Result.Score, res.Result.TotalQuestions)
	}

	c.Wait()
	res = c.State().(quiz.Result)
	if res.Evaluation.Text != "solid judgement" || res.Evaluation.Pending {
		t.Fatalf("unexpected evaluation %+v", res.Evaluation)
	}

	if len(summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(summaries))
	}
	if s := summaries[0]; s.AttemptID != res.AttemptID || s.Result.Score != 1 || s.Duration != 3*time.Minute {
		t.Fatalf("unexpected summary %+v", s)
	}

	log := c.Transitions()
	var names []string
	for _, tr := range log {
		names = append(names, tr.Event.EventName())
	}
	want := []string{"start", "questions-generated", "answer", "answer", "evaluation-ready"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("transitions = %v, want %v", names, want)
	}

	replayed, err := Replay(testFallbacks, log)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if !reflect.DeepEqual(replayed, c.State()) {
		t.Fatalf("replayed state differs:\n got %+v\nwant %+v", replayed, c.State())
	}
}

func TestController_GenerationInFlight(t *testing.T) {
	gate := make(chan struct{})
	fc := &fakeContent{questions: []quiz.Question{question(1, 0)}, genGate: gate}
	c := newController(t, fc)

	mustDo(t, c.Start())
	if err := c.Start(); !errors.Is(err, quiz.ErrGenerationInFlight) {
		t.Fatalf("expected ErrGenerationInFlight, got %v", err)
	}

	close(gate)
	c.Wait()
	if _, ok := c.State().(quiz.Quiz); !ok {
		t.Fatalf("expected quiz state, got %T", c.State())
	}
	if fc.generated != 1 {
		t.Fatalf("expected 1 generation, got %d", fc.generated)
	}
}

func TestController_GenerationFailureThenRetry(t *testing.T) {
	fc := &fakeContent{genErr: errors.New("provider down")}
	c := newController(t, fc)

	mustDo(t, c.Start())
	c.Wait()
	landing, ok := c.State().(quiz.Landing)
	if !ok {
		t.Fatalf("expected landing, got %T", c.State())
	}
	var ge *quiz.GenerationError
	if !errors.As(landing.Err, &ge) || landing.Generating {
		t.Fatalf("expected idle landing with GenerationError, got %+v", landing)
	}

	fc.mu.Lock()
	fc.genErr = nil
	fc.questions = []quiz.Question{question(1, 0)}
	fc.mu.Unlock()

	mustDo(t, c.Start())
	c.Wait()
	if q, ok := c.State().(quiz.Quiz); !ok || len(q.Responses) != 0 {
		t.Fatalf("expected fresh quiz, got %+v", c.State())
	}
}

func TestController_EvaluationFailureDuringReview(t *testing.T) {
	gate := make(chan struct{})
	fc := &fakeContent{
		questions: []quiz.Question{question(1, 0)},
		evalErr:   errors.New("quota"),
		evalGate:  gate,
	}
	c := newController(t, fc)

	mustDo(t, c.Start())
	c.Wait()
	mustDo(t, c.Answer(0))
	mustDo(t, c.OpenReview())

	close(gate)
	c.Wait()
	review, ok := c.State().(quiz.Review)
	if !ok {
		t.Fatalf("expected review, got %T", c.State())
	}
	if review.Evaluation.Text != "failure fallback" || !review.Evaluation.Fallback {
		t.Fatalf("unexpected evaluation %+v", review.Evaluation)
	}

	mustDo(t, c.CloseReview())
	if res, ok := c.State().(quiz.Result); !ok || res.Result.Score != 1 {
		t.Fatalf("expected result with score 1, got %+v", c.State())
	}
}

func TestController_ResetBeforeEvaluation(t *testing.T) {
	gate := make(chan struct{})
	fc := &fakeContent{
		questions: []quiz.Question{question(1, 0)},
		evalText:  "late",
		evalGate:  gate,
	}
	var summaries []Summary
	c := newController(t, fc, OnAttemptFinished(func(s Summary) { summaries = append(summaries, s) }))

	mustDo(t, c.Start())
	c.Wait()
	mustDo(t, c.Answer(3))
	mustDo(t, c.Reset())

	close(gate)
	c.Wait()
	if !reflect.DeepEqual(c.State(), quiz.Initial()) {
		t.Fatalf("late evaluation changed state: %+v", c.State())
	}
	if len(summaries) != 1 || !summaries[0].Evaluation.Pending || summaries[0].Result.Score != 0 {
		t.Fatalf("expected one unevaluated summary, got %+v", summaries)
	}
}

func TestController_RejectedEventsAreNotLogged(t *testing.T) {
	c := newController(t, &fakeContent{})

	var illegal *quiz.IllegalTransitionError
	if err := c.OpenReview(); !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
	if err := c.Answer(0); !errors.As(err, &illegal) {
		t.Fatalf("expected IllegalTransitionError, got %v", err)
	}
	if n := len(c.Transitions()); n != 0 {
		t.Fatalf("expected empty log, got %d entries", n)
	}
}

func TestController_CloseCancelsEffects(t *testing.T) {
	fc := &fakeContent{genGate: make(chan struct{})}
	c := New(quiz.NewMachine(testFallbacks), fc)

	mustDo(t, c.Start())
	done := make(chan struct{})
	go func() {
		c.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not cancel the running generation")
	}

	if err := c.Start(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	for range c.Changes() {
	}
	c.Close()
}

func TestController_ChangesSignal(t *testing.T) {
	c := newController(t, &fakeContent{questions: []quiz.Question{question(1, 0)}})

	mustDo(t, c.Start())
	select {
	case <-c.Changes():
	default:
		t.Fatal("expected a change signal")
	}
}

func TestRecordTo(t *testing.T) {
	s, err := store.Open(store.MemoryDSN(uuid.NewString()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()
	repo := s.EventRepo()

	fc := &fakeContent{questions: []quiz.Question{question(1, 2), question(2, 2)}, evalText: ""}
	c := newController(t, fc, OnAttemptFinished(RecordTo(repo)))

	mustDo(t, c.Start())
	c.Wait()
	mustDo(t, c.Answer(2))
	mustDo(t, c.Answer(2))
	c.Wait()

	attempts, err := repo.QueryAttempts(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query attempts: %v", err)
	}
	if len(attempts) != 1 {
		t.Fatalf("expected 1 attempt, got %d", len(attempts))
	}
	a := attempts[0]
	if a.Score != 2 || a.TotalQuestions != 2 || a.Evaluation != "empty fallback" || !a.EvaluationFallback {
		t.Fatalf("unexpected attempt %+v", a.AttemptEventData)
	}
}
