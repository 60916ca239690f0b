// Package session runs one quiz session: it owns the current quiz.State,
// applies events through a quiz.Machine and executes the side effects the
// machine asks for.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/abhisek/venusquiz/internal/content"
	"github.com/abhisek/venusquiz/internal/quiz"
)

// ErrClosed is returned by Dispatch after Close.
var ErrClosed = errors.New("session closed")

// Transition is one applied event.
type Transition struct {
	Event quiz.Event
	From  quiz.State
	To    quiz.State
	At    time.Time
}

// Controller serialises all events of one session. Effects run on their own
// goroutines and feed their outcome back through Dispatch.
type Controller struct {
	machine  *quiz.Machine
	content  content.Provider
	clock    func() time.Time
	finished func(Summary)
	changed  func(Transition)

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	changes chan struct{}

	mu        sync.Mutex
	state     quiz.State
	log       []Transition
	startedAt time.Time
	reported  string
	closed    bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.clock = now }
}

// OnAttemptFinished registers f to run once per attempt, when its
// evaluation settles or when the attempt is reset before that.
func OnAttemptFinished(f func(Summary)) Option {
	return func(c *Controller) { c.finished = f }
}

// OnTransition registers f to run after every applied event.
func OnTransition(f func(Transition)) Option {
	return func(c *Controller) { c.changed = f }
}

// New creates a Controller in the initial landing state.
func New(m *quiz.Machine, p content.Provider, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		machine: m,
		content: p,
		clock:   time.Now,
		ctx:     ctx,
		cancel:  cancel,
		changes: make(chan struct{}, 1),
		state:   quiz.Initial(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() quiz.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Transitions returns a copy of the transition log.
func (c *Controller) Transitions() []Transition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Transition(nil), c.log...)
}

// Changes delivers a signal after state changes. Signals coalesce; the
// channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Dispatch applies ev. Rejected events leave the state untouched and return
// the machine's error.
func (c *Controller) Dispatch(ev quiz.Event) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	from := c.state
	next, eff, err := c.machine.Reduce(from, ev)
	if err != nil {
		c.mu.Unlock()
		return err
	}

	now := c.clock()
	t := Transition{Event: ev, From: from, To: next, At: now}
	c.state = next
	c.log = append(c.log, t)
	if from.Step() == quiz.StepLanding && next.Step() == quiz.StepQuiz {
		c.startedAt = now
	}
	summary, done := c.finishedAttempt(from, next, now)
	if eff != nil {
		c.run(eff)
	}
	c.notify()
	c.mu.Unlock()

	if c.changed != nil {
		c.changed(t)
	}
	if done && c.finished != nil {
		c.finished(summary)
	}
	return nil
}

// Start requests a new question set.
func (c *Controller) Start() error {
	return c.Dispatch(quiz.StartRequested{})
}

// Answer submits option for the current question.
func (c *Controller) Answer(option int) error {
	id := -1
	if q, ok := c.State().(quiz.Quiz); ok && q.Index < len(q.Questions) {
		id = q.Current().ID
	}
	return c.Dispatch(quiz.AnswerSubmitted{QuestionID: id, Option: option})
}

// OpenReview switches from the result to the answer review.
func (c *Controller) OpenReview() error {
	return c.Dispatch(quiz.ReviewOpened{})
}

// CloseReview returns from the review to the result.
func (c *Controller) CloseReview() error {
	return c.Dispatch(quiz.ReviewClosed{})
}

// Reset discards the attempt.
func (c *Controller) Reset() error {
	return c.Dispatch(quiz.ResetRequested{})
}

// Wait blocks until no effect is running.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels running effects, waits for them and stops the controller.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	close(c.changes)
}

// run executes eff in the background. Called with c.mu held.
func (c *Controller) run(eff quiz.Effect) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ev := c.perform(eff)
		if ev == nil {
			return
		}
		if err := c.Dispatch(ev); err != nil && !errors.Is(err, ErrClosed) {
			fmt.Fprintf(os.Stderr, "warning: dropped %s: %v\n", ev.EventName(), err)
		}
	}()
}

func (c *Controller) perform(eff quiz.Effect) quiz.Event {
	switch e := eff.(type) {
	case quiz.GenerateEffect:
		questions, err := c.content.GenerateQuestionSet(c.ctx)
		if err != nil {
			return quiz.GenerationFailed{Err: err}
		}
		return quiz.QuestionsGenerated{Questions: questions}

	case quiz.EvaluateEffect:
		text, err := c.content.Evaluate(c.ctx, e.Result)
		if err != nil {
			return quiz.EvaluationFailed{AttemptID: e.AttemptID, Err: err}
		}
		return quiz.EvaluationReady{AttemptID: e.AttemptID, Text: text}
	}
	return nil
}

func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// finishedAttempt reports whether the step from -> next ends an attempt
// that has not been reported yet. Called with c.mu held.
func (c *Controller) finishedAttempt(from, next quiz.State, now time.Time) (Summary, bool) {
	prev, ok := resultOf(from)
	if !ok || !prev.Evaluation.Pending || prev.AttemptID == c.reported {
		return Summary{}, false
	}

	final := prev
	if r, ok := resultOf(next); ok {
		if r.Evaluation.Pending {
			return Summary{}, false
		}
		final = r
	} else if next.Step() != quiz.StepLanding {
		return Summary{}, false
	}

	c.reported = final.AttemptID
	return Summary{
		AttemptID:  final.AttemptID,
		Result:     final.Result,
		Evaluation: final.Evaluation,
		StartedAt:  c.startedAt,
		Duration:   now.Sub(c.startedAt),
	}, true
}

func resultOf(s quiz.State) (quiz.Result, bool) {
	switch st := s.(type) {
	case quiz.Result:
		return st, true
	case quiz.Review:
		return st.Result, true
	}
	return quiz.Result{}, false
}

// Replay rebuilds the state reached by log, starting from the initial
// state. Attempt ids are taken from the log so late evaluations still match.
func Replay(fb quiz.Fallbacks, log []Transition) (quiz.State, error) {
	var ids []string
	for _, t := range log {
		if q, ok := t.To.(quiz.Quiz); ok && t.From.Step() == quiz.StepLanding {
			ids = append(ids, q.AttemptID)
		}
	}
	m := quiz.NewMachine(fb).WithIDSource(func() string {
		if len(ids) == 0 {
			return ""
		}
		id := ids[0]
		ids = ids[1:]
		return id
	})

	s := quiz.Initial()
	for i, t := range log {
		next, _, err := m.Reduce(s, t.Event)
		if err != nil {
			return s, fmt.Errorf("replay transition %d (%s): %w", i, t.Event.EventName(), err)
		}
		s = next
	}
	return s, nil
}
