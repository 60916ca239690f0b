package quiz

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Fallbacks holds the fixed evaluation texts used when the content provider
// returns nothing usable.
type Fallbacks struct {
	// Empty replaces an empty evaluation.
	Empty string `yaml:"empty"`

	// Failure replaces a failed evaluation request.
	Failure string `yaml:"failure"`
}

// Machine applies events to states. It holds no session state itself; the
// same Machine can drive any number of sessions.
type Machine struct {
	fallbacks Fallbacks
	newID     func() string
}

// NewMachine creates a Machine using fb for degraded evaluations.
func NewMachine(fb Fallbacks) *Machine {
	return &Machine{fallbacks: fb, newID: uuid.NewString}
}

// WithIDSource replaces the attempt id generator. Intended for tests.
func (m *Machine) WithIDSource(f func() string) *Machine {
	m.newID = f
	return m
}

// Reduce returns the state that follows s after ev, together with an optional
// side effect for the caller to run. Illegal events return an error and the
// unchanged state.
func (m *Machine) Reduce(s State, ev Event) (State, Effect, error) {
	switch st := s.(type) {
	case Landing:
		return m.reduceLanding(st, ev)
	case Quiz:
		return m.reduceQuiz(st, ev)
	case Result:
		return m.reduceResult(st, ev)
	case Review:
		return m.reduceReview(st, ev)
	}
	return s, nil, fmt.Errorf("unknown state %T", s)
}

func (m *Machine) reduceLanding(s Landing, ev Event) (State, Effect, error) {
	switch e := ev.(type) {
	case StartRequested:
		if s.Generating {
			return s, nil, ErrGenerationInFlight
		}
		return Landing{Generating: true}, GenerateEffect{}, nil

	case QuestionsGenerated:
		if !s.Generating {
			return s, nil, illegal(s, ev)
		}
		if err := ValidateQuestionSet(e.Questions); err != nil {
			return Landing{Err: &GenerationError{Err: err}}, nil, nil
		}
		return Quiz{
			AttemptID: m.newID(),
			Questions: append([]Question(nil), e.Questions...),
		}, nil, nil

	case GenerationFailed:
		if !s.Generating {
			return s, nil, illegal(s, ev)
		}
		return Landing{Err: AsGenerationError(e.Err)}, nil, nil

	case EvaluationReady, EvaluationFailed:
		// Late completion for an attempt that was already reset.
		return s, nil, nil
	}
	return s, nil, illegal(s, ev)
}

func (m *Machine) reduceQuiz(s Quiz, ev Event) (State, Effect, error) {
	e, ok := ev.(AnswerSubmitted)
	if !ok {
		if isEvaluation(ev) {
			return s, nil, nil
		}
		return s, nil, illegal(s, ev)
	}

	if e.Option < 0 || e.Option >= OptionCount {
		return s, nil, fmt.Errorf("%w: %d", ErrInvalidOption, e.Option)
	}
	if s.Index >= len(s.Questions) || len(s.Responses) != s.Index {
		return s, nil, ErrOutOfOrderAnswer
	}
	current := s.Questions[s.Index]
	if e.QuestionID != current.ID {
		return s, nil, fmt.Errorf("%w: got question %d, current is %d", ErrOutOfOrderAnswer, e.QuestionID, current.ID)
	}

	responses := make([]UserResponse, len(s.Responses), len(s.Responses)+1)
	copy(responses, s.Responses)
	responses = append(responses, UserResponse{
		QuestionID:     current.ID,
		SelectedOption: e.Option,
		IsCorrect:      current.IsCorrect(e.Option),
	})

	if s.Index < len(s.Questions)-1 {
		return Quiz{
			AttemptID: s.AttemptID,
			Questions: s.Questions,
			Index:     s.Index + 1,
			Responses: responses,
		}, nil, nil
	}

	result := NewResult(len(s.Questions), responses)
	return Result{
			AttemptID:  s.AttemptID,
			Questions:  s.Questions,
			Result:     result,
			Evaluation: Evaluation{Pending: true},
		}, EvaluateEffect{
			AttemptID: s.AttemptID,
			Result:    result,
		}, nil
}

func (m *Machine) reduceResult(s Result, ev Event) (State, Effect, error) {
	switch e := ev.(type) {
	case EvaluationReady:
		return m.settle(s, e.AttemptID, e.Text, nil), nil, nil
	case EvaluationFailed:
		return m.settle(s, e.AttemptID, "", e.Err), nil, nil
	case ReviewOpened:
		return Review{Result: s}, nil, nil
	case ResetRequested:
		return Initial(), nil, nil
	}
	return s, nil, illegal(s, ev)
}

func (m *Machine) reduceReview(s Review, ev Event) (State, Effect, error) {
	switch e := ev.(type) {
	case EvaluationReady:
		return Review{Result: m.settle(s.Result, e.AttemptID, e.Text, nil)}, nil, nil
	case EvaluationFailed:
		return Review{Result: m.settle(s.Result, e.AttemptID, "", e.Err)}, nil, nil
	case ReviewClosed:
		return s.Result, nil, nil
	case ResetRequested:
		return Initial(), nil, nil
	}
	return s, nil, illegal(s, ev)
}

// settle fills in a pending evaluation. Completions for another attempt, or
// for an evaluation that has already settled, are dropped.
func (m *Machine) settle(s Result, attemptID, text string, err error) Result {
	if attemptID != s.AttemptID || !s.Evaluation.Pending {
		return s
	}
	text = strings.TrimSpace(text)
	switch {
	case err != nil:
		s.Evaluation = Evaluation{Text: m.fallbacks.Failure, Fallback: true}
	case text == "":
		s.Evaluation = Evaluation{Text: m.fallbacks.Empty, Fallback: true}
	default:
		s.Evaluation = Evaluation{Text: text}
	}
	return s
}

func isEvaluation(ev Event) bool {
	switch ev.(type) {
	case EvaluationReady, EvaluationFailed:
		return true
	}
	return false
}

func illegal(s State, ev Event) error {
	return &IllegalTransitionError{From: s.Step(), Event: ev.EventName()}
}
