package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrGenerationInFlight is returned when an attempt is started while a
	// question set is already being generated.
	ErrGenerationInFlight = errors.New("question generation already in flight")

	// ErrInvalidOption is returned for an option index outside [0,3].
	ErrInvalidOption = errors.New("option index out of range")

	// ErrOutOfOrderAnswer is returned when an answer does not target the
	// current unanswered question (duplicate or skipped submission).
	ErrOutOfOrderAnswer = errors.New("answer does not target the current question")
)

// IllegalTransitionError reports an event that is not valid in the current step.
type IllegalTransitionError struct {
	From  Step
	Event string
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: %s in step %s", e.Event, e.From)
}

// ValidationError describes why a generated question set was rejected.
type ValidationError struct {
	Index   int // position of the offending question, -1 for set-level problems
	Message string
}

func (e *ValidationError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid question set: %s", e.Message)
	}
	return fmt.Sprintf("invalid question %d: %s", e.Index, e.Message)
}

// GenerationError is the user-visible failure of a question set request.
// It wraps provider errors and validation errors alike.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	if e.Err == nil {
		return "question generation failed"
	}
	return fmt.Sprintf("question generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// AsGenerationError wraps err in a GenerationError unless it already is one.
func AsGenerationError(err error) *GenerationError {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge
	}
	return &GenerationError{Err: err}
}
