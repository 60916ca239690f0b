package quiz

// Event is a message applied to a State by Machine.Reduce.
type Event interface {
	EventName() string
}

// StartRequested asks for a fresh question set (startAttempt).
type StartRequested struct{}

// QuestionsGenerated delivers a question set from the content provider.
type QuestionsGenerated struct {
	Questions []Question
}

// GenerationFailed delivers a failed question set request.
type GenerationFailed struct {
	Err error
}

// AnswerSubmitted answers the question identified by QuestionID (submitAnswer).
type AnswerSubmitted struct {
	QuestionID int
	Option     int
}

// EvaluationReady delivers the evaluation text for an attempt.
type EvaluationReady struct {
	AttemptID string
	Text      string
}

// EvaluationFailed delivers a failed evaluation request for an attempt.
type EvaluationFailed struct {
	AttemptID string
	Err       error
}

// ReviewOpened switches from the result to the review (viewReview).
type ReviewOpened struct{}

// ReviewClosed switches from the review back to the result (backToResult).
type ReviewClosed struct{}

// ResetRequested discards the attempt and returns to landing (reset).
type ResetRequested struct{}

func (StartRequested) EventName() string     { return "start" }
func (QuestionsGenerated) EventName() string { return "questions-generated" }
func (GenerationFailed) EventName() string   { return "generation-failed" }
func (AnswerSubmitted) EventName() string    { return "answer" }
func (EvaluationReady) EventName() string    { return "evaluation-ready" }
func (EvaluationFailed) EventName() string   { return "evaluation-failed" }
func (ReviewOpened) EventName() string       { return "review" }
func (ReviewClosed) EventName() string       { return "back-to-result" }
func (ResetRequested) EventName() string     { return "reset" }

// Effect is a side effect requested by a transition. The caller runs it and
// dispatches the resulting event.
type Effect interface {
	effect()
}

// GenerateEffect requests a question set.
type GenerateEffect struct{}

// EvaluateEffect requests an evaluation of Result for AttemptID.
type EvaluateEffect struct {
	AttemptID string
	Result    QuizResult
}

func (GenerateEffect) effect() {}
func (EvaluateEffect) effect() {}
