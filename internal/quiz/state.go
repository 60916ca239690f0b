package quiz

// Step names the screen a session is on.
type Step int

const (
	StepLanding Step = iota
	StepQuiz
	StepResult
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepLanding:
		return "landing"
	case StepQuiz:
		return "quiz"
	case StepResult:
		return "result"
	case StepReview:
		return "review"
	default:
		return "unknown"
	}
}

// State is one of Landing, Quiz, Result or Review. Values are never mutated
// in place; every transition produces a new value.
type State interface {
	Step() Step
	isState()
}

// Landing is the initial step.
type Landing struct {
	// Generating is true while a question set request is in flight.
	Generating bool

	// Err is the last generation failure, shown to the user until the next start.
	Err error
}

// Quiz is the question-answering step.
type Quiz struct {
	AttemptID string
	Questions []Question
	Index     int
	Responses []UserResponse
}

// Evaluation is the natural-language commentary on a result.
type Evaluation struct {
	Text     string
	Pending  bool
	Fallback bool
}

// Result shows the score and evaluation of a finished attempt.
type Result struct {
	AttemptID  string
	Questions  []Question
	Result     QuizResult
	Evaluation Evaluation
}

// Review lists every question with the chosen and correct options.
type Review struct {
	Result
}

func (Landing) Step() Step { return StepLanding }
func (Quiz) Step() Step    { return StepQuiz }
func (Result) Step() Step  { return StepResult }
func (Review) Step() Step  { return StepReview }

func (Landing) isState() {}
func (Quiz) isState()    {}
func (Result) isState()  {}
func (Review) isState()  {}

// Initial returns the state a new session starts in.
func Initial() State {
	return Landing{}
}

// Current returns the question being answered.
func (q Quiz) Current() Question {
	return q.Questions[q.Index]
}

// Remaining returns how many questions are still unanswered.
func (q Quiz) Remaining() int {
	return len(q.Questions) - len(q.Responses)
}
