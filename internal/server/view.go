package server

import "github.com/abhisek/venusquiz/internal/quiz"

// stateView is the JSON form of a session's state. Only the fields of the
// current step are set.
type stateView struct {
	ID         string         `json:"id"`
	Step       string         `json:"step"`
	Generating bool           `json:"generating,omitempty"`
	Error      string         `json:"error,omitempty"`
	AttemptID  string         `json:"attemptId,omitempty"`
	Progress   *progressView  `json:"progress,omitempty"`
	Question   *questionView  `json:"question,omitempty"`
	Result     *resultView    `json:"result,omitempty"`
	Review     []questionView `json:"review,omitempty"`
}

type progressView struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// questionView hides the answer and explanation unless Reveal is used.
type questionView struct {
	ID              int      `json:"id"`
	Difficulty      string   `json:"difficulty"`
	DifficultyLabel string   `json:"difficultyLabel"`
	Text            string   `json:"text"`
	Options         []string `json:"options"`
	CorrectAnswer   *int     `json:"correctAnswer,omitempty"`
	Explanation     string   `json:"explanation,omitempty"`
	SelectedOption  *int     `json:"selectedOption,omitempty"`
	IsCorrect       *bool    `json:"isCorrect,omitempty"`
}

type resultView struct {
	Score              int     `json:"score"`
	TotalQuestions     int     `json:"totalQuestions"`
	Percent            float64 `json:"percent"`
	Evaluation         string  `json:"evaluation,omitempty"`
	EvaluationPending  bool    `json:"evaluationPending"`
	EvaluationFallback bool    `json:"evaluationFallback"`
}

func newQuestionView(q quiz.Question, labels quiz.DifficultyLabels) questionView {
	return questionView{
		ID:              q.ID,
		Difficulty:      q.Difficulty.String(),
		DifficultyLabel: labels.Label(q.Difficulty),
		Text:            q.Text,
		Options:         q.Options[:],
	}
}

// reveal adds the answer, the explanation and the candidate's choice.
func (v questionView) reveal(q quiz.Question, r quiz.QuizResult) questionView {
	correct := q.CorrectAnswer
	v.CorrectAnswer = &correct
	v.Explanation = q.Explanation
	if resp, ok := r.ResponseFor(q.ID); ok {
		selected, isCorrect := resp.SelectedOption, resp.IsCorrect
		v.SelectedOption = &selected
		v.IsCorrect = &isCorrect
	}
	return v
}

func newResultView(r quiz.Result) *resultView {
	return &resultView{
		Score:              r.Result.Score,
		TotalQuestions:     r.Result.TotalQuestions,
		Percent:            r.Result.Percent(),
		Evaluation:         r.Evaluation.Text,
		EvaluationPending:  r.Evaluation.Pending,
		EvaluationFallback: r.Evaluation.Fallback,
	}
}

func newStateView(id string, s quiz.State, labels quiz.DifficultyLabels) stateView {
	v := stateView{ID: id, Step: s.Step().String()}

	switch st := s.(type) {
	case quiz.Landing:
		v.Generating = st.Generating
		if st.Err != nil {
			v.Error = st.Err.Error()
		}

	case quiz.Quiz:
		v.AttemptID = st.AttemptID
		v.Progress = &progressView{Current: st.Index + 1, Total: len(st.Questions)}
		q := newQuestionView(st.Current(), labels)
		v.Question = &q

	case quiz.Result:
		v.AttemptID = st.AttemptID
		v.Result = newResultView(st)

	case quiz.Review:
		v.AttemptID = st.AttemptID
		v.Result = newResultView(st.Result)
		v.Review = make([]questionView, len(st.Questions))
		for i, q := range st.Questions {
			v.Review[i] = newQuestionView(q, labels).reveal(q, st.Result.Result)
		}
	}
	return v
}
