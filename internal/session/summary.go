package session

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/store"
)

// Summary describes a finished attempt.
type Summary struct {
	AttemptID  string
	Result     quiz.QuizResult
	Evaluation quiz.Evaluation
	StartedAt  time.Time
	Duration   time.Duration
}

// EventData converts the summary into a history record.
func (s Summary) EventData() store.AttemptEventData {
	return store.AttemptEventData{
		AttemptID:          s.AttemptID,
		Score:              s.Result.Score,
		TotalQuestions:     s.Result.TotalQuestions,
		Evaluation:         s.Evaluation.Text,
		EvaluationFallback: s.Evaluation.Fallback,
		DurationSecs:       int(s.Duration.Seconds()),
	}
}

// RecordTo returns an OnAttemptFinished hook that appends every finished
// attempt to repo. Failures are reported on stderr and otherwise ignored.
func RecordTo(repo store.EventRepo) func(Summary) {
	return func(s Summary) {
		if err := repo.AppendAttempt(context.Background(), s.EventData()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record attempt %s: %v\n", s.AttemptID, err)
		}
	}
}
