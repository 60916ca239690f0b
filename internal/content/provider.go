// Package content produces quiz material: question sets for a new attempt
// and a written evaluation of a finished one.
package content

import (
	"context"

	"github.com/abhisek/venusquiz/internal/quiz"
)

// Provider generates question sets and evaluations. Implementations are
// stateless between calls and safe for concurrent use.
type Provider interface {
	// GenerateQuestionSet returns a validated question set or a
	// *quiz.GenerationError.
	GenerateQuestionSet(ctx context.Context) ([]quiz.Question, error)

	// Evaluate returns free-form feedback for result. The text may be
	// empty; callers substitute their fallback.
	Evaluate(ctx context.Context, result quiz.QuizResult) (string, error)
}
