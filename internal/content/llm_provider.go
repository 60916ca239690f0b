package content

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/venusquiz/internal/config"
	"github.com/abhisek/venusquiz/internal/llm"
	"github.com/abhisek/venusquiz/internal/quiz"
)

// Purposes recorded with each model request.
const (
	PurposeQuestionSet = "question-set"
	PurposeEvaluation  = "evaluation"
)

// LLMProvider implements Provider on top of a language model.
type LLMProvider struct {
	provider llm.Provider
	profile  config.Profile
}

// NewLLMProvider creates a Provider that prompts p according to profile.
func NewLLMProvider(p llm.Provider, profile config.Profile) *LLMProvider {
	return &LLMProvider{provider: p, profile: profile}
}

// questionSetOutput is the raw model response before validation.
type questionSetOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	ID            int      `json:"id"`
	Difficulty    string   `json:"difficulty"`
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// GenerateQuestionSet requests a new question set. Every failure, from the
// transport to a malformed question, comes back as a *quiz.GenerationError.
func (g *LLMProvider) GenerateQuestionSet(ctx context.Context) ([]quiz.Question, error) {
	ctx = llm.WithPurpose(ctx, PurposeQuestionSet)

	req := llm.Request{
		System: buildSystemPrompt(g.profile),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGenerationMessage(g.profile)},
		},
		Schema:      QuestionSetSchema,
		MaxTokens:   g.profile.Generation.MaxTokens,
		Temperature: g.profile.Generation.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, &quiz.GenerationError{Err: err}
	}

	questions, err := parseQuestionSet(resp.Content, g.profile.Labels)
	if err != nil {
		return nil, &quiz.GenerationError{Err: err}
	}
	if err := quiz.ValidateQuestionSet(questions); err != nil {
		return nil, &quiz.GenerationError{Err: err}
	}
	return questions, nil
}

// parseQuestionSet decodes a question set. Shape problems that the schema
// cannot express (option count, difficulty labels) become ValidationErrors.
func parseQuestionSet(raw json.RawMessage, labels quiz.DifficultyLabels) ([]quiz.Question, error) {
	var out questionSetOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse question set: %w", err)
	}

	questions := make([]quiz.Question, len(out.Questions))
	for i, q := range out.Questions {
		if len(q.Options) != quiz.OptionCount {
			return nil, &quiz.ValidationError{
				Index:   i,
				Message: fmt.Sprintf("expected %d options, got %d", quiz.OptionCount, len(q.Options)),
			}
		}
		d, err := quiz.ParseDifficulty(q.Difficulty, labels)
		if err != nil {
			return nil, &quiz.ValidationError{Index: i, Message: err.Error()}
		}

		questions[i] = quiz.Question{
			ID:            q.ID,
			Difficulty:    d,
			Text:          q.Text,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		copy(questions[i].Options[:], q.Options)
	}
	return questions, nil
}

// Evaluate requests feedback on result. The returned text is trimmed and
// may be empty.
func (g *LLMProvider) Evaluate(ctx context.Context, result quiz.QuizResult) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeEvaluation)

	req := llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildEvaluationMessage(g.profile, result)},
		},
		MaxTokens:   g.profile.Evaluation.MaxTokens,
		Temperature: g.profile.Evaluation.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("evaluation: %w", err)
	}
	return resp.Text(), nil
}
