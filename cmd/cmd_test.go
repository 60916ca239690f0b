package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/venusquiz/internal/config"
	"github.com/abhisek/venusquiz/internal/llm"
	"github.com/abhisek/venusquiz/internal/quiz"
	"github.com/abhisek/venusquiz/internal/store"
)

func TestApplyProfile(t *testing.T) {
	var p config.LLM
	p.Timeout = 30 * time.Second
	p.Retry.MaxAttempts = 3

	cfg := llm.DefaultConfig()
	applyProfile(p)(&cfg)

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, llm.DefaultConfig().Retry.InitialWait, cfg.Retry.InitialWait, "zero values keep defaults")
}

func TestTruncateIsRuneSafe(t *testing.T) {
	assert.Equal(t, "أداء", truncate("أداء ممتاز", 4))
	assert.Equal(t, "short", truncate("short", 10))
}

func TestPrintEventTable(t *testing.T) {
	var buf bytes.Buffer
	printEventTable(&buf, nil)
	assert.Contains(t, buf.String(), "No LLM events found.")

	buf.Reset()
	events := []store.LLMRequestEventRecord{
		{ID: 1, LLMRequestEventData: store.LLMRequestEventData{Purpose: "question-set", Model: "gemini-3-flash-preview", Success: true}},
		{ID: 2, LLMRequestEventData: store.LLMRequestEventData{Purpose: "evaluation", Model: "gemini-3-flash-preview"}},
	}
	printEventTable(&buf, filterPurpose(events, "evaluation"))
	out := buf.String()
	assert.Contains(t, out, "evaluation")
	assert.NotContains(t, out, "question-set")
	assert.Contains(t, out, "✗")
}

func TestPrintUsage_Cost(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf,
		[]store.LLMUsageStats{{Purpose: "question-set", Calls: 2, InputTokens: 1000, OutputTokens: 4000}},
		[]store.LLMModelUsage{
			{Model: "gemini-2.5-flash", Calls: 2, InputTokens: 1000, OutputTokens: 4000},
			{Model: "homegrown-model", Calls: 1},
		})
	out := buf.String()
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "Pricing unavailable for: homegrown-model")
}

func TestPrintAttempts(t *testing.T) {
	var buf bytes.Buffer
	printAttempts(&buf, []store.AttemptRecord{{
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		AttemptEventData: store.AttemptEventData{
			Score: 7, TotalQuestions: 10, Evaluation: strings.Repeat("ممتاز ", 20),
			EvaluationFallback: true, DurationSecs: 125,
		},
	}}, false)
	out := buf.String()
	assert.Contains(t, out, "7/10")
	assert.Contains(t, out, "70%")
	assert.Contains(t, out, "2:05")
	assert.Contains(t, out, "(fallback)")
}

func TestDepsNewSessionRecordsAttempts(t *testing.T) {
	st, err := store.Open(store.MemoryDSN(t.Name()))
	require.NoError(t, err)
	d := &deps{
		profile: config.Default(),
		store:   st,
		content: oneQuestion{},
	}
	t.Cleanup(d.Close)

	ctrl := d.newSession()
	t.Cleanup(ctrl.Close)

	require.NoError(t, ctrl.Start())
	ctrl.Wait()
	require.NoError(t, ctrl.Dispatch(quiz.AnswerSubmitted{QuestionID: 1, Option: 2}))
	ctrl.Wait()

	attempts, err := st.EventRepo().QueryAttempts(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, 1, attempts[0].Score)
	assert.Equal(t, "Solid judgement.", attempts[0].Evaluation)
}

func TestDepsWithoutStore(t *testing.T) {
	d := &deps{profile: config.Default(), content: oneQuestion{}}
	assert.Nil(t, d.repo())
	d.Close()
}

// oneQuestion serves a single question whose answer is option 2.
type oneQuestion struct{}

func (oneQuestion) GenerateQuestionSet(context.Context) ([]quiz.Question, error) {
	return []quiz.Question{{
		ID: 1, Difficulty: quiz.DifficultyEasy, Text: "Ticket backlog?",
		Options: [4]string{"Ignore", "Delegate", "Triage", "Close all"}, CorrectAnswer: 2,
		Explanation: "Triage keeps urgent issues first.",
	}}, nil
}

func (oneQuestion) Evaluate(context.Context, quiz.QuizResult) (string, error) {
	return "Solid judgement.", nil
}
