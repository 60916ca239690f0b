package history

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/venusquiz/internal/store"
)

func TestHistory_ListsAttempts(t *testing.T) {
	st, err := store.Open(store.MemoryDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	repo := st.EventRepo()
	ctx := context.Background()
	require.NoError(t, repo.AppendAttempt(ctx, store.AttemptEventData{AttemptID: "a", Score: 4, TotalQuestions: 10, Evaluation: "Keep going.", DurationSecs: 65}))
	require.NoError(t, repo.AppendAttempt(ctx, store.AttemptEventData{AttemptID: "b", Score: 9, TotalQuestions: 10, Evaluation: "Outstanding.", DurationSecs: 300}))

	s := New(repo)
	if view := s.View(100, 30); !strings.Contains(view, "Loading") {
		t.Errorf("expected loading view, got:\n%s", view)
	}

	s.Update(s.Init()())
	view := s.View(100, 30)
	require.Contains(t, view, "9/10")
	require.Contains(t, view, "4/10")
	require.Contains(t, view, "5:00")
	require.NotContains(t, view, "Outstanding.")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.Contains(t, s.View(100, 30), "Outstanding.")
}

func TestHistory_Empty(t *testing.T) {
	st, err := store.Open(store.MemoryDSN(t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	s := New(st.EventRepo())
	s.Update(s.Init()())
	require.Contains(t, s.View(100, 30), "No finished attempts yet.")
}
