package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizflip/internal/session"
)

func answer(sessionID, qid string, correct bool, ms int64) session.AnswerEvent {
	return session.AnswerEvent{
		SessionID:  sessionID,
		QuestionID: qid,
		Title:      "Title " + qid,
		Set:        "sample:go-basics",
		Mode:       "all",
		Selected:   "B",
		CorrectKey: "A",
		Correct:    correct,
		TimeMs:     ms,
	}
}

func TestAnswerQueries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []session.AnswerEvent{
		answer("s1", "q_0", true, 1000),
		answer("s1", "q_1", false, 3000),
		answer("s2", "q_1", false, 5000),
		answer("s2", "q_2", true, 2000),
		answer("s2", "q_1", true, 1000),
	}
	for _, ev := range events {
		require.NoError(t, repo.AppendAnswer(ctx, ev))
	}

	all, err := repo.QueryAnswers(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	// Newest first.
	assert.Equal(t, "q_1", all[0].QuestionID)
	assert.True(t, all[0].Correct)
	assert.Equal(t, "sample:go-basics", all[0].Set)

	limited, err := repo.QueryAnswers(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	after, err := repo.QueryAnswers(ctx, QueryOpts{After: all[2].Sequence})
	require.NoError(t, err)
	assert.Len(t, after, 2)

	totals, err := repo.AnswerTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, AnswerTotals{Answers: 5, Correct: 3, Sessions: 2}, totals)

	hardest, err := repo.HardestQuestions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, hardest, 2)
	assert.Equal(t, "q_1", hardest[0].QuestionID)
	assert.Equal(t, "Title q_1", hardest[0].Title)
	assert.Equal(t, 3, hardest[0].Attempts)
	assert.Equal(t, 1, hardest[0].Correct)
	assert.Equal(t, int64(3000), hardest[0].AvgTimeMs)
}

func TestAnswerTotalsEmpty(t *testing.T) {
	s := openTestStore(t)
	totals, err := s.EventRepo().AnswerTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, AnswerTotals{}, totals)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "explain",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true,
		RequestBody: "### user\nexplain", ResponseBody: `{"explanation":"x"}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "explain",
		InputTokens: 300, OutputTokens: 150, LatencyMs: 400, Success: false,
		ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Success)
	assert.Equal(t, "rate limited", events[0].ErrorMessage)

	got, err := repo.GetLLMEvent(ctx, events[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "### user\nexplain", got.RequestBody)
	assert.Equal(t, `{"explanation":"x"}`, got.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 1)
	assert.Equal(t, PurposeUsage{Purpose: "explain", Calls: 2, InputTokens: 400, OutputTokens: 200, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 1)
	assert.Equal(t, ModelUsage{Model: "claude-haiku-4-5", Calls: 2, InputTokens: 400, OutputTokens: 200}, byModel[0])
}

func TestEventRepoSatisfiesHistory(t *testing.T) {
	s := openTestStore(t)
	var h session.History = s.EventRepo()
	require.NoError(t, h.AppendAnswer(context.Background(), answer("s", "q_0", true, 10)))
}
