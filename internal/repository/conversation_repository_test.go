package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maternal-companion-go/internal/model"
)

func TestGetOrCreateSessionID(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(0)

	id, err := repo.GetOrCreateSessionID(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	same, err := repo.GetOrCreateSessionID(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", same)

	ids, _ := repo.ListSessionIDs(ctx)
	assert.ElementsMatch(t, []string{id, "abc"}, ids)
}

func TestAppendAndClear(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(0)

	history, err := repo.GetConversationHistory(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, history)

	require.NoError(t, repo.AppendTurn(ctx, "s", model.NewTurn("hi", "hello", model.MoodNeutral)))
	require.NoError(t, repo.AppendTurn(ctx, "s", model.NewTurn("thanks", "welcome", model.MoodPositive)))

	history, _ = repo.GetConversationHistory(ctx, "s")
	require.Len(t, history, 2)
	assert.Equal(t, "hi", history[0].User)
	assert.Equal(t, "welcome", history[1].Assistant)

	// returned slice is a copy
	history[0].User = "changed"
	again, _ := repo.GetConversationHistory(ctx, "s")
	assert.Equal(t, "hi", again[0].User)

	require.NoError(t, repo.ClearConversationHistory(ctx, "s"))
	history, _ = repo.GetConversationHistory(ctx, "s")
	assert.Empty(t, history)
}

func TestSessionsAreSeparate(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(0)

	require.NoError(t, repo.AppendTurn(ctx, "a", model.NewTurn("one", "1", model.MoodNeutral)))
	history, _ := repo.GetConversationHistory(ctx, "b")
	assert.Empty(t, history)
}

func TestMaxTurnsDropsOldest(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.AppendTurn(ctx, "s", model.NewTurn(fmt.Sprintf("m%d", i), "r", model.MoodNeutral)))
	}
	history, _ := repo.GetConversationHistory(ctx, "s")
	require.Len(t, history, 3)
	assert.Equal(t, "m2", history[0].User)
	assert.Equal(t, "m4", history[2].User)
}

func TestConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(1000)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			unlock := repo.Lock("s")
			defer unlock()
			_ = repo.AppendTurn(ctx, "s", model.NewTurn(fmt.Sprintf("m%d", i), "r", model.MoodNeutral))
		}(i)
	}
	wg.Wait()

	history, _ := repo.GetConversationHistory(ctx, "s")
	assert.Len(t, history, 50)
}

func TestLockDoesNotCreateSession(t *testing.T) {
	ctx := context.Background()
	repo := NewConversationRepository(0)

	unlock := repo.Lock("never-chatted")
	require.NoError(t, repo.ClearConversationHistory(ctx, "never-chatted"))
	unlock()

	ids, err := repo.ListSessionIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	id, _ := repo.GetOrCreateSessionID(ctx, "known")
	unlock = repo.Lock(id)
	unlock()
	ids, _ = repo.ListSessionIDs(ctx)
	assert.Equal(t, []string{"known"}, ids)
}
