package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSaveAndRecent(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(10)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(ctx, "u1", Interaction{Prompt: fmt.Sprintf("q%d", i)}))
	}

	got, err := s.Recent(ctx, "u1", 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "q2", got[0].Prompt, "newest first")
	assert.False(t, got[0].Timestamp.IsZero(), "save stamps the time")

	got, err = s.Recent(ctx, "u1", 2, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q1", got[0].Prompt, "offset skips the newest")
}

func TestStoreCapsPerUser(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(5)

	for i := 0; i < 8; i++ {
		require.NoError(t, s.Save(ctx, "u1", Interaction{Prompt: fmt.Sprintf("q%d", i)}))
	}

	got, err := s.Recent(ctx, "u1", 100, 0)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "q7", got[0].Prompt)
	assert.Equal(t, "q3", got[4].Prompt, "oldest entries are dropped")
}

func TestStoreIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(10)
	require.NoError(t, s.Save(ctx, "u1", Interaction{Prompt: "mine"}))

	got, err := s.Recent(ctx, "u2", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(10)
	require.NoError(t, s.Save(ctx, "u1", Interaction{Prompt: "q"}))
	require.NoError(t, s.Clear(ctx, "u1"))

	got, err := s.Recent(ctx, "u1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
