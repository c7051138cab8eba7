package vectordb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSearchRanking(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.AddDocs(ctx, []Document{
		{ID: "x", Vector: []float32{1, 0}, Payload: "east"},
		{ID: "y", Vector: []float32{0, 1}, Payload: "north"},
		{ID: "xy", Vector: []float32{1, 1}, Payload: "diagonal"},
	})
	require.NoError(t, err)

	results, err := s.SearchDocs(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "x", results[0].ID, "identical direction ranks first")
	assert.Equal(t, "xy", results[1].ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestMemoryStoreTopKClamp(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddDocs(ctx, []Document{{ID: "a", Vector: []float32{1}}}))

	results, err := s.SearchDocs(ctx, []float32{1}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.AddDocs(ctx, []Document{{ID: "a", Vector: []float32{1}}}))
	require.NoError(t, s.Reset(ctx))

	results, err := s.SearchDocs(ctx, []float32{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestCosineZeroVector(t *testing.T) {
	assert.Zero(t, cosine([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, cosine([]float32{1}, []float32{1, 2}), "mismatched widths score zero")
}
