package memory

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

func TestVectorIndex_SearchOrdersBySimilarity(t *testing.T) {
	idx := NewVectorIndex(0)
	ctx := context.Background()
	require.NoError(t, idx.Add(ctx, "east", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "north", []float32{0, 1}))
	require.NoError(t, idx.Add(ctx, "northeast", []float32{1, 1}))
	require.NoError(t, idx.Add(ctx, "west", []float32{-1, 0}))

	hits, err := idx.Search(ctx, []float32{2, 0.1}, 3)

	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, "east", hits[0].ChunkID)
	assert.Equal(t, "northeast", hits[1].ChunkID)
	assert.Equal(t, "north", hits[2].ChunkID)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i-1].Similarity, hits[i].Similarity)
	}
	assert.InDelta(t, 0.9988, hits[0].Similarity, 1e-3)
}

func TestVectorIndex_SearchAtMostK(t *testing.T) {
	idx := NewVectorIndex(3)
	ctx := context.Background()
	for i := 0; i < 10; i++ {
		require.NoError(t, idx.Add(ctx, fmt.Sprintf("c%d", i), []float32{float32(i), 1, 0}))
	}

	for _, k := range []int{1, 3, 10, 50} {
		hits, err := idx.Search(ctx, []float32{1, 1, 0}, k)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(hits), k)
	}

	hits, err := idx.Search(ctx, []float32{1, 1, 0}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorIndex_TiesBrokenByID(t *testing.T) {
	idx := NewVectorIndex(0)
	ctx := context.Background()
	require.NoError(t, idx.Add(ctx, "b", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "a", []float32{2, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 2)

	require.NoError(t, err)
	assert.Equal(t, "a", hits[0].ChunkID)
	assert.Equal(t, "b", hits[1].ChunkID)
}

func TestVectorIndex_DimensionMismatch(t *testing.T) {
	idx := NewVectorIndex(0)
	ctx := context.Background()
	require.NoError(t, idx.Add(ctx, "c1", []float32{1, 0, 0}))

	err := idx.Add(ctx, "c2", []float32{1, 0})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = idx.Search(ctx, []float32{1, 0}, 1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	assert.Equal(t, 3, idx.Dimensions())
}

func TestVectorIndex_EmptyEmbeddingRejected(t *testing.T) {
	err := NewVectorIndex(0).Add(context.Background(), "c", nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestVectorIndex_ReplaceDeleteReset(t *testing.T) {
	idx := NewVectorIndex(2)
	ctx := context.Background()
	require.NoError(t, idx.Add(ctx, "c1", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "c1", []float32{0, 1}))
	assert.Equal(t, 1, idx.Len())

	hits, err := idx.Search(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)

	require.NoError(t, idx.Delete(ctx, "c1"))
	require.NoError(t, idx.Delete(ctx, "unknown"))
	assert.Equal(t, 0, idx.Len())

	require.NoError(t, idx.Add(ctx, "c2", []float32{1, 0}))
	require.NoError(t, idx.Reset(ctx))
	assert.Equal(t, 0, idx.Len())

	hits, err = idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.NoError(t, idx.Close())
}

func TestVectorIndex_ZeroVector(t *testing.T) {
	idx := NewVectorIndex(2)
	ctx := context.Background()
	require.NoError(t, idx.Add(ctx, "zero", []float32{0, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 1)

	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Zero(t, hits[0].Similarity)
}
