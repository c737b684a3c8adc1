package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

func TestArticleStore_SaveAndGet(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	article := &domain.Article{ID: "a1", Title: "Hello", URL: "https://x/1"}

	require.NoError(t, store.SaveArticle(ctx, article))

	got, err := store.GetArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, *article, *got)

	_, err = store.GetArticle(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestArticleStore_ListArticlesNewestFirst(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.SaveArticle(ctx, &domain.Article{ID: "old", PublishedAt: base}))
	require.NoError(t, store.SaveArticle(ctx, &domain.Article{ID: "new", PublishedAt: base.Add(time.Hour)}))

	list, err := store.ListArticles(ctx)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "old", list[1].ID)
}

func TestArticleStore_Chunks(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	chunks := []domain.Chunk{
		{ID: "c2", ArticleID: "a1", Position: 1, Embedding: []float32{0, 1}},
		{ID: "c1", ArticleID: "a1", Position: 0, Embedding: []float32{1, 0}},
		{ID: "c3", ArticleID: "a2", Position: 0},
	}

	require.NoError(t, store.SaveChunks(ctx, chunks))

	got, err := store.GetChunk(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0}, got.Embedding)

	all, err := store.ListChunks(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "c1", all[0].ID)
	assert.Equal(t, "c2", all[1].ID)
	assert.Equal(t, "c3", all[2].ID)

	ids, err := store.DeleteChunksByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)

	_, err = store.GetChunk(ctx, "c1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	all, _ = store.ListChunks(ctx)
	assert.Len(t, all, 1)
}

func TestArticleStore_SaveChunksTwiceDoesNotDuplicateIDs(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	c := domain.Chunk{ID: "c1", ArticleID: "a1"}

	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{c}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{c}))

	ids, err := store.DeleteChunksByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, ids)
}

func TestArticleStore_Clear(t *testing.T) {
	store := NewArticleStore()
	ctx := context.Background()
	require.NoError(t, store.SaveArticle(ctx, &domain.Article{ID: "a1"}))
	require.NoError(t, store.SaveChunks(ctx, []domain.Chunk{{ID: "c1", ArticleID: "a1"}}))

	require.NoError(t, store.Clear(ctx))

	list, _ := store.ListArticles(ctx)
	chunks, _ := store.ListChunks(ctx)
	assert.Empty(t, list)
	assert.Empty(t, chunks)
}
