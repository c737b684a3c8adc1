package driven

import (
	"context"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// ArticleStore persists fetched articles and their embedded chunks.
type ArticleStore interface {
	// SaveArticle inserts or replaces an article.
	SaveArticle(ctx context.Context, article *domain.Article) error

	// GetArticle returns domain.ErrNotFound when the ID is unknown.
	GetArticle(ctx context.Context, id string) (*domain.Article, error)

	// ListArticles returns all stored articles, most recently published first.
	ListArticles(ctx context.Context) ([]domain.Article, error)

	// SaveChunks stores chunks, including their embeddings.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunk returns domain.ErrNotFound when the ID is unknown.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// ListChunks returns every stored chunk with its embedding.
	ListChunks(ctx context.Context) ([]domain.Chunk, error)

	// DeleteChunksByArticle removes an article's chunks and returns their IDs.
	DeleteChunksByArticle(ctx context.Context, articleID string) ([]string, error)

	// Clear removes all articles and chunks.
	Clear(ctx context.Context) error
}
