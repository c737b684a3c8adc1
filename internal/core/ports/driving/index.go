package driving

import (
	"context"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// IndexService embeds articles and answers similarity queries.
type IndexService interface {
	// IndexArticles chunks, embeds and stores articles, returning the chunk count.
	IndexArticles(ctx context.Context, articles []domain.Article) (int, error)

	// QuerySimilar returns at most k articles ordered by descending similarity.
	// Returns domain.ErrEmptyIndex when nothing has been indexed.
	QuerySimilar(ctx context.Context, text string, k int) ([]domain.ArticleHit, error)

	// GetArticle returns an indexed article by ID.
	GetArticle(ctx context.Context, id string) (*domain.Article, error)

	// Len returns the number of indexed chunks.
	Len() int

	// Reset empties the index.
	Reset(ctx context.Context) error
}
