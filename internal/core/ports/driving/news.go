package driving

import (
	"context"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// NewsService retrieves articles from the configured news source.
type NewsService interface {
	// Fetch returns at most pageSize articles with unique IDs.
	// Failures wrap domain.ErrFetch.
	Fetch(ctx context.Context, query string, pageSize int) ([]domain.Article, error)

	// SourceName identifies the configured news source.
	SourceName() string
}
