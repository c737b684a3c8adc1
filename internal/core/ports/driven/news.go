package driven

import (
	"context"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// NewsSource fetches articles matching a query from a news provider.
type NewsSource interface {
	// Name identifies the provider in logs and errors.
	Name() string

	// Fetch returns articles for the query, most recent first.
	// Failures wrap domain.ErrFetch; rejected credentials also wrap domain.ErrAuth.
	Fetch(ctx context.Context, query domain.NewsQuery) ([]domain.Article, error)
}
