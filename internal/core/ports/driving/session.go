package driving

import (
	"context"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// SessionService drives one interactive session: search, select, summarise.
// It carries the current result set so callers need no global state.
type SessionService interface {
	// Search fetches articles using the saved preferences, records history and indexes them.
	Search(ctx context.Context, query string) (*domain.SearchOutcome, error)

	// Results returns the articles from the last successful search.
	Results() []domain.Article

	// Query returns the last searched query.
	Query() string

	// Similar runs a similarity query over everything indexed so far.
	Similar(ctx context.Context, text string, k int) ([]domain.ArticleHit, error)

	// SummarizeArticle summarises one article from the current results.
	SummarizeArticle(ctx context.Context, index int, mode domain.SummaryMode) (string, error)

	// SummarizeAll summarises all current results in the preferred mode.
	SummarizeAll(ctx context.Context) (string, error)

	// Preferences exposes the preference service backing the session.
	Preferences() PreferenceService
}
