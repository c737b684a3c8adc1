// Package news selects the configured news source adapter.
package news

import (
	"fmt"

	"github.com/custodia-labs/newsum/internal/adapters/driven/news/newsapi"
	"github.com/custodia-labs/newsum/internal/adapters/driven/news/rss"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// CreateSource creates the news source for the configured provider.
// A NewsAPI provider without a key fails with ErrFetch and ErrAuth.
func CreateSource(settings domain.NewsSettings) (driven.NewsSource, error) {
	switch settings.Provider {
	case domain.NewsProviderNewsAPI, "":
		c, err := newsapi.New(settings.APIKey,
			newsapi.WithBaseURL(settings.BaseURL),
			newsapi.WithDaysBack(settings.DaysBack),
			newsapi.WithSortBy(settings.SortBy),
		)
		if err != nil {
			return nil, err
		}
		return c, nil
	case domain.NewsProviderRSS:
		return rss.New(settings.RSSURL), nil
	default:
		return nil, fmt.Errorf("%w: unsupported news provider: %s", domain.ErrInvalidInput, settings.Provider)
	}
}
