package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
	"github.com/custodia-labs/newsum/internal/logger"
)

// Ensure NewsService implements the interface.
var _ driving.NewsService = (*NewsService)(nil)

// MaxPageSize bounds a single fetch.
const MaxPageSize = 100

// NewsService fetches articles from the configured source and enforces
// page size and ID uniqueness regardless of what the source returns.
type NewsService struct {
	source driven.NewsSource
	prefs  driving.PreferenceService
}

// NewNewsService creates a news service.
// prefs is optional and supplies the article language.
func NewNewsService(source driven.NewsSource, prefs driving.PreferenceService) *NewsService {
	return &NewsService{source: source, prefs: prefs}
}

// SourceName identifies the configured news source.
func (s *NewsService) SourceName() string {
	if s.source == nil {
		return "none"
	}
	return s.source.Name()
}

// Fetch returns at most pageSize articles with unique IDs.
func (s *NewsService) Fetch(ctx context.Context, query string, pageSize int) ([]domain.Article, error) {
	logger.Section("News Fetch")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if s.source == nil {
		return nil, fmt.Errorf("%w: no news source configured", domain.ErrFetch)
	}
	pageSize = clamp(pageSize, 1, MaxPageSize)

	q := domain.NewsQuery{
		Query:    query,
		PageSize: pageSize,
		Language: s.language(),
	}
	logger.Debug("Source: %s, query: %q, pageSize: %d, language: %s", s.source.Name(), q.Query, q.PageSize, q.Language)

	raw, err := s.source.Fetch(ctx, q)
	if err != nil {
		logger.Warn("Fetch failed: %v", err)
		if errors.Is(err, domain.ErrFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}

	articles := dedupeArticles(raw, pageSize)
	logger.Debug("Fetched %d articles (%d raw)", len(articles), len(raw))
	return articles, nil
}

func (s *NewsService) language() string {
	if s.prefs == nil {
		return domain.DefaultLanguage
	}
	if lang := s.prefs.Preferences().Language; lang != "" {
		return lang
	}
	return domain.DefaultLanguage
}

// dedupeArticles keeps the first occurrence of each ID, up to limit.
func dedupeArticles(in []domain.Article, limit int) []domain.Article {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Article, 0, min(len(in), limit))
	for _, a := range in {
		if a.ID == "" {
			a.ID = domain.ArticleID(a.URL, a.Source, a.Title)
		}
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
		if len(out) == limit {
			break
		}
	}
	return out
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
