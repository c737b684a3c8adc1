package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
	"github.com/custodia-labs/newsum/internal/logger"
)

// Ensure Session implements the interface.
var _ driving.SessionService = (*Session)(nil)

// Session drives one interactive search session: it fetches, records,
// indexes and summarises, and remembers the latest result list.
type Session struct {
	mu        sync.RWMutex
	news      driving.NewsService
	index     driving.IndexService
	summaries driving.SummaryService
	prefs     driving.PreferenceService
	query     string
	results   []domain.Article
}

// NewSession creates a session over the given services.
func NewSession(
	news driving.NewsService,
	index driving.IndexService,
	summaries driving.SummaryService,
	prefs driving.PreferenceService,
) *Session {
	return &Session{
		news:      news,
		index:     index,
		summaries: summaries,
		prefs:     prefs,
	}
}

// Search fetches ArticlesPerTopic articles for query, records the search in
// history and indexes the results. Only a fetch failure is fatal; history and
// indexing failures are reported on the outcome.
func (s *Session) Search(ctx context.Context, query string) (*domain.SearchOutcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	prefs := s.prefs.Preferences()
	articles, err := s.news.Fetch(ctx, query, prefs.ArticlesPerTopic)
	if err != nil {
		return nil, err
	}

	outcome := &domain.SearchOutcome{Articles: articles}
	outcome.HistoryErr = s.prefs.AddHistoryEntry(query, len(articles))

	if len(articles) > 0 {
		n, err := s.index.IndexArticles(ctx, articles)
		outcome.Indexed = n
		if err != nil {
			logger.Warn("Indexing failed: %v", err)
			outcome.IndexErr = err
		}
	}

	s.mu.Lock()
	s.query = query
	s.results = articles
	s.mu.Unlock()

	return outcome, nil
}

// Results returns the articles from the latest search.
func (s *Session) Results() []domain.Article {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Article(nil), s.results...)
}

// Query returns the latest search query.
func (s *Session) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Similar runs a semantic query against everything indexed this session.
func (s *Session) Similar(ctx context.Context, text string, k int) ([]domain.ArticleHit, error) {
	return s.index.QuerySimilar(ctx, text, k)
}

// SummarizeArticle summarises the result at index.
func (s *Session) SummarizeArticle(ctx context.Context, index int, mode domain.SummaryMode) (string, error) {
	s.mu.RLock()
	if index < 0 || index >= len(s.results) {
		n := len(s.results)
		s.mu.RUnlock()
		return "", fmt.Errorf("%w: article %d out of range (have %d)", domain.ErrInvalidInput, index+1, n)
	}
	article := s.results[index]
	s.mu.RUnlock()

	return s.summaries.Summarize(ctx, []domain.Article{article}, mode)
}

// SummarizeAll summarises every result in the preferred mode.
func (s *Session) SummarizeAll(ctx context.Context) (string, error) {
	results := s.Results()
	if len(results) == 0 {
		return "", fmt.Errorf("%w: no search results", domain.ErrInvalidInput)
	}
	return s.summaries.Summarize(ctx, results, s.prefs.Preferences().SummaryMode)
}

// Preferences returns the preference service.
func (s *Session) Preferences() driving.PreferenceService {
	return s.prefs
}
