package mcp

import (
	"context"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	outcome    *domain.SearchOutcome
	hits       []domain.ArticleHit
	results    []domain.Article
	summary    string
	prefs      driving.PreferenceService
	err        error
	lastQuery  string
	lastK      int
	summarized bool
}

func (m *mockSessionService) Search(_ context.Context, query string) (*domain.SearchOutcome, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	if m.outcome == nil {
		return &domain.SearchOutcome{}, nil
	}
	return m.outcome, nil
}

func (m *mockSessionService) Results() []domain.Article { return m.results }

func (m *mockSessionService) Query() string { return m.lastQuery }

func (m *mockSessionService) Similar(_ context.Context, _ string, k int) ([]domain.ArticleHit, error) {
	m.lastK = k
	return m.hits, m.err
}

func (m *mockSessionService) SummarizeArticle(context.Context, int, domain.SummaryMode) (string, error) {
	return m.summary, m.err
}

func (m *mockSessionService) SummarizeAll(context.Context) (string, error) {
	m.summarized = true
	return m.summary, m.err
}

func (m *mockSessionService) Preferences() driving.PreferenceService { return m.prefs }

// mockSummaryService records the last request.
type mockSummaryService struct {
	summary  string
	err      error
	request  domain.SummaryRequest
	articles []domain.Article
	mode     domain.SummaryMode
}

func (m *mockSummaryService) Summarize(
	_ context.Context, articles []domain.Article, mode domain.SummaryMode,
) (string, error) {
	m.articles = articles
	m.mode = mode
	return m.summary, m.err
}

func (m *mockSummaryService) SummarizeByID(_ context.Context, req domain.SummaryRequest) (string, error) {
	m.request = req
	return m.summary, m.err
}

// mockIndexService serves GetArticle from a map.
type mockIndexService struct {
	driving.IndexService
	articles map[string]domain.Article
	err      error
}

func (m *mockIndexService) GetArticle(_ context.Context, id string) (*domain.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

// mockPreferenceService serves preferences and history.
type mockPreferenceService struct {
	driving.PreferenceService
	prefs   domain.UserPreferences
	history []domain.SearchHistoryEntry
}

func (m *mockPreferenceService) Preferences() domain.UserPreferences { return m.prefs }

func (m *mockPreferenceService) History(limit int) []domain.SearchHistoryEntry {
	return domain.RecentHistory(m.history, limit)
}
