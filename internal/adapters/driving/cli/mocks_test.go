package cli

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

var testArticles = []domain.Article{
	{
		ID:          "id-1",
		Title:       "Central bank holds rates",
		Source:      "Wire",
		Description: "Policy makers kept rates unchanged.",
		URL:         "https://example.com/rates",
		PublishedAt: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
	},
	{
		ID:     "id-2",
		Title:  "Markets rally",
		Source: "Daily",
		URL:    "https://example.com/markets",
	},
}

// mockSession implements driving.SessionService.
type mockSession struct {
	driving.SessionService
	outcome   *domain.SearchOutcome
	err       error
	lastQuery string
}

func (m *mockSession) Search(_ context.Context, query string) (*domain.SearchOutcome, error) {
	m.lastQuery = query
	if m.err != nil {
		return nil, m.err
	}
	return m.outcome, nil
}

// mockSummary implements driving.SummaryService.
type mockSummary struct {
	summary  string
	err      error
	articles []domain.Article
	request  domain.SummaryRequest
	mode     domain.SummaryMode
}

func (m *mockSummary) Summarize(_ context.Context, articles []domain.Article, mode domain.SummaryMode) (string, error) {
	m.articles = articles
	m.mode = mode
	return m.summary, m.err
}

func (m *mockSummary) SummarizeByID(_ context.Context, req domain.SummaryRequest) (string, error) {
	m.request = req
	m.mode = req.Mode
	return m.summary, m.err
}

// mockIndex implements driving.IndexService.
type mockIndex struct {
	driving.IndexService
	hits  []domain.ArticleHit
	err   error
	lastK int
}

func (m *mockIndex) QuerySimilar(_ context.Context, _ string, k int) ([]domain.ArticleHit, error) {
	m.lastK = k
	return m.hits, m.err
}

// mockPreferences implements driving.PreferenceService in memory.
type mockPreferences struct {
	driving.PreferenceService
	prefs      domain.UserPreferences
	history    []domain.SearchHistoryEntry
	persistErr error
}

func newMockPreferences() *mockPreferences {
	return &mockPreferences{prefs: domain.DefaultPreferences()}
}

func (m *mockPreferences) Preferences() domain.UserPreferences { return m.prefs }

func (m *mockPreferences) History(limit int) []domain.SearchHistoryEntry {
	return domain.RecentHistory(m.history, limit)
}

func (m *mockPreferences) UpdateTopics(add, remove []string) error {
	for _, t := range add {
		m.prefs.AddTopic(t)
	}
	for _, t := range remove {
		m.prefs.RemoveTopic(t)
	}
	return m.persistErr
}

func (m *mockPreferences) SetSummaryMode(mode domain.SummaryMode) error {
	m.prefs.SummaryMode = mode
	return m.persistErr
}

func (m *mockPreferences) SetArticlesPerTopic(n int) error {
	if err := domain.ValidateArticlesPerTopic(n); err != nil {
		return err
	}
	m.prefs.ArticlesPerTopic = n
	return m.persistErr
}

func (m *mockPreferences) SetLanguage(lang string) error {
	if err := domain.ValidateLanguage(lang); err != nil {
		return err
	}
	m.prefs.Language = lang
	return m.persistErr
}

func (m *mockPreferences) Path() string { return "/tmp/newsum/preferences.json" }

// mockSettings implements driving.SettingsService.
type mockSettings struct {
	driving.SettingsService
	settings domain.AppSettings
	set      map[string]string
}

func newMockSettings() *mockSettings {
	return &mockSettings{settings: domain.DefaultAppSettings(), set: map[string]string{}}
}

func (m *mockSettings) Get() (*domain.AppSettings, error) {
	s := m.settings
	return &s, nil
}

func (m *mockSettings) Set(key, value string) error {
	m.set[key] = value
	return nil
}

func (m *mockSettings) Keys() []string { return []string{"news.provider", "llm.model"} }

func (m *mockSettings) Validate() error { return nil }

// testServices is the set of mocks installed by setupTestServices.
type testServices struct {
	session  *mockSession
	summary  *mockSummary
	index    *mockIndex
	prefs    *mockPreferences
	settings *mockSettings
}

// setupTestServices installs mocks and returns a cleanup func.
func setupTestServices() (*testServices, func()) {
	ts := &testServices{
		session:  &mockSession{outcome: &domain.SearchOutcome{Articles: testArticles, Indexed: 2}},
		summary:  &mockSummary{summary: "Rates stayed put."},
		index:    &mockIndex{},
		prefs:    newMockPreferences(),
		settings: newMockSettings(),
	}
	SetServices(&Services{
		Session:     ts.session,
		Summary:     ts.summary,
		Index:       ts.index,
		Preferences: ts.prefs,
		Settings:    ts.settings,
	})
	return ts, func() {
		SetServices(nil)
		resetFlags()
	}
}

// resetFlags restores flag variables cobra keeps between executions.
func resetFlags() {
	searchJSON = false
	searchSummarize = ""
	similarK = 5
	similarFetch = ""
	similarJSON = false
	summarizeMode = ""
	summarizeQuery = ""
	historyLimit = domain.DefaultHistoryLimit
	mcpHTTPAddr = ""
}

// execute runs the root command with args and returns stdout and stderr.
func execute(args ...string) (string, string, error) {
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
