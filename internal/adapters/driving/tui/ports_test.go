package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// MockSessionService implements driving.SessionService for testing.
type MockSessionService struct {
	SearchFunc func(ctx context.Context, query string) (*domain.SearchOutcome, error)
	Prefs      driving.PreferenceService

	results []domain.Article
	query   string
}

func (m *MockSessionService) Search(ctx context.Context, query string) (*domain.SearchOutcome, error) {
	if m.SearchFunc != nil {
		outcome, err := m.SearchFunc(ctx, query)
		if err == nil && outcome != nil {
			m.query = query
			m.results = outcome.Articles
		}
		return outcome, err
	}
	return &domain.SearchOutcome{}, nil
}

func (m *MockSessionService) Results() []domain.Article { return m.results }

func (m *MockSessionService) Query() string { return m.query }

func (m *MockSessionService) Similar(context.Context, string, int) ([]domain.ArticleHit, error) {
	return nil, nil
}

func (m *MockSessionService) SummarizeArticle(
	_ context.Context, index int, mode domain.SummaryMode,
) (string, error) {
	return mode.String() + " summary", nil
}

func (m *MockSessionService) SummarizeAll(context.Context) (string, error) {
	return "all results", nil
}

func (m *MockSessionService) Preferences() driving.PreferenceService { return m.Prefs }

// MockPreferenceService keeps preferences in memory.
type MockPreferenceService struct {
	driving.PreferenceService
	prefs domain.UserPreferences
}

func NewMockPreferenceService() *MockPreferenceService {
	return &MockPreferenceService{prefs: domain.DefaultPreferences()}
}

func (m *MockPreferenceService) Preferences() domain.UserPreferences { return m.prefs }

func (m *MockPreferenceService) History(int) []domain.SearchHistoryEntry { return nil }

func TestNewPorts(t *testing.T) {
	session := &MockSessionService{}

	ports := NewPorts(session, nil)

	require.NotNil(t, ports)
	assert.Equal(t, session, ports.Session)
	assert.Nil(t, ports.Summary)
	assert.Nil(t, ports.Preferences)
}

func TestPorts_Validate_FillsPreferencesFromSession(t *testing.T) {
	prefs := NewMockPreferenceService()
	ports := NewPorts(&MockSessionService{Prefs: prefs}, nil)

	require.NoError(t, ports.Validate())
	assert.Equal(t, prefs, ports.Preferences)
}

func TestPorts_Validate_KeepsExplicitPreferences(t *testing.T) {
	explicit := NewMockPreferenceService()
	ports := &Ports{
		Session:     &MockSessionService{Prefs: NewMockPreferenceService()},
		Preferences: explicit,
	}

	require.NoError(t, ports.Validate())
	assert.Same(t, explicit, ports.Preferences)
}

func TestPorts_Validate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{name: "nil ports", ports: nil, want: ErrInvalidPorts},
		{name: "missing session", ports: &Ports{}, want: ErrMissingSessionService},
		{
			name:  "session without preferences",
			ports: &Ports{Session: &MockSessionService{}},
			want:  ErrMissingPreferenceService,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.ports.Validate(), tt.want)
		})
	}
}
