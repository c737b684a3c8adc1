package prefs

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// mockPreferences keeps preferences in memory and can fail persistence.
type mockPreferences struct {
	driving.PreferenceService
	prefs      domain.UserPreferences
	persistErr error
}

func newMockPreferences() *mockPreferences {
	return &mockPreferences{prefs: domain.DefaultPreferences()}
}

func (m *mockPreferences) Preferences() domain.UserPreferences { return m.prefs }

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
	m.prefs.Language = lang
	return m.persistErr
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newReadyView(service driving.PreferenceService) *View {
	v := NewView(nil, service)
	v.SetDimensions(100, 30)
	v.Init()
	return v
}

// replaceInput clears the prompt and types value.
func replaceInput(v *View, value string) {
	v.prompt.SetValue("")
	for _, r := range value {
		v.Update(keyRunes(string(r)))
	}
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil)

	require.NotNil(t, v)
	assert.Equal(t, domain.DefaultPreferences(), v.Preferences())
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_ShowsPreferences(t *testing.T) {
	service := newMockPreferences()
	service.prefs.Language = "de"
	v := newReadyView(service)

	view := v.View()

	assert.Contains(t, view, "Brief (1-2 sentences)")
	assert.Contains(t, view, "Articles per topic")
	assert.Contains(t, view, "de")
}

func TestView_ToggleSummaryMode(t *testing.T) {
	service := newMockPreferences()
	v := newReadyView(service)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, v.Editing())

	saved, ok := cmd().(messages.PreferencesSaved)
	require.True(t, ok)
	v.Update(saved)

	assert.Equal(t, domain.SummaryDetailed, v.Preferences().SummaryMode)
	assert.Contains(t, v.View(), "Preferences saved")
}

func TestView_EditArticlesPerTopic(t *testing.T) {
	service := newMockPreferences()
	v := newReadyView(service)

	v.Update(keyRunes("j"))
	assert.Equal(t, FieldArticlesPerTopic, v.Selected())

	v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, v.Editing())
	assert.Equal(t, "5", v.prompt.Value())

	replaceInput(v, "12")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.False(t, v.Editing())
	assert.Equal(t, 12, v.Preferences().ArticlesPerTopic)
}

func TestView_EditArticlesPerTopic_Invalid(t *testing.T) {
	tests := []string{"0", "21", "many"}

	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			service := newMockPreferences()
			v := newReadyView(service)
			v.Update(keyRunes("j"))
			v.Update(tea.KeyMsg{Type: tea.KeyEnter})

			replaceInput(v, value)
			_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

			assert.Nil(t, cmd)
			assert.True(t, v.Editing(), "prompt stays open")
			assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
			assert.Equal(t, domain.DefaultArticlesPerTopic, service.prefs.ArticlesPerTopic)
		})
	}
}

func TestView_EditLanguage_Lowercased(t *testing.T) {
	service := newMockPreferences()
	v := newReadyView(service)
	v.Update(keyRunes("j"))
	v.Update(keyRunes("j"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	replaceInput(v, "FR")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.Equal(t, "fr", v.Preferences().Language)
}

func TestView_EditLanguage_Invalid(t *testing.T) {
	v := newReadyView(newMockPreferences())
	v.Update(keyRunes("j"))
	v.Update(keyRunes("j"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	replaceInput(v, "eng")
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
}

func TestView_EditCancelled(t *testing.T) {
	v := newReadyView(newMockPreferences())
	v.Update(keyRunes("j"))
	v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, v.Editing())
}

func TestView_PersistenceFailureIsWarning(t *testing.T) {
	service := newMockPreferences()
	service.persistErr = fmt.Errorf("%w: disk full", domain.ErrPersistence)
	v := newReadyView(service)

	_, cmd := v.Update(keyRunes(" "))
	v.Update(cmd())

	assert.NoError(t, v.Err())
	assert.Equal(t, domain.SummaryDetailed, v.Preferences().SummaryMode)
	assert.Contains(t, v.View(), "Warning")
}

func TestView_NilService(t *testing.T) {
	v := newReadyView(nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	failed, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)

	v.Update(failed)
	assert.ErrorIs(t, v.Err(), ErrNoPreferenceService)
}

func TestView_Navigation_Bounds(t *testing.T) {
	v := newReadyView(newMockPreferences())

	v.Update(keyRunes("k"))
	assert.Equal(t, FieldSummaryMode, v.Selected())

	for i := 0; i < 5; i++ {
		v.Update(keyRunes("j"))
	}
	assert.Equal(t, FieldLanguage, v.Selected())
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := newReadyView(newMockPreferences())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
