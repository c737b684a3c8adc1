package topics

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

// mockPreferences keeps topics in memory and can fail persistence.
type mockPreferences struct {
	driving.PreferenceService
	prefs      domain.UserPreferences
	persistErr error
}

func newMockPreferences(topics ...string) *mockPreferences {
	p := domain.DefaultPreferences()
	for _, t := range topics {
		p.AddTopic(t)
	}
	return &mockPreferences{prefs: p}
}

func (m *mockPreferences) Preferences() domain.UserPreferences {
	out := m.prefs
	out.Topics = append([]string(nil), m.prefs.Topics...)
	return out
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

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newReadyView(prefs driving.PreferenceService, mode Mode) *View {
	v := NewView(nil, prefs, mode)
	v.SetDimensions(100, 30)
	v.Init()
	return v
}

func TestNewView(t *testing.T) {
	v := NewView(nil, nil, Browse)

	require.NotNil(t, v)
	assert.NotNil(t, v.styles)
	assert.Equal(t, "Initialising...", v.View())
}

func TestView_Init_LoadsTopics(t *testing.T) {
	v := newReadyView(newMockPreferences("AI", "Climate"), Browse)

	assert.Equal(t, []string{"AI", "Climate"}, v.Topics())
	view := v.View()
	assert.Contains(t, view, "Saved topics")
	assert.Contains(t, view, "1. AI")
	assert.Contains(t, view, "2. Climate")
}

func TestView_Browse_Empty(t *testing.T) {
	v := newReadyView(newMockPreferences(), Browse)

	assert.Contains(t, v.View(), "No saved topics yet")

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestView_Browse_SelectSearches(t *testing.T) {
	v := newReadyView(newMockPreferences("AI", "Climate"), Browse)

	v.Update(keyRunes("j"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.SearchRequested{Query: "Climate"}, cmd())
}

func TestView_Browse_IgnoresManageKeys(t *testing.T) {
	prefs := newMockPreferences("AI")
	v := newReadyView(prefs, Browse)

	_, cmd := v.Update(keyRunes("r"))
	assert.Nil(t, cmd)

	v.Update(keyRunes("a"))
	assert.False(t, v.Adding())
}

func TestView_Manage_AddTopic(t *testing.T) {
	prefs := newMockPreferences("AI")
	v := newReadyView(prefs, Manage)

	v.Update(keyRunes("a"))
	require.True(t, v.Adding())
	for _, r := range "Space" {
		v.Update(keyRunes(string(r)))
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, v.Adding())

	updated, ok := cmd().(messages.TopicsUpdated)
	require.True(t, ok)
	assert.NoError(t, updated.Err)

	v.Update(updated)
	assert.Equal(t, []string{"AI", "Space"}, v.Topics())
}

func TestView_Manage_AddEmptyTopic(t *testing.T) {
	v := newReadyView(newMockPreferences(), Manage)

	v.Update(keyRunes("a"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.True(t, v.Adding())
	assert.ErrorIs(t, v.Err(), domain.ErrInvalidInput)
}

func TestView_Manage_AddDuplicateTopic(t *testing.T) {
	v := newReadyView(newMockPreferences("AI"), Manage)

	v.Update(keyRunes("a"))
	v.Update(keyRunes("a"))
	v.Update(keyRunes("i"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Contains(t, v.View(), "already saved")
}

func TestView_Manage_AddCancelled(t *testing.T) {
	v := newReadyView(newMockPreferences(), Manage)

	v.Update(keyRunes("a"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.Nil(t, cmd)
	assert.False(t, v.Adding())
}

func TestView_Manage_RemoveTopic(t *testing.T) {
	prefs := newMockPreferences("AI", "Climate", "Sport")
	v := newReadyView(prefs, Manage)

	v.Update(keyRunes("j"))
	_, cmd := v.Update(keyRunes("r"))
	require.NotNil(t, cmd)

	v.Update(cmd())
	assert.Equal(t, []string{"AI", "Sport"}, v.Topics())
}

func TestView_Manage_RemoveLastKeepsSelectionInRange(t *testing.T) {
	v := newReadyView(newMockPreferences("AI", "Climate"), Manage)

	v.Update(keyRunes("j"))
	_, cmd := v.Update(keyRunes("r"))
	v.Update(cmd())

	topic, ok := v.SelectedTopic()
	require.True(t, ok)
	assert.Equal(t, "AI", topic)
}

func TestView_PersistenceFailureIsWarning(t *testing.T) {
	prefs := newMockPreferences()
	prefs.persistErr = fmt.Errorf("%w: read-only file system", domain.ErrPersistence)
	v := newReadyView(prefs, Manage)

	v.Update(keyRunes("a"))
	v.Update(keyRunes("x"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	v.Update(cmd())

	assert.NoError(t, v.Err())
	assert.Equal(t, []string{"x"}, v.Topics())
	assert.Contains(t, v.View(), "Warning")
}

func TestView_NilPreferences(t *testing.T) {
	v := newReadyView(nil, Manage)

	v.Update(keyRunes("a"))
	v.Update(keyRunes("x"))
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})

	failed, ok := cmd().(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, failed.Err, ErrNoPreferenceService)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	v := newReadyView(newMockPreferences(), Manage)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}
