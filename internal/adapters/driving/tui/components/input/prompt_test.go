package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/styles"
)

func TestNewPrompt(t *testing.T) {
	p := NewPrompt(styles.DefaultStyles(), "Search", "Enter a topic...")

	require.NotNil(t, p)
	assert.Equal(t, "", p.Value())
	assert.Equal(t, "Search", p.Label())
	assert.True(t, p.Focused())
}

func TestNewPrompt_NilStyles(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	require.NotNil(t, p)
	assert.NotNil(t, p.styles)
}

func TestPrompt_Init(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	assert.NotNil(t, p.Init())
}

func TestPrompt_Update_Typing(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	for _, r := range "hello" {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "hello", p.Value())
}

func TestPrompt_Update_Backspace(t *testing.T) {
	p := NewPrompt(nil, "Search", "")
	p.SetValue("test")

	p.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	assert.Equal(t, "tes", p.Value())
}

func TestPrompt_Value_Trimmed(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	p.SetValue("  climate policy  ")

	assert.Equal(t, "climate policy", p.Value())
}

func TestPrompt_View_ShowsLabel(t *testing.T) {
	p := NewPrompt(nil, "Similar to", "")

	assert.Contains(t, p.View(), "Similar to")
}

func TestPrompt_SetLabel(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	p.SetLabel("Language", "en")

	assert.Equal(t, "Language", p.Label())
	assert.Contains(t, p.View(), "Language")
}

func TestPrompt_FocusBlur(t *testing.T) {
	p := NewPrompt(nil, "Search", "")

	p.Blur()
	assert.False(t, p.Focused())

	cmd := p.Focus()
	assert.NotNil(t, cmd)
	assert.True(t, p.Focused())
}

func TestPrompt_Width(t *testing.T) {
	p := NewPrompt(nil, "Search", "")
	assert.Equal(t, 50, p.Width())

	p.SetWidth(100)
	assert.Equal(t, 100, p.Width())

	p.SetWidth(10)
	assert.Equal(t, 10, p.Width())
}

func TestPrompt_Reset(t *testing.T) {
	p := NewPrompt(nil, "Search", "")
	p.SetValue("some text")

	p.Reset()

	assert.Equal(t, "", p.Value())
}
