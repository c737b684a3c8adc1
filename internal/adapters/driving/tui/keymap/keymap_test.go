package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Keys(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"Quit", km.Quit, []string{"q", "ctrl+c"}},
		{"Back", km.Back, []string{"esc"}},
		{"Up", km.Up, []string{"up", "k"}},
		{"Down", km.Down, []string{"down", "j"}},
		{"Select", km.Select, []string{"enter"}},
		{"NewSearch", km.NewSearch, []string{"n"}},
		{"SummarizeAll", km.SummarizeAll, []string{"s"}},
		{"Similar", km.Similar, []string{"/"}},
		{"Brief", km.Brief, []string{"b"}},
		{"Detailed", km.Detailed, []string{"d"}},
		{"Add", km.Add, []string{"a"}},
		{"Remove", km.Remove, []string{"r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range tt.keys {
				assert.Contains(t, tt.binding.Keys(), k)
			}
			assert.NotEmpty(t, tt.binding.Help().Key, "binding should have help key")
		})
	}
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ShortHelp()

	require.Len(t, bindings, 2)
	assert.Equal(t, km.Back, bindings[0])
	assert.Equal(t, km.Quit, bindings[1])
}

func TestResultsHelp(t *testing.T) {
	km := DefaultKeyMap()

	bindings := km.ResultsHelp()

	assert.Len(t, bindings, 5)
	assert.Contains(t, bindings, km.SummarizeAll)
	assert.Contains(t, bindings, km.Similar)
}

func TestArticleHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []key.Binding{km.Brief, km.Detailed, km.Back}, km.ArticleHelp())
}

func TestTopicsHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.Equal(t, []key.Binding{km.Add, km.Remove, km.Back}, km.TopicsHelp())
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("/", km.Similar))
	assert.True(t, Matches("k", km.Up))

	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("down", km.Up))
	assert.False(t, Matches("B", km.Brief))
}
