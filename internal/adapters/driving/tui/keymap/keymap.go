// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up navigates up in a list.
	Up key.Binding

	// Down navigates down in a list.
	Down key.Binding

	// Select confirms a selection or submits a prompt.
	Select key.Binding

	// NewSearch starts a new search from the results view.
	NewSearch key.Binding

	// SummarizeAll summarises every current result in the preferred mode.
	SummarizeAll key.Binding

	// Similar prompts for a semantic similarity query.
	Similar key.Binding

	// Brief requests a brief summary of the open article.
	Brief key.Binding

	// Detailed requests a detailed summary of the open article.
	Detailed key.Binding

	// Add adds a topic.
	Add key.Binding

	// Remove removes the selected topic.
	Remove key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new search"),
		),
		SummarizeAll: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "summarise all"),
		),
		Similar: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "similar"),
		),
		Brief: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "brief"),
		),
		Detailed: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "detailed"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Remove: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "remove"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Select, k.SummarizeAll, k.Similar, k.NewSearch, k.Back}
}

// ArticleHelp returns keybindings for the article detail view.
func (k *KeyMap) ArticleHelp() []key.Binding {
	return []key.Binding{k.Brief, k.Detailed, k.Back}
}

// TopicsHelp returns keybindings for the topic manager.
func (k *KeyMap) TopicsHelp() []key.Binding {
	return []key.Binding{k.Add, k.Remove, k.Back}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
