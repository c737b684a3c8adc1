// Package topics provides the saved topics list and topic manager views.
package topics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// Mode selects what the view lets the user do with topics.
type Mode int

const (
	// Browse lists topics; selecting one searches for it.
	Browse Mode = iota
	// Manage adds and removes topics.
	Manage
)

// View lists saved topics.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	prompt    *input.Prompt
	statusbar *status.Bar

	prefs driving.PreferenceService
	mode  Mode

	topics   []string
	selected int
	adding   bool
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a topics view in the given mode.
func NewView(s *styles.Styles, prefs driving.PreferenceService, mode Mode) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	if mode == Manage {
		bar.SetHints(km.TopicsHelp())
	} else {
		bar.SetHints(append([]key.Binding{km.Select}, km.ShortHelp()...))
	}

	p := input.NewPrompt(s, "New topic", "e.g. renewable energy")
	p.Blur()

	return &View{
		styles:    s,
		keymap:    km,
		prompt:    p,
		statusbar: bar,
		prefs:     prefs,
		mode:      mode,
		width:     80,
		height:    24,
	}
}

// Init reloads the topics from preferences.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh reloads the topic list and resets transient state.
func (v *View) Refresh() {
	v.adding = false
	v.prompt.Reset()
	v.prompt.Blur()
	v.err = nil
	v.statusbar.SetError(nil)
	if v.prefs == nil {
		v.setTopics(nil)
		return
	}
	v.setTopics(v.prefs.Preferences().Topics)
}

func (v *View) setTopics(topics []string) {
	v.topics = topics
	if v.selected >= len(v.topics) {
		v.selected = max(len(v.topics)-1, 0)
	}
}

// Update handles messages for the topics view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.adding {
			return v.handleAddKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.TopicsUpdated:
		v.setTopics(msg.Topics)
		switch {
		case errors.Is(msg.Err, domain.ErrPersistence):
			v.statusbar.SetState(status.StateWarning)
			v.statusbar.SetMessage("topics not saved to disk")
		case msg.Err != nil:
			v.err = msg.Err
			v.statusbar.SetError(msg.Err)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	if v.adding {
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	pressed := msg.String()
	switch {
	case keymap.Matches(pressed, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(pressed, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(pressed, v.keymap.Down):
		if v.selected < len(v.topics)-1 {
			v.selected++
		}
	case keymap.Matches(pressed, v.keymap.Select) && v.mode == Browse:
		topic, ok := v.SelectedTopic()
		if !ok {
			return v, nil
		}
		return v, func() tea.Msg {
			return messages.SearchRequested{Query: topic}
		}
	case keymap.Matches(pressed, v.keymap.Add) && v.mode == Manage:
		v.adding = true
		v.prompt.Reset()
		return v, v.prompt.Focus()
	case keymap.Matches(pressed, v.keymap.Remove) && v.mode == Manage:
		topic, ok := v.SelectedTopic()
		if !ok {
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf("Removed %q", topic))
		return v, v.update(nil, []string{topic})
	}
	return v, nil
}

func (v *View) handleAddKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.adding = false
		v.prompt.Blur()
		return v, nil
	case tea.KeyEnter:
		topic := v.prompt.Value()
		if topic == "" {
			v.err = fmt.Errorf("%w: topic cannot be empty", domain.ErrInvalidInput)
			v.statusbar.SetError(v.err)
			return v, nil
		}
		v.adding = false
		v.prompt.Blur()
		v.err = nil
		if v.hasTopic(topic) {
			v.statusbar.SetState(status.StateReady)
			v.statusbar.SetMessage(fmt.Sprintf("%q is already saved", topic))
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf("Added %q", topic))
		return v, v.update([]string{topic}, nil)
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// update persists a topic change and reports the resulting list.
func (v *View) update(add, remove []string) tea.Cmd {
	prefs := v.prefs
	return func() tea.Msg {
		if prefs == nil {
			return messages.ErrorOccurred{Err: ErrNoPreferenceService}
		}
		err := prefs.UpdateTopics(add, remove)
		return messages.TopicsUpdated{Topics: prefs.Preferences().Topics, Err: err}
	}
}

func (v *View) hasTopic(topic string) bool {
	for _, t := range v.topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}

// View renders the topics view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	title := "Saved topics"
	if v.mode == Manage {
		title = "Manage topics"
	}
	b.WriteString(v.styles.Title.Render(title))
	b.WriteString("\n\n")

	if len(v.topics) == 0 {
		hint := "No saved topics yet."
		if v.mode == Browse {
			hint += " Add some from Manage topics."
		} else {
			hint += " Press a to add one."
		}
		b.WriteString(v.styles.Muted.Render(hint))
		b.WriteString("\n")
	}

	for i, t := range v.topics {
		line := fmt.Sprintf("%d. %s", i+1, t)
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if v.adding {
		b.WriteString("\n")
		b.WriteString(v.prompt.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.statusbar.View())
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.prompt.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Topics returns the listed topics.
func (v *View) Topics() []string {
	return v.topics
}

// SelectedTopic returns the highlighted topic.
func (v *View) SelectedTopic() (string, bool) {
	if v.selected < 0 || v.selected >= len(v.topics) {
		return "", false
	}
	return v.topics[v.selected], true
}

// Adding reports whether the new-topic prompt is open.
func (v *View) Adding() bool {
	return v.adding
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
