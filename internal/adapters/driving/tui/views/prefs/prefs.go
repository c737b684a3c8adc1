// Package prefs provides the preference editor view for the TUI.
package prefs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// ErrNoPreferenceService indicates that no preference service was provided.
var ErrNoPreferenceService = errors.New("preference service is required")

// Field identifies an editable preference.
type Field int

const (
	FieldSummaryMode Field = iota
	FieldArticlesPerTopic
	FieldLanguage
	fieldCount
)

// View edits the summary mode, articles per topic and language.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	prompt    *input.Prompt
	statusbar *status.Bar

	service driving.PreferenceService

	prefs    domain.UserPreferences
	selected Field
	editing  bool
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new preference editor.
func NewView(s *styles.Styles, service driving.PreferenceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	p := input.NewPrompt(s, "Value", "")
	p.Blur()

	return &View{
		styles:    s,
		keymap:    km,
		prompt:    p,
		statusbar: status.NewBar(s, km),
		service:   service,
		prefs:     domain.DefaultPreferences(),
		width:     80,
		height:    24,
	}
}

// Init reloads the current preferences.
func (v *View) Init() tea.Cmd {
	v.editing = false
	v.prompt.Blur()
	v.err = nil
	v.statusbar.SetError(nil)
	if v.service != nil {
		v.prefs = v.service.Preferences()
	}
	return nil
}

// Update handles messages for the preference editor.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKeyMsg(msg)

	case messages.PreferencesSaved:
		v.prefs = msg.Preferences
		switch {
		case errors.Is(msg.Err, domain.ErrPersistence):
			v.statusbar.SetState(status.StateWarning)
			v.statusbar.SetMessage("preferences not saved to disk")
		case msg.Err != nil:
			v.err = msg.Err
			v.statusbar.SetError(msg.Err)
		default:
			v.err = nil
			v.statusbar.SetState(status.StateReady)
			v.statusbar.SetMessage("Preferences saved")
		}
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return v, nil
	}

	if v.editing {
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
		if v.selected < fieldCount-1 {
			v.selected++
		}
	case keymap.Matches(pressed, v.keymap.Select), pressed == " ":
		return v, v.activate()
	}
	return v, nil
}

// activate toggles the summary mode or opens the prompt for other fields.
func (v *View) activate() tea.Cmd {
	switch v.selected {
	case FieldSummaryMode:
		mode := v.prefs.SummaryMode.Toggle()
		return v.save(func(s driving.PreferenceService) error {
			return s.SetSummaryMode(mode)
		})
	case FieldArticlesPerTopic:
		v.prompt.SetLabel("Articles per topic",
			fmt.Sprintf("%d-%d", domain.MinArticlesPerTopic, domain.MaxArticlesPerTopic))
		v.prompt.SetValue(strconv.Itoa(v.prefs.ArticlesPerTopic))
	case FieldLanguage:
		v.prompt.SetLabel("Language", "two-letter code, e.g. en")
		v.prompt.SetValue(v.prefs.Language)
	}
	v.editing = true
	return v.prompt.Focus()
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.editing = false
		v.prompt.Blur()
		return v, nil
	case tea.KeyEnter:
		cmd, err := v.submit(v.prompt.Value())
		if err != nil {
			v.err = err
			v.statusbar.SetError(err)
			return v, nil
		}
		v.editing = false
		v.prompt.Blur()
		return v, cmd
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// submit validates the prompt value before handing it to the service.
func (v *View) submit(value string) (tea.Cmd, error) {
	switch v.selected {
	case FieldArticlesPerTopic:
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", domain.ErrInvalidInput, value)
		}
		if err := domain.ValidateArticlesPerTopic(n); err != nil {
			return nil, err
		}
		return v.save(func(s driving.PreferenceService) error {
			return s.SetArticlesPerTopic(n)
		}), nil
	case FieldLanguage:
		lang := strings.ToLower(value)
		if err := domain.ValidateLanguage(lang); err != nil {
			return nil, err
		}
		return v.save(func(s driving.PreferenceService) error {
			return s.SetLanguage(lang)
		}), nil
	}
	return nil, nil
}

func (v *View) save(apply func(driving.PreferenceService) error) tea.Cmd {
	service := v.service
	return func() tea.Msg {
		if service == nil {
			return messages.ErrorOccurred{Err: ErrNoPreferenceService}
		}
		err := apply(service)
		return messages.PreferencesSaved{Preferences: service.Preferences(), Err: err}
	}
}

// View renders the preference editor.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Preferences"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Summary mode", v.prefs.SummaryMode.Description()},
		{"Articles per topic", strconv.Itoa(v.prefs.ArticlesPerTopic)},
		{"Language", v.prefs.Language},
	}
	for i, row := range rows {
		line := fmt.Sprintf("%-20s %s", row.label, row.value)
		if Field(i) == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(line))
		}
		b.WriteString("\n")
	}

	if v.editing {
		b.WriteString("\n")
		b.WriteString(v.prompt.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[enter] toggle/edit  [j/k] navigate  [esc] back"))
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

// Preferences returns the preferences as last loaded or saved.
func (v *View) Preferences() domain.UserPreferences {
	return v.prefs
}

// Selected returns the highlighted field.
func (v *View) Selected() Field {
	return v.selected
}

// Editing reports whether a value prompt is open.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
