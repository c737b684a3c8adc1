// Package history provides the recent search history view for the TUI.
package history

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// View lists the most recent searches, oldest first.
type View struct {
	styles *styles.Styles
	prefs  driving.PreferenceService
	limit  int

	entries []domain.SearchHistoryEntry
	width   int
	height  int
	ready   bool
}

// NewView creates a history view showing the last domain.DefaultHistoryLimit entries.
func NewView(s *styles.Styles, prefs driving.PreferenceService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		prefs:  prefs,
		limit:  domain.DefaultHistoryLimit,
		width:  80,
		height: 24,
	}
}

// Init reloads the entries.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh reloads the entries from preferences.
func (v *View) Refresh() {
	if v.prefs == nil {
		v.entries = nil
		return
	}
	v.entries = v.prefs.History(v.limit)
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
	}
	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Recent searches"))
	b.WriteString("\n\n")

	if len(v.entries) == 0 {
		b.WriteString(v.styles.Muted.Render("No searches yet."))
		b.WriteString("\n")
	}
	for _, e := range v.entries {
		b.WriteString("  ")
		b.WriteString(v.styles.Normal.Render(e.String()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Entries returns the listed entries.
func (v *View) Entries() []domain.SearchHistoryEntry {
	return v.entries
}
