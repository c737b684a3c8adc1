// Package article provides the article detail view with on-demand summaries.
package article

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// ErrNoSummarizer is returned when neither a session nor a summary service can summarise.
var ErrNoSummarizer = errors.New("summary service is required")

// View shows one article and its brief and detailed summaries.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar

	session driving.SessionService
	summary driving.SummaryService
	ctx     context.Context

	article   *domain.Article
	index     int
	summaries map[domain.SummaryMode]string
	pending   domain.SummaryMode

	lines        []string
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a new article view.
// Articles from the current results are summarised through session;
// other articles, such as similarity hits, through summary.
func NewView(s *styles.Styles, session driving.SessionService, summary driving.SummaryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	km := keymap.DefaultKeyMap()
	bar := status.NewBar(s, km)
	bar.SetHints(km.ArticleHelp())

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		session:   session,
		summary:   summary,
		ctx:       context.Background(),
		index:     -1,
		summaries: make(map[domain.SummaryMode]string),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetArticle shows a. index is its position in the session results, -1 otherwise.
func (v *View) SetArticle(index int, a domain.Article) {
	v.article = &a
	v.index = index
	v.summaries = make(map[domain.SummaryMode]string)
	v.pending = ""
	v.scrollOffset = 0
	v.err = nil
	v.statusbar.SetError(nil)
	v.layout()
}

// Update handles messages for the article view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SummaryCompleted:
		if v.article == nil || msg.ArticleID != v.article.ID {
			return v, nil
		}
		v.pending = ""
		if msg.Err != nil {
			v.err = msg.Err
			v.statusbar.SetError(msg.Err)
		} else {
			v.err = nil
			v.summaries[msg.Mode] = msg.Summary
			v.statusbar.SetState(status.StateReady)
			v.statusbar.SetMessage(fmt.Sprintf("%s summary ready", msg.Mode))
		}
		v.layout()
		return v, nil

	case messages.ErrorOccurred:
		v.pending = ""
		v.err = msg.Err
		v.statusbar.SetError(msg.Err)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearchResults}
		}
	case keymap.Matches(key, v.keymap.Brief):
		return v, v.requestSummary(domain.SummaryBrief)
	case keymap.Matches(key, v.keymap.Detailed):
		return v, v.requestSummary(domain.SummaryDetailed)
	case keymap.Matches(key, v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case key == "g":
		v.scrollOffset = 0
	case key == "G":
		v.scrollOffset = v.maxScrollOffset()
	}
	return v, nil
}

func (v *View) requestSummary(mode domain.SummaryMode) tea.Cmd {
	if v.article == nil || v.pending != "" {
		return nil
	}
	if _, ok := v.summaries[mode]; ok {
		return nil
	}
	v.pending = mode
	start := v.statusbar.Start(fmt.Sprintf("Generating %s summary...", mode))
	return tea.Batch(start, v.summarize(mode))
}

func (v *View) summarize(mode domain.SummaryMode) tea.Cmd {
	ctx, session, summary := v.ctx, v.session, v.summary
	index, a := v.index, *v.article
	return func() tea.Msg {
		var (
			text string
			err  error
		)
		switch {
		case index >= 0 && session != nil:
			text, err = session.SummarizeArticle(ctx, index, mode)
		case summary != nil:
			text, err = summary.Summarize(ctx, []domain.Article{a}, mode)
		default:
			err = ErrNoSummarizer
		}
		return messages.SummaryCompleted{ArticleID: a.ID, Mode: mode, Summary: text, Err: err}
	}
}

// layout renders the article body and summaries into wrapped lines.
func (v *View) layout() {
	if v.article == nil {
		v.lines = nil
		return
	}
	a := v.article
	width := max(v.width-4, 20)
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	meta := a.Source
	if a.Author != "" {
		meta += " | " + a.Author
	}
	if !a.PublishedAt.IsZero() {
		meta += " | " + a.PublishedAt.Format("2006-01-02 15:04")
	}
	b.WriteString(v.styles.Publisher.Render(meta))
	b.WriteString("\n")
	if a.URL != "" {
		b.WriteString(v.styles.Muted.Render(a.URL))
		b.WriteString("\n")
	}
	if a.Description != "" {
		b.WriteString("\n")
		b.WriteString(wrap.Render(a.Description))
		b.WriteString("\n")
	}
	if a.Content != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(wrap.Render(a.Content)))
		b.WriteString("\n")
	}

	for _, mode := range []domain.SummaryMode{domain.SummaryBrief, domain.SummaryDetailed} {
		text, ok := v.summaries[mode]
		if !ok {
			continue
		}
		b.WriteString("\n")
		b.WriteString(v.styles.Subtitle.Render(mode.Description()))
		b.WriteString("\n")
		b.WriteString(v.styles.Summary.Width(width - 2).Render(text))
		b.WriteString("\n")
	}

	v.lines = strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	v.scrollOffset = min(v.scrollOffset, v.maxScrollOffset())
}

func (v *View) visibleLines() int {
	// Title, separator, blank lines and status bar.
	return max(v.height-6, 1)
}

func (v *View) maxScrollOffset() int {
	return max(len(v.lines)-v.visibleLines(), 0)
}

// View renders the article view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}
	if v.article == nil {
		return v.styles.Muted.Render("No article selected") + "\n\n" + v.statusbar.View()
	}

	var b strings.Builder
	title := v.article.Title
	if title == "" {
		title = "(Untitled)"
	}
	b.WriteString(v.styles.Headline.Render(title))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(v.width-4, 60)))
	b.WriteString("\n")

	end := min(v.scrollOffset+v.visibleLines(), len(v.lines))
	for _, line := range v.lines[v.scrollOffset:end] {
		b.WriteString(line)
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
	v.statusbar.SetWidth(width)
	v.layout()
}

// Article returns the article being shown.
func (v *View) Article() *domain.Article {
	return v.article
}

// Summary returns the summary for mode, if generated.
func (v *View) Summary(mode domain.SummaryMode) (string, bool) {
	s, ok := v.summaries[mode]
	return s, ok
}

// Pending reports the mode being generated, empty when idle.
func (v *View) Pending() domain.SummaryMode {
	return v.pending
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
