// Package search provides the query prompt and article results view for the TUI.
package search

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
)

// SimilarK is the number of articles a similarity query returns.
const SimilarK = 5

type mode int

const (
	modeQuery   mode = iota // typing a search query
	modeList                // navigating results
	modeSimilar             // typing a similarity query
)

// View represents the search view with prompt, article list, summary and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	prompt    *input.Prompt
	list      *list.ArticleList
	statusbar *status.Bar

	session driving.SessionService
	ctx     context.Context

	mode    mode
	busy    bool
	query   string
	summary string
	width   int
	height  int
	ready   bool
	err     error
}

// NewView creates a new search view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		prompt:    input.NewPrompt(s, "Search", "Enter a topic, e.g. climate policy"),
		list:      list.NewArticleList(s),
		statusbar: status.NewBar(s, km),
		session:   session,
		ctx:       context.Background(),
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
	return v.prompt.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.SearchCompleted:
		v.handleSearchCompleted(msg)
		return v, nil

	case messages.SimilarCompleted:
		v.handleSimilarCompleted(msg)
		return v, nil

	case messages.SummaryCompleted:
		if msg.ArticleID != "" {
			return v, nil
		}
		v.busy = false
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		v.summary = msg.Summary
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetMessage(fmt.Sprintf("%s summary ready", msg.Mode))
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.setError(msg.Err)
		return v, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		v.statusbar, cmd = v.statusbar.Update(msg)
		return v, cmd
	}

	if v.mode != modeList {
		var cmd tea.Cmd
		v.prompt, cmd = v.prompt.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Ignore input while a request is in flight, except for leaving.
	if v.busy && msg.Type != tea.KeyEsc {
		return v, nil
	}

	switch v.mode {
	case modeQuery:
		return v.handleQueryKey(msg)
	case modeSimilar:
		return v.handleSimilarKey(msg)
	default:
		return v.handleListKey(msg)
	}
}

func (v *View) handleQueryKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if v.list.IsEmpty() {
			return v, changeView(messages.ViewMenu)
		}
		v.enterList()
		return v, nil
	case tea.KeyEnter:
		query := v.prompt.Value()
		if query == "" {
			v.setError(fmt.Errorf("%w: enter a search query", domain.ErrInvalidInput))
			return v, nil
		}
		return v, v.Search(query)
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) handleSimilarKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.enterList()
		return v, nil
	case tea.KeyEnter:
		text := v.prompt.Value()
		if text == "" {
			v.setError(fmt.Errorf("%w: enter text to compare against", domain.ErrInvalidInput))
			return v, nil
		}
		v.busy = true
		v.prompt.Blur()
		return v, tea.Batch(v.statusbar.Start("Finding similar articles..."), v.querySimilar(text))
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

func (v *View) handleListKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		// Leave similarity hits before leaving the view.
		if v.list.ShowingHits() {
			v.list.SetArticles(v.session.Results())
			v.statusbar.SetMessage("")
			return v, nil
		}
		return v, changeView(messages.ViewMenu)
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Up):
		v.list.MoveUp()
	case keymap.Matches(key, v.keymap.Down):
		v.list.MoveDown()
	case keymap.Matches(key, v.keymap.Select):
		return v, v.selectArticle()
	case keymap.Matches(key, v.keymap.SummarizeAll):
		if v.list.IsEmpty() || v.list.ShowingHits() {
			return v, nil
		}
		v.busy = true
		v.summary = ""
		return v, tea.Batch(v.statusbar.Start("Summarising all articles..."), v.summarizeAll())
	case keymap.Matches(key, v.keymap.Similar):
		v.mode = modeSimilar
		v.prompt.SetLabel("Similar to", "Describe what you are looking for")
		v.prompt.Reset()
		return v, v.prompt.Focus()
	case keymap.Matches(key, v.keymap.NewSearch):
		v.Reset()
		return v, v.prompt.Focus()
	}
	return v, nil
}

func (v *View) selectArticle() tea.Cmd {
	a := v.list.SelectedArticle()
	if a == nil {
		return nil
	}
	index := v.list.Selected()
	if v.list.ShowingHits() {
		index = -1
	}
	article := *a
	return func() tea.Msg {
		return messages.ArticleSelected{Index: index, Article: article}
	}
}

// Search starts a search for query and returns the command that runs it.
func (v *View) Search(query string) tea.Cmd {
	v.query = query
	v.mode = modeList
	v.busy = true
	v.summary = ""
	v.err = nil
	v.prompt.SetValue(query)
	v.prompt.Blur()
	return tea.Batch(v.statusbar.Start(fmt.Sprintf("Fetching news for %q...", query)), v.performSearch(query))
}

func (v *View) performSearch(query string) tea.Cmd {
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		if session == nil {
			return messages.ErrorOccurred{Err: ErrNoSessionService}
		}
		outcome, err := session.Search(ctx, query)
		return messages.SearchCompleted{Query: query, Outcome: outcome, Err: err}
	}
}

func (v *View) querySimilar(text string) tea.Cmd {
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		if session == nil {
			return messages.ErrorOccurred{Err: ErrNoSessionService}
		}
		hits, err := session.Similar(ctx, text, SimilarK)
		return messages.SimilarCompleted{Query: text, Hits: hits, Err: err}
	}
}

func (v *View) summarizeAll() tea.Cmd {
	ctx, session := v.ctx, v.session
	return func() tea.Msg {
		if session == nil {
			return messages.ErrorOccurred{Err: ErrNoSessionService}
		}
		mode := session.Preferences().Preferences().SummaryMode
		text, err := session.SummarizeAll(ctx)
		return messages.SummaryCompleted{Mode: mode, Summary: text, Err: err}
	}
}

func (v *View) handleSearchCompleted(msg messages.SearchCompleted) {
	v.busy = false
	if msg.Err != nil {
		v.mode = modeQuery
		v.prompt.Focus()
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.query = msg.Query
	v.list.SetArticles(msg.Outcome.Articles)
	v.enterList()
	v.statusbar.SetResultCount(len(msg.Outcome.Articles))

	switch {
	case msg.Outcome.IndexErr != nil:
		v.statusbar.SetState(status.StateWarning)
		v.statusbar.SetMessage("similarity search unavailable: " + msg.Outcome.IndexErr.Error())
	case msg.Outcome.HistoryErr != nil:
		v.statusbar.SetState(status.StateWarning)
		v.statusbar.SetMessage("history not saved: " + msg.Outcome.HistoryErr.Error())
	case len(msg.Outcome.Articles) == 0:
		v.statusbar.SetMessage(fmt.Sprintf("No articles found for %q", msg.Query))
	}
}

func (v *View) handleSimilarCompleted(msg messages.SimilarCompleted) {
	v.busy = false
	v.enterList()
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}
	v.err = nil
	v.list.SetHits(msg.Hits)
	v.statusbar.SetMessage(fmt.Sprintf("%d articles similar to %q (esc to return)", len(msg.Hits), msg.Query))
}

func (v *View) enterList() {
	v.mode = modeList
	v.prompt.Blur()
	v.prompt.SetLabel("Search", "Enter a topic, e.g. climate policy")
	v.prompt.SetValue(v.query)
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetHints(v.keymap.ResultsHelp())
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetError(err)
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// View renders the search view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 10)
	sections = append(sections, v.styles.Title.Render("newsum"), "", v.prompt.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render("Error: "+v.err.Error()), "")
	}

	if v.query != "" || !v.list.IsEmpty() {
		sections = append(sections, v.list.View())
	}

	if v.summary != "" {
		sections = append(sections, "",
			v.styles.Subtitle.Render("Summary"),
			v.styles.Summary.Width(max(v.width-4, 20)).Render(v.summary))
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.prompt.SetWidth(width)
	v.list.SetDimensions(width, height-10)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Query returns the last submitted query.
func (v *View) Query() string {
	return v.query
}

// Articles returns the articles currently listed.
func (v *View) Articles() []domain.Article {
	return v.list.Articles()
}

// SelectedIndex returns the index of the selected article.
func (v *View) SelectedIndex() int {
	return v.list.Selected()
}

// Summary returns the last summary of all results.
func (v *View) Summary() string {
	return v.summary
}

// Busy reports whether a request is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether a prompt has focus.
func (v *View) InputFocused() bool {
	return v.mode != modeList
}

// Reset returns the view to an empty query prompt.
func (v *View) Reset() {
	v.mode = modeQuery
	v.busy = false
	v.query = ""
	v.summary = ""
	v.err = nil
	v.prompt.SetLabel("Search", "Enter a topic, e.g. climate policy")
	v.prompt.Reset()
	v.prompt.Focus()
	v.list.SetArticles(nil)
	v.statusbar.Clear()
	v.statusbar.SetHints(v.keymap.ShortHelp())
}
