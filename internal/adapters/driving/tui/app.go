package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/views/article"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/views/prefs"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/newsum/internal/adapters/driving/tui/views/topics"
	"github.com/custodia-labs/newsum/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView         *menu.View
	searchView       *search.View
	articleView      *article.View
	savedTopicsView  *topics.View
	topicManagerView *topics.View
	historyView      *history.View
	prefsView        *prefs.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:            ports,
		ctx:              context.Background(),
		styles:           s,
		menuView:         menu.NewView(s),
		searchView:       search.NewView(s, nil, ports.Session),
		articleView:      article.NewView(s, ports.Session, ports.Summary),
		savedTopicsView:  topics.NewView(s, ports.Preferences, topics.Browse),
		topicManagerView: topics.NewView(s, ports.Preferences, topics.Manage),
		historyView:      history.NewView(s, ports.Preferences),
		prefsView:        prefs.NewView(s, ports.Preferences),
		currentView:      messages.ViewMenu,
	}, nil
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.articleView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("newsum")
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.SearchRequested:
		a.currentView = messages.ViewSearchResults
		return a, a.searchView.Search(msg.Query)

	case messages.SearchCompleted, messages.SimilarCompleted:
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.ArticleSelected:
		a.articleView.SetArticle(msg.Index, msg.Article)
		a.currentView = messages.ViewArticleDetail
		return a, nil

	case messages.SummaryCompleted:
		if msg.ArticleID != "" {
			a.articleView, cmd = a.articleView.Update(msg)
			a.err = a.articleView.Err()
			return a, cmd
		}
		a.searchView, cmd = a.searchView.Update(msg)
		a.err = a.searchView.Err()
		return a, cmd

	case messages.TopicsUpdated:
		a.savedTopicsView.Update(msg)
		a.topicManagerView, cmd = a.topicManagerView.Update(msg)
		return a, cmd

	case messages.PreferencesSaved:
		a.prefsView, cmd = a.prefsView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.forward(msg)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward hands msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearchResults:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewArticleDetail:
		a.articleView, cmd = a.articleView.Update(msg)
	case messages.ViewSavedTopics:
		a.savedTopicsView, cmd = a.savedTopicsView.Update(msg)
	case messages.ViewTopicManager:
		a.topicManagerView, cmd = a.topicManagerView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewPreferences:
		a.prefsView, cmd = a.prefsView.Update(msg)
	}
	return cmd
}

// switchTo activates view, initialising it as needed.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	from := a.currentView
	a.currentView = view

	switch view {
	case messages.ViewSearchResults:
		// Returning from an article keeps the results.
		if from == messages.ViewArticleDetail {
			return nil
		}
		a.searchView.Reset()
		return a.searchView.Init()
	case messages.ViewSavedTopics:
		return a.savedTopicsView.Init()
	case messages.ViewTopicManager:
		return a.topicManagerView.Init()
	case messages.ViewHistory:
		return a.historyView.Init()
	case messages.ViewPreferences:
		return a.prefsView.Init()
	case messages.ViewMenu, messages.ViewArticleDetail:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearchResults:
		return a.searchView.View()
	case messages.ViewArticleDetail:
		return a.articleView.View()
	case messages.ViewSavedTopics:
		return a.savedTopicsView.View()
	case messages.ViewTopicManager:
		return a.topicManagerView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewPreferences:
		return a.prefsView.View()
	default:
		return a.menuView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// Query returns the last searched query.
func (a *App) Query() string {
	return a.searchView.Query()
}

// Results returns the articles listed in the search view.
func (a *App) Results() []domain.Article {
	return a.searchView.Articles()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.articleView.SetDimensions(width, height)
	a.savedTopicsView.SetDimensions(width, height)
	a.topicManagerView.SetDimensions(width, height)
	a.historyView.SetDimensions(width, height)
	a.prefsView.SetDimensions(width, height)
}
