// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/newsum/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the numbered main menu.
	ViewMenu ViewType = iota
	// ViewSearchResults is the query prompt and article list.
	ViewSearchResults
	// ViewArticleDetail shows one article and its summaries.
	ViewArticleDetail
	// ViewSavedTopics lists saved topics for searching.
	ViewSavedTopics
	// ViewTopicManager adds and removes saved topics.
	ViewTopicManager
	// ViewHistory lists recent searches.
	ViewHistory
	// ViewPreferences edits summary mode, fetch size and language.
	ViewPreferences
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewSearchResults:
		return "search_results"
	case ViewArticleDetail:
		return "article_detail"
	case ViewSavedTopics:
		return "saved_topics"
	case ViewTopicManager:
		return "topic_manager"
	case ViewHistory:
		return "history"
	case ViewPreferences:
		return "preferences"
	default:
		return "unknown"
	}
}

// SearchRequested asks the search view to run a query, e.g. a saved topic.
type SearchRequested struct {
	Query string
}

// SearchCompleted carries a search outcome back to the model.
type SearchCompleted struct {
	Query   string
	Outcome *domain.SearchOutcome
	Err     error
}

// ArticleSelected is sent when an article is opened from a list.
// Index is the position in the current results, -1 for similarity hits.
type ArticleSelected struct {
	Index   int
	Article domain.Article
}

// SummaryCompleted carries a generated summary.
// ArticleID is empty when all current results were summarised together.
type SummaryCompleted struct {
	ArticleID string
	Mode      domain.SummaryMode
	Summary   string
	Err       error
}

// SimilarCompleted carries the hits of a similarity query.
type SimilarCompleted struct {
	Query string
	Hits  []domain.ArticleHit
	Err   error
}

// TopicsUpdated signals saved topics changed.
// Err may wrap domain.ErrPersistence while Topics still reflects the change.
type TopicsUpdated struct {
	Topics []string
	Err    error
}

// PreferencesSaved signals a preference edit was applied.
type PreferencesSaved struct {
	Preferences domain.UserPreferences
	Err         error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
