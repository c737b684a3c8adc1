package driving

import "github.com/custodia-labs/newsum/internal/core/domain"

// PreferenceService manages saved topics, summary preferences and search history.
// Every mutation persists; persistence failures wrap domain.ErrPersistence but
// the in-memory state is still updated.
type PreferenceService interface {
	// Load reads preferences and history from storage into memory.
	Load() (domain.UserData, error)

	// Save replaces preferences and history and persists them.
	Save(data domain.UserData) error

	// Preferences returns a copy of the current preferences.
	Preferences() domain.UserPreferences

	// History returns the last limit entries, oldest first. Non-positive limit returns all.
	History(limit int) []domain.SearchHistoryEntry

	// AddHistoryEntry records a search.
	AddHistoryEntry(query string, numResults int) error

	// UpdateTopics adds and removes topics. Duplicates are matched ignoring
	// case and the first saved casing wins.
	UpdateTopics(add, remove []string) error

	// SetSummaryMode sets the default summary mode.
	SetSummaryMode(mode domain.SummaryMode) error

	// SetArticlesPerTopic sets the fetch size (1-20).
	SetArticlesPerTopic(n int) error

	// SetLanguage sets the two-letter language code.
	SetLanguage(lang string) error

	// Path returns where preferences are stored.
	Path() string
}
