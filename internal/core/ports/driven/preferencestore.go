package driven

import "github.com/custodia-labs/newsum/internal/core/domain"

// PreferenceStore persists user preferences and search history as one document.
type PreferenceStore interface {
	// Load reads the document. A missing document yields defaults and no error.
	// An unreadable document yields defaults and an error wrapping domain.ErrPersistence.
	Load() (domain.UserData, error)

	// Save overwrites the document atomically.
	Save(data domain.UserData) error

	// Path returns where the document lives, for display.
	Path() string
}
