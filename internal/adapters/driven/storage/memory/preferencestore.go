package memory

import (
	"slices"
	"sync"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// Ensure PreferenceStore implements the interface.
var _ driven.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore is an in-memory implementation of driven.PreferenceStore.
// FailSave makes Save return an error, for exercising the non-fatal persistence path.
type PreferenceStore struct {
	mu       sync.Mutex
	data     *domain.UserData
	FailSave error
}

// NewPreferenceStore creates an empty in-memory preference store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{}
}

// Load returns the saved document, or defaults when nothing was saved.
func (s *PreferenceStore) Load() (domain.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return domain.DefaultUserData(), nil
	}
	return cloneUserData(*s.data), nil
}

// Save stores a copy of the document.
func (s *PreferenceStore) Save(data domain.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSave != nil {
		return s.FailSave
	}
	c := cloneUserData(data)
	s.data = &c
	return nil
}

// Path returns a placeholder path.
func (s *PreferenceStore) Path() string {
	return ":memory:"
}

func cloneUserData(d domain.UserData) domain.UserData {
	d.Preferences.Topics = slices.Clone(d.Preferences.Topics)
	d.History = slices.Clone(d.History)
	return d
}
