package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
	"github.com/custodia-labs/newsum/internal/logger"
)

// Ensure PreferenceService implements the interface.
var _ driving.PreferenceService = (*PreferenceService)(nil)

// PreferenceService holds user preferences and search history in memory
// and persists them on every mutation. Persistence failures are
// returned wrapped in ErrPersistence but never roll back in-memory state.
type PreferenceService struct {
	mu         sync.RWMutex
	store      driven.PreferenceStore
	data       domain.UserData
	maxHistory int
	now        func() time.Time
}

// NewPreferenceService creates a preference service and loads the stored data.
// A load failure leaves defaults in place and is returned for the caller to report.
func NewPreferenceService(store driven.PreferenceStore, maxHistory int) (*PreferenceService, error) {
	if maxHistory <= 0 {
		maxHistory = domain.DefaultMaxHistoryEntries
	}
	s := &PreferenceService{
		store:      store,
		data:       domain.DefaultUserData(),
		maxHistory: maxHistory,
		now:        time.Now,
	}
	_, err := s.Load()
	return s, err
}

// Load reads preferences and history from the store.
func (s *PreferenceService) Load() (domain.UserData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.store.Load()
	if err != nil {
		logger.Warn("Loading preferences failed, using defaults: %v", err)
		s.data = domain.DefaultUserData()
		return s.snapshot(), persistenceErr(err)
	}

	data.Preferences = data.Preferences.Normalize()
	if data.History == nil {
		data.History = []domain.SearchHistoryEntry{}
	}
	if len(data.History) > s.maxHistory {
		data.History = domain.RecentHistory(data.History, s.maxHistory)
	}
	s.data = data
	logger.Debug("Loaded preferences: %d topics, %d history entries", len(data.Preferences.Topics), len(data.History))
	return s.snapshot(), nil
}

// Save replaces the in-memory state and persists it.
func (s *PreferenceService) Save(data domain.UserData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data.Preferences = data.Preferences.Normalize()
	data.History = domain.RecentHistory(data.History, s.maxHistory)
	s.data = data
	return s.persist()
}

// Preferences returns a copy of the current preferences.
func (s *PreferenceService) Preferences() domain.UserPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPreferences(s.data.Preferences)
}

// History returns up to limit most recent entries, oldest first.
// A limit of zero or less returns everything.
func (s *PreferenceService) History(limit int) []domain.SearchHistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.RecentHistory(s.data.History, limit)
}

// AddHistoryEntry records a search.
func (s *PreferenceService) AddHistoryEntry(query string, numResults int) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.History = domain.AppendHistory(s.data.History, domain.SearchHistoryEntry{
		Query:      query,
		Timestamp:  s.now(),
		NumResults: numResults,
	}, s.maxHistory)
	return s.persist()
}

// UpdateTopics adds then removes topics. Matching is case-insensitive and
// adding an existing topic is a no-op, so the casing saved first is kept:
// after adding "AI", adding "ai" leaves "AI".
func (s *PreferenceService) UpdateTopics(add, remove []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, t := range add {
		if s.data.Preferences.AddTopic(t) {
			changed = true
		}
	}
	for _, t := range remove {
		if s.data.Preferences.RemoveTopic(t) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.persist()
}

// SetSummaryMode sets the preferred summary mode.
func (s *PreferenceService) SetSummaryMode(mode domain.SummaryMode) error {
	if !mode.IsValid() {
		return fmt.Errorf("%w: unknown summary mode %q", domain.ErrInvalidInput, mode)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Preferences.SummaryMode = mode
	return s.persist()
}

// SetArticlesPerTopic sets how many articles a search fetches.
func (s *PreferenceService) SetArticlesPerTopic(n int) error {
	if err := domain.ValidateArticlesPerTopic(n); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Preferences.ArticlesPerTopic = n
	return s.persist()
}

// SetLanguage sets the article language as a lowercase 2-letter code.
func (s *PreferenceService) SetLanguage(lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if err := domain.ValidateLanguage(lang); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Preferences.Language = lang
	return s.persist()
}

// Path returns the location of the preferences file.
func (s *PreferenceService) Path() string {
	return s.store.Path()
}

// persist writes the current state. Caller must hold the write lock.
func (s *PreferenceService) persist() error {
	if err := s.store.Save(s.snapshot()); err != nil {
		logger.Warn("Saving preferences failed: %v", err)
		return persistenceErr(err)
	}
	return nil
}

func (s *PreferenceService) snapshot() domain.UserData {
	return domain.UserData{
		Preferences: copyPreferences(s.data.Preferences),
		History:     domain.RecentHistory(s.data.History, 0),
	}
}

func copyPreferences(p domain.UserPreferences) domain.UserPreferences {
	p.Topics = append([]string{}, p.Topics...)
	return p
}

func persistenceErr(err error) error {
	if errors.Is(err, domain.ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
}
