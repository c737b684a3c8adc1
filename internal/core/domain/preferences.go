package domain

import (
	"fmt"
	"strings"
	"time"
)

// Preference limits.
const (
	MinArticlesPerTopic     = 1
	MaxArticlesPerTopic     = 20
	DefaultArticlesPerTopic = 5
	DefaultLanguage         = "en"
)

// UserPreferences holds the user's saved topics and summary settings.
type UserPreferences struct {
	// Topics is an insertion-ordered set, unique case-insensitively.
	Topics []string

	// SummaryMode is the default summarisation strategy.
	SummaryMode SummaryMode

	// ArticlesPerTopic is how many articles a search fetches (1-20).
	ArticlesPerTopic int

	// Language is a two-letter ISO 639-1 code.
	Language string
}

// DefaultPreferences returns the preferences used before anything is saved.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Topics:           []string{},
		SummaryMode:      SummaryBrief,
		ArticlesPerTopic: DefaultArticlesPerTopic,
		Language:         DefaultLanguage,
	}
}

// HasTopic reports whether topic is already saved, ignoring case.
func (p UserPreferences) HasTopic(topic string) bool {
	topic = strings.TrimSpace(topic)
	for _, t := range p.Topics {
		if strings.EqualFold(t, topic) {
			return true
		}
	}
	return false
}

// AddTopic appends a topic unless it is empty or already present.
// It reports whether the set changed.
func (p *UserPreferences) AddTopic(topic string) bool {
	topic = strings.TrimSpace(topic)
	if topic == "" || p.HasTopic(topic) {
		return false
	}
	p.Topics = append(p.Topics, topic)
	return true
}

// RemoveTopic removes a topic, ignoring case. It reports whether the set changed.
func (p *UserPreferences) RemoveTopic(topic string) bool {
	topic = strings.TrimSpace(topic)
	for i, t := range p.Topics {
		if strings.EqualFold(t, topic) {
			p.Topics = append(p.Topics[:i:i], p.Topics[i+1:]...)
			return true
		}
	}
	return false
}

// Normalize repairs out-of-range fields with defaults and drops duplicate topics.
func (p UserPreferences) Normalize() UserPreferences {
	d := DefaultPreferences()
	out := UserPreferences{
		Topics:           []string{},
		SummaryMode:      p.SummaryMode,
		ArticlesPerTopic: p.ArticlesPerTopic,
		Language:         strings.ToLower(strings.TrimSpace(p.Language)),
	}
	for _, t := range p.Topics {
		out.AddTopic(t)
	}
	if !out.SummaryMode.IsValid() {
		out.SummaryMode = d.SummaryMode
	}
	if ValidateArticlesPerTopic(out.ArticlesPerTopic) != nil {
		out.ArticlesPerTopic = d.ArticlesPerTopic
	}
	if ValidateLanguage(out.Language) != nil {
		out.Language = d.Language
	}
	return out
}

// ValidateArticlesPerTopic checks n is within the allowed range.
func ValidateArticlesPerTopic(n int) error {
	if n < MinArticlesPerTopic || n > MaxArticlesPerTopic {
		return fmt.Errorf("%w: articles per topic must be between %d and %d",
			ErrInvalidInput, MinArticlesPerTopic, MaxArticlesPerTopic)
	}
	return nil
}

// ValidateLanguage checks lang is a two-letter lowercase code.
func ValidateLanguage(lang string) error {
	if len(lang) != 2 || lang[0] < 'a' || lang[0] > 'z' || lang[1] < 'a' || lang[1] > 'z' {
		return fmt.Errorf("%w: language must be a 2-letter code", ErrInvalidInput)
	}
	return nil
}

// SearchHistoryEntry records one news search.
type SearchHistoryEntry struct {
	Query      string
	Timestamp  time.Time
	NumResults int
}

// String renders the entry as [date] 'query' (N results).
func (e SearchHistoryEntry) String() string {
	return fmt.Sprintf("[%s] '%s' (%d results)", e.Timestamp.Format("2006-01-02"), e.Query, e.NumResults)
}

// DefaultHistoryLimit is the number of entries shown by history listings.
const DefaultHistoryLimit = 10

// DefaultMaxHistoryEntries is the retention cap for search history.
const DefaultMaxHistoryEntries = 50

// AppendHistory appends entry and evicts the oldest entries beyond max.
// A non-positive max disables eviction.
func AppendHistory(history []SearchHistoryEntry, entry SearchHistoryEntry, max int) []SearchHistoryEntry {
	history = append(history, entry)
	if max > 0 && len(history) > max {
		history = append([]SearchHistoryEntry(nil), history[len(history)-max:]...)
	}
	return history
}

// RecentHistory returns the last limit entries, oldest first.
func RecentHistory(history []SearchHistoryEntry, limit int) []SearchHistoryEntry {
	if limit <= 0 || limit >= len(history) {
		return append([]SearchHistoryEntry(nil), history...)
	}
	return append([]SearchHistoryEntry(nil), history[len(history)-limit:]...)
}

// UserData is the persisted preference document: preferences plus history.
type UserData struct {
	Preferences UserPreferences
	History     []SearchHistoryEntry
}

// DefaultUserData returns default preferences and an empty history.
func DefaultUserData() UserData {
	return UserData{Preferences: DefaultPreferences(), History: []SearchHistoryEntry{}}
}
