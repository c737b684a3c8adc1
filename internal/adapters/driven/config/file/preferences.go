package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// Ensure PreferenceStore implements the interface.
var _ driven.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceFileName is the name of the preference document.
const PreferenceFileName = "user_data.json"

// PreferenceStore keeps preferences and search history in a single JSON file.
// Writes go to a temp file in the same directory which is then renamed over
// the target, so a crash never leaves a half-written document.
type PreferenceStore struct {
	path string
}

// NewPreferenceStore creates a store at dataDir/user_data.json.
// If dataDir is empty, defaults to $XDG_DATA_HOME/newsum.
func NewPreferenceStore(dataDir string) *PreferenceStore {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}
	return &PreferenceStore{path: filepath.Join(dataDir, PreferenceFileName)}
}

type userDataJSON struct {
	Preferences   preferencesJSON `json:"preferences"`
	SearchHistory []historyJSON   `json:"search_history"`
}

type preferencesJSON struct {
	Topics           []string `json:"topics"`
	SummaryType      string   `json:"summary_type"`
	Language         string   `json:"language"`
	ArticlesPerTopic int      `json:"articles_per_topic"`
}

type historyJSON struct {
	Query      string    `json:"query"`
	Timestamp  timestamp `json:"timestamp"`
	NumResults int       `json:"num_results"`
}

// timestamp accepts RFC 3339 and zone-less ISO 8601 values.
type timestamp time.Time

// zone-less ISO 8601 layout, read as local time
const isoLocalLayout = "2006-01-02T15:04:05.999999999"

func (t timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(t).Format(time.RFC3339Nano))
}

func (t *timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*t = timestamp(parsed)
		return nil
	}
	parsed, err := time.ParseInLocation(isoLocalLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("timestamp %q: %w", s, err)
	}
	*t = timestamp(parsed)
	return nil
}

// Load reads the document. A missing file yields defaults and no error.
// An unreadable or corrupt file yields defaults and an error wrapping domain.ErrPersistence.
func (s *PreferenceStore) Load() (domain.UserData, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultUserData(), nil
		}
		return domain.DefaultUserData(), fmt.Errorf("%w: read %s: %w", domain.ErrPersistence, s.path, err)
	}

	var doc userDataJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.DefaultUserData(), fmt.Errorf("%w: parse %s: %w", domain.ErrPersistence, s.path, err)
	}

	out := domain.UserData{
		Preferences: domain.UserPreferences{
			Topics:           doc.Preferences.Topics,
			SummaryMode:      domain.SummaryMode(strings.ToLower(doc.Preferences.SummaryType)),
			ArticlesPerTopic: doc.Preferences.ArticlesPerTopic,
			Language:         doc.Preferences.Language,
		}.Normalize(),
		History: make([]domain.SearchHistoryEntry, 0, len(doc.SearchHistory)),
	}
	for _, h := range doc.SearchHistory {
		out.History = append(out.History, domain.SearchHistoryEntry{
			Query:      h.Query,
			Timestamp:  time.Time(h.Timestamp),
			NumResults: h.NumResults,
		})
	}
	return out, nil
}

// Save overwrites the document atomically.
func (s *PreferenceStore) Save(data domain.UserData) error {
	doc := userDataJSON{
		Preferences: preferencesJSON{
			Topics:           data.Preferences.Topics,
			SummaryType:      data.Preferences.SummaryMode.String(),
			Language:         data.Preferences.Language,
			ArticlesPerTopic: data.Preferences.ArticlesPerTopic,
		},
		SearchHistory: make([]historyJSON, 0, len(data.History)),
	}
	if doc.Preferences.Topics == nil {
		doc.Preferences.Topics = []string{}
	}
	for _, h := range data.History {
		doc.SearchHistory = append(doc.SearchHistory, historyJSON{
			Query:      h.Query,
			Timestamp:  timestamp(h.Timestamp),
			NumResults: h.NumResults,
		})
	}

	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrPersistence, err)
	}
	if err := writeFileAtomic(s.path, encoded, 0600); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrPersistence, s.path, err)
	}
	return nil
}

// Path returns the document path.
func (s *PreferenceStore) Path() string {
	return s.path
}

// writeFileAtomic writes data to a temp file next to path, syncs it and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op once renamed
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
