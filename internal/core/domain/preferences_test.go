package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUserPreferences_AddTopic(t *testing.T) {
	p := DefaultPreferences()

	assert.True(t, p.AddTopic("AI"))
	assert.False(t, p.AddTopic("AI"), "duplicate is ignored")
	assert.False(t, p.AddTopic("ai"), "case-insensitive duplicate is ignored")
	assert.False(t, p.AddTopic("   "), "blank is ignored")
	assert.True(t, p.AddTopic(" climate "))

	assert.Equal(t, []string{"AI", "climate"}, p.Topics)
}

func TestUserPreferences_RemoveTopic(t *testing.T) {
	p := DefaultPreferences()
	p.AddTopic("AI")
	p.AddTopic("space")
	p.AddTopic("sports")

	assert.True(t, p.RemoveTopic("SPACE"))
	assert.False(t, p.RemoveTopic("space"))
	assert.Equal(t, []string{"AI", "sports"}, p.Topics)
}

func TestUserPreferences_RemoveTopicDoesNotAlias(t *testing.T) {
	p := DefaultPreferences()
	p.AddTopic("a")
	p.AddTopic("b")
	p.AddTopic("c")
	before := p.Topics

	p.RemoveTopic("a")

	assert.Equal(t, []string{"a", "b", "c"}, before)
	assert.Equal(t, []string{"b", "c"}, p.Topics)
}

func TestUserPreferences_Normalize(t *testing.T) {
	p := UserPreferences{
		Topics:           []string{"AI", "ai", "", "Space"},
		SummaryMode:      "verbose",
		ArticlesPerTopic: 99,
		Language:         "ENG",
	}

	n := p.Normalize()

	assert.Equal(t, []string{"AI", "Space"}, n.Topics)
	assert.Equal(t, SummaryBrief, n.SummaryMode)
	assert.Equal(t, DefaultArticlesPerTopic, n.ArticlesPerTopic)
	assert.Equal(t, DefaultLanguage, n.Language)
}

func TestUserPreferences_NormalizeKeepsValid(t *testing.T) {
	p := UserPreferences{SummaryMode: SummaryDetailed, ArticlesPerTopic: 20, Language: "DE"}

	n := p.Normalize()

	assert.Equal(t, SummaryDetailed, n.SummaryMode)
	assert.Equal(t, 20, n.ArticlesPerTopic)
	assert.Equal(t, "de", n.Language)
	assert.NotNil(t, n.Topics)
}

func TestValidateArticlesPerTopic(t *testing.T) {
	for _, n := range []int{1, 5, 20} {
		assert.NoError(t, ValidateArticlesPerTopic(n), "n=%d", n)
	}
	for _, n := range []int{-1, 0, 21} {
		err := ValidateArticlesPerTopic(n)
		assert.True(t, errors.Is(err, ErrInvalidInput), "n=%d", n)
	}
}

func TestValidateLanguage(t *testing.T) {
	assert.NoError(t, ValidateLanguage("en"))
	assert.NoError(t, ValidateLanguage("fr"))
	assert.Error(t, ValidateLanguage("EN"))
	assert.Error(t, ValidateLanguage("eng"))
	assert.Error(t, ValidateLanguage("e1"))
	assert.Error(t, ValidateLanguage(""))
}

func TestAppendHistory_EvictsOldest(t *testing.T) {
	var h []SearchHistoryEntry
	for i := 0; i < 5; i++ {
		h = AppendHistory(h, SearchHistoryEntry{Query: fmt.Sprintf("q%d", i), Timestamp: time.Unix(int64(i), 0)}, 3)
	}

	assert.Len(t, h, 3)
	assert.Equal(t, "q2", h[0].Query)
	assert.Equal(t, "q4", h[2].Query)
}

func TestAppendHistory_Unbounded(t *testing.T) {
	var h []SearchHistoryEntry
	for i := 0; i < 5; i++ {
		h = AppendHistory(h, SearchHistoryEntry{Query: "q"}, 0)
	}
	assert.Len(t, h, 5)
}

func TestRecentHistory(t *testing.T) {
	h := []SearchHistoryEntry{{Query: "a"}, {Query: "b"}, {Query: "c"}}

	assert.Equal(t, []SearchHistoryEntry{{Query: "b"}, {Query: "c"}}, RecentHistory(h, 2))
	assert.Len(t, RecentHistory(h, 10), 3)
	assert.Len(t, RecentHistory(h, 0), 3)
}

func TestSearchHistoryEntry_String(t *testing.T) {
	e := SearchHistoryEntry{
		Query:      "AI ethics",
		Timestamp:  time.Date(2024, 3, 8, 10, 30, 0, 0, time.UTC),
		NumResults: 5,
	}
	assert.Equal(t, "[2024-03-08] 'AI ethics' (5 results)", e.String())
}
