package domain

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Article is a news article as returned by a news source.
// Articles are immutable once fetched.
type Article struct {
	// ID is derived from the URL, see ArticleID.
	ID string

	// Title is the headline.
	Title string

	// Source is the publisher display name.
	Source string

	// Author is the byline, empty when unknown.
	Author string

	// Description is the short teaser text.
	Description string

	// Content is the (often truncated) article body.
	Content string

	// URL is the canonical article location.
	URL string

	// ImageURL is the lead image, empty when absent.
	ImageURL string

	// PublishedAt is the publication time.
	PublishedAt time.Time
}

// ArticleID derives a stable identifier from an article URL.
// When the URL is empty, source and title are hashed instead.
func ArticleID(url, source, title string) string {
	key := strings.TrimSpace(url)
	if key == "" {
		key = source + "\x00" + title
	}
	h := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", h[:16])
}

// Body returns the text used for embedding: title, description and content.
func (a Article) Body() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{a.Title, a.Description, a.Content} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Document renders the article as the labelled text handed to the language model.
// Empty description and content sections are omitted.
func (a Article) Document() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n\nSource: %s", a.Title, a.Source)
	if a.Description != "" {
		fmt.Fprintf(&b, "\n\nDescription: %s", a.Description)
	}
	if a.Content != "" {
		fmt.Fprintf(&b, "\n\nContent: %s", a.Content)
	}
	return b.String()
}

// Chunk is an embeddable unit of an article body.
// Articles are split into chunks for granular similarity search.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// ArticleID links to the parent Article.
	ArticleID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the article.
	Position int

	// Embedding is the vector representation for semantic search.
	Embedding []float32
}

// ArticleHit is a single result of a similarity query.
type ArticleHit struct {
	// Article is the matched article.
	Article Article

	// Similarity is the best cosine similarity among the article's chunks.
	Similarity float64
}

// NewsQuery describes one fetch against a news source.
type NewsQuery struct {
	// Query is the free-text topic.
	Query string

	// PageSize is the maximum number of articles wanted (1-100).
	PageSize int

	// Language is a two-letter ISO code, empty for any.
	Language string
}

// SearchOutcome reports the result of an interactive search.
// Indexing and history failures do not fail the search; they are reported here.
type SearchOutcome struct {
	// Articles are the fetched articles.
	Articles []Article

	// Indexed is the number of chunks embedded, zero when indexing failed.
	Indexed int

	// IndexErr is set when the articles could not be indexed.
	IndexErr error

	// HistoryErr is set when the history entry could not be persisted.
	HistoryErr error
}
