// Package rss fetches articles from an RSS or Atom search feed.
//
// The feed URL is a template: {query} and {lang} are substituted with the
// URL-escaped query and language. The default template is Google News search.
package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/logger"
	"github.com/custodia-labs/newsum/internal/normalisers/html"
)

const (
	requestTimeout = 30 * time.Second

	// maxDescription caps descriptions, in runes.
	maxDescription = 500
)

// Ensure Source implements the interface.
var _ driven.NewsSource = (*Source)(nil)

// Source fetches articles from a search feed.
type Source struct {
	urlTemplate string
	parser      *gofeed.Parser
}

// New creates an RSS source. An empty template uses the default.
func New(urlTemplate string) *Source {
	if urlTemplate == "" {
		urlTemplate = domain.DefaultRSSURL
	}
	parser := gofeed.NewParser()
	parser.Client = &http.Client{Timeout: requestTimeout}
	return &Source{
		urlTemplate: urlTemplate,
		parser:      parser,
	}
}

// Name returns the source name.
func (s *Source) Name() string {
	return "RSS"
}

// FeedURL expands the template for a query.
func (s *Source) FeedURL(q domain.NewsQuery) string {
	lang := q.Language
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	r := strings.NewReplacer(
		"{query}", url.QueryEscape(q.Query),
		"{lang}", url.QueryEscape(lang),
	)
	return r.Replace(s.urlTemplate)
}

// Fetch parses the feed and maps items to articles, newest first as served.
func (s *Source) Fetch(ctx context.Context, q domain.NewsQuery) ([]domain.Article, error) {
	feedURL := s.FeedURL(q)
	logger.Debug("rss: GET %s", feedURL)

	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing feed: %w", domain.ErrFetch, err)
	}

	feedTitle := strings.TrimSpace(feed.Title)
	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a, ok := toArticle(item, feedTitle)
		if !ok {
			continue
		}
		articles = append(articles, a)
		if q.PageSize > 0 && len(articles) >= q.PageSize {
			break
		}
	}
	return articles, nil
}

func toArticle(item *gofeed.Item, feedTitle string) (domain.Article, bool) {
	title := html.Inline(item.Title)
	if title == "" {
		return domain.Article{}, false
	}

	source := feedTitle
	if item.Author != nil && item.Author.Name != "" && source == "" {
		source = item.Author.Name
	}
	// Search feeds title items "Headline - Publisher".
	if i := strings.LastIndex(title, " - "); i > 0 {
		source = strings.TrimSpace(title[i+3:])
		title = strings.TrimSpace(title[:i])
	}
	if source == "" {
		source = "Unknown Source"
	}

	desc := item.Description
	content := item.Content
	if desc == "" {
		desc = content
	}
	a := domain.Article{
		Title:       title,
		Source:      source,
		Description: truncate(html.Inline(desc), maxDescription),
		Content:     html.Text(content),
		URL:         strings.TrimSpace(item.Link),
	}
	if item.Author != nil {
		a.Author = item.Author.Name
	}
	if item.Image != nil {
		a.ImageURL = item.Image.URL
	}
	switch {
	case item.PublishedParsed != nil:
		a.PublishedAt = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		a.PublishedAt = *item.UpdatedParsed
	}
	a.ID = domain.ArticleID(a.URL, a.Source, a.Title)
	return a, true
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
