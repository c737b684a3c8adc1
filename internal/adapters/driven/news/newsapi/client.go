package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/logger"
	"github.com/custodia-labs/newsum/internal/normalisers/html"
)

const (
	// DefaultBaseURL is the public NewsAPI host.
	DefaultBaseURL = "https://newsapi.org"

	// RemovedTitle marks articles withdrawn by the publisher.
	RemovedTitle = "[Removed]"

	// UnknownSource is used when the payload has no source name.
	UnknownSource = "Unknown Source"

	// MaxPageSize is the largest page NewsAPI serves.
	MaxPageSize = 100

	dateLayout     = "2006-01-02"
	requestTimeout = 30 * time.Second
)

// Ensure Client implements the interface.
var _ driven.NewsSource = (*Client)(nil)

// Client fetches articles from NewsAPI.
type Client struct {
	apiKey   string
	baseURL  string
	daysBack int
	sortBy   string
	http     *http.Client
	limiter  *RateLimiter
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithDaysBack sets how far back the from date reaches.
func WithDaysBack(days int) Option {
	return func(c *Client) {
		if days > 0 {
			c.daysBack = days
		}
	}
}

// WithSortBy sets the sortBy parameter.
func WithSortBy(sortBy string) Option {
	return func(c *Client) {
		if sortBy != "" {
			c.sortBy = sortBy
		}
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithRateLimit replaces the client-side throttle.
func WithRateLimit(cfg RateLimitConfig) Option {
	return func(c *Client) {
		c.limiter = NewRateLimiter(cfg)
	}
}

// New creates a NewsAPI client. The key must be non-empty.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: %w: news api key is not set", domain.ErrFetch, domain.ErrAuth)
	}
	c := &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		daysBack: domain.DefaultNewsDaysBack,
		sortBy:   domain.DefaultNewsSortBy,
		http:     &http.Client{Timeout: requestTimeout},
		limiter:  NewRateLimiter(DefaultRateLimit),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the source name.
func (c *Client) Name() string {
	return "NewsAPI"
}

// Fetch retrieves one page of articles matching the query.
func (c *Client) Fetch(ctx context.Context, q domain.NewsQuery) ([]domain.Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}

	reqURL := c.buildURL(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", domain.ErrFetch, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	logger.Debug("newsapi: GET %s", reqURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", domain.ErrFetch, err)
	}

	var payload response
	decodeErr := json.Unmarshal(body, &payload)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || payload.Status == "error" {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: payload.Code, Message: payload.Message}
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, c.classify(apiErr, resp.Header.Get("Retry-After"))
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", domain.ErrFetch, decodeErr)
	}

	articles := make([]domain.Article, 0, len(payload.Articles))
	for _, raw := range payload.Articles {
		if a, ok := raw.toArticle(); ok {
			articles = append(articles, a)
		}
	}
	logger.Debug("newsapi: %d of %d articles usable", len(articles), len(payload.Articles))
	return articles, nil
}

func (c *Client) buildURL(q domain.NewsQuery) string {
	now := c.now()
	params := url.Values{}
	params.Set("q", q.Query)
	if q.Language != "" {
		params.Set("language", q.Language)
	}
	params.Set("sortBy", c.sortBy)
	params.Set("pageSize", strconv.Itoa(clampPageSize(q.PageSize)))
	params.Set("page", "1")
	params.Set("from", now.AddDate(0, 0, -c.daysBack).Format(dateLayout))
	params.Set("to", now.Format(dateLayout))
	return c.baseURL + "/v2/everything?" + params.Encode()
}

func (c *Client) classify(apiErr *APIError, retryAfter string) error {
	switch {
	case apiErr.isAuthFailure():
		return fmt.Errorf("%w: %w: %w", domain.ErrFetch, domain.ErrAuth, apiErr)
	case apiErr.isRateLimited():
		c.limiter.Backoff(parseRetryAfter(retryAfter))
		return fmt.Errorf("%w: %w: %w", domain.ErrFetch, domain.ErrRateLimited, apiErr)
	default:
		return fmt.Errorf("%w: %w", domain.ErrFetch, apiErr)
	}
}

func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPageSize {
		return MaxPageSize
	}
	return n
}

func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

type response struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []rawArticle `json:"articles"`
}

type rawArticle struct {
	Source struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

func (r rawArticle) toArticle() (domain.Article, bool) {
	title := strings.TrimSpace(r.Title)
	if title == "" || title == RemovedTitle {
		return domain.Article{}, false
	}
	source := strings.TrimSpace(r.Source.Name)
	if source == "" {
		source = UnknownSource
	}
	a := domain.Article{
		Title:       title,
		Source:      source,
		Author:      strings.TrimSpace(r.Author),
		Description: html.Inline(r.Description),
		Content:     html.Text(r.Content),
		URL:         strings.TrimSpace(r.URL),
		ImageURL:    strings.TrimSpace(r.URLToImage),
	}
	if t, err := time.Parse(time.RFC3339, r.PublishedAt); err == nil {
		a.PublishedAt = t
	}
	a.ID = domain.ArticleID(a.URL, a.Source, a.Title)
	return a, true
}
