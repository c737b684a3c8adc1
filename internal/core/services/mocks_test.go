package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockNewsSource implements driven.NewsSource for testing.
type mockNewsSource struct {
	articles  []domain.Article
	err       error
	lastQuery domain.NewsQuery
	calls     int
}

func (m *mockNewsSource) Name() string { return "mock" }

func (m *mockNewsSource) Fetch(_ context.Context, q domain.NewsQuery) ([]domain.Article, error) {
	m.calls++
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	return m.articles, nil
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Vectors count topic keywords so similar texts land close together.
type mockEmbeddingService struct {
	embedErr error
	batches  int
}

var embeddingTopics = []string{"ai", "sport", "finance"}

func (m *mockEmbeddingService) vector(text string) []float32 {
	lower := strings.ToLower(text)
	vec := make([]float32, len(embeddingTopics)+1)
	for i, topic := range embeddingTopics {
		vec[i] = float32(strings.Count(lower, topic))
	}
	vec[len(embeddingTopics)] = 0.1
	return vec
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batches++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = m.vector(t)
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int { return len(embeddingTopics) + 1 }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
// Without a respond func it echoes a fixed answer sized to MaxTokens.
type mockLLMService struct {
	mu      sync.Mutex
	err     error
	respond func(prompt string, opts driven.GenerateOptions) string
	prompts []string
	opts    []driven.GenerateOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	if m.err != nil {
		return "", m.err
	}
	if m.respond != nil {
		return m.respond(prompt, opts), nil
	}
	return fmt.Sprintf("  summary(%d)  ", opts.MaxTokens), nil
}

func (m *mockLLMService) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	err     error
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{prompts: map[string]string{
		driven.PromptSummaryBrief:    "BRIEF: %s",
		driven.PromptSummaryCombine:  "COMBINE: %s",
		driven.PromptSummaryDetailed: "DETAILED: %s",
	}}
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// failingCache implements driven.SummaryCache and fails every call.
type failingCache struct {
	gets, sets int
}

var errCacheDown = errors.New("cache down")

func (c *failingCache) Get(_ context.Context, _ string) (string, bool, error) {
	c.gets++
	return "", false, errCacheDown
}

func (c *failingCache) Set(_ context.Context, _, _ string, _ time.Duration) error {
	c.sets++
	return errCacheDown
}

func (c *failingCache) Close() error { return nil }

// mockValidator implements driven.AIConfigValidator for testing.
type mockValidator struct {
	embedErr error
	llmErr   error
}

func (m *mockValidator) ValidateEmbedding(_ *domain.EmbeddingSettings) error { return m.embedErr }

func (m *mockValidator) ValidateLLM(_ *domain.LLMSettings) error { return m.llmErr }

// --- Fixtures ---

func testArticle(n int, title, content string) domain.Article {
	url := fmt.Sprintf("https://example.com/%d", n)
	return domain.Article{
		ID:          domain.ArticleID(url, "Example", title),
		Title:       title,
		Source:      "Example",
		Description: title,
		Content:     content,
		URL:         url,
		PublishedAt: time.Date(2024, 3, n%28+1, 9, 0, 0, 0, time.UTC),
	}
}

func testArticles() []domain.Article {
	return []domain.Article{
		testArticle(1, "AI ethics board formed", "The AI ethics board will review AI systems."),
		testArticle(2, "Sport final tonight", "The sport final draws sport fans."),
		testArticle(3, "Finance markets rally", "Finance stocks rise as finance news improves."),
		testArticle(4, "AI in sport", "Teams use AI to analyse sport data."),
	}
}
