package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
	"github.com/custodia-labs/newsum/internal/logger"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

// ArticleLookup resolves article IDs for SummarizeByID.
type ArticleLookup interface {
	GetArticle(ctx context.Context, id string) (*domain.Article, error)
}

// SummaryService summarises articles with the LLM using a per-mode strategy.
type SummaryService struct {
	llm         driven.LLMService
	prompts     driven.PromptStore
	strategies  map[domain.SummaryMode]SummaryStrategy
	temperature float64
	cache       driven.SummaryCache
	cacheTTL    time.Duration
	lookup      ArticleLookup
}

// SummaryOption configures a SummaryService.
type SummaryOption func(*SummaryService)

// WithSummaryCache enables caching of generated summaries.
func WithSummaryCache(cache driven.SummaryCache, ttl time.Duration) SummaryOption {
	return func(s *SummaryService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) SummaryOption {
	return func(s *SummaryService) {
		s.temperature = t
	}
}

// WithArticleLookup sets where SummarizeByID resolves articles.
func WithArticleLookup(lookup ArticleLookup) SummaryOption {
	return func(s *SummaryService) {
		s.lookup = lookup
	}
}

// WithSplitter sets the text splitter used by the brief strategy.
func WithSplitter(splitter TextSplitter) SummaryOption {
	return func(s *SummaryService) {
		s.strategies[domain.SummaryBrief] = NewMapReduceStrategy(splitter)
	}
}

// WithStrategy replaces the strategy for its mode.
func WithStrategy(strategy SummaryStrategy) SummaryOption {
	return func(s *SummaryService) {
		s.strategies[strategy.Mode()] = strategy
	}
}

// NewSummaryService creates a summary service.
// llm may be nil; every call then fails with ErrLLMUnavailable.
func NewSummaryService(llm driven.LLMService, prompts driven.PromptStore, opts ...SummaryOption) *SummaryService {
	s := &SummaryService{
		llm:         llm,
		prompts:     prompts,
		temperature: domain.DefaultLLMTemperature,
		strategies: map[domain.SummaryMode]SummaryStrategy{
			domain.SummaryBrief:    NewMapReduceStrategy(nil),
			domain.SummaryDetailed: StuffStrategy{},
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize produces a summary of articles in the given mode.
func (s *SummaryService) Summarize(ctx context.Context, articles []domain.Article, mode domain.SummaryMode) (string, error) {
	if len(articles) == 0 {
		return "", fmt.Errorf("%w: no articles to summarise", domain.ErrInvalidInput)
	}
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}
	strategy, ok := s.strategies[mode]
	if !ok {
		return "", fmt.Errorf("%w: unknown summary mode %q", domain.ErrInvalidInput, mode)
	}

	logger.Section("Summarize")
	logger.Debug("Mode: %s, articles: %d, model: %s", mode, len(articles), s.llm.ModelName())

	key := s.cacheKey(strategy, articles)
	if cached, ok := s.cacheGet(ctx, key); ok {
		logger.Debug("Cache hit")
		return cached, nil
	}

	docs := make([]string, len(articles))
	for i, a := range articles {
		docs[i] = a.Document()
	}

	g := &generator{llm: s.llm, prompts: s.prompts, temperature: s.temperature}
	start := time.Now()
	out, err := strategy.Summarize(ctx, g, docs)
	if err != nil {
		logger.Warn("Summarization failed: %v", err)
		if errors.Is(err, domain.ErrSummarization) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrSummarization, err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty response from model", domain.ErrSummarization)
	}
	logger.Debug("Summary: %d chars in %s", len(out), time.Since(start).Round(time.Millisecond))

	s.cacheSet(ctx, key, out)
	return out, nil
}

// SummarizeByID resolves article IDs and summarises them.
func (s *SummaryService) SummarizeByID(ctx context.Context, req domain.SummaryRequest) (string, error) {
	if len(req.ArticleIDs) == 0 {
		return "", fmt.Errorf("%w: no article IDs", domain.ErrInvalidInput)
	}
	if s.lookup == nil {
		return "", fmt.Errorf("%w: no article index", domain.ErrNotFound)
	}

	seen := make(map[string]struct{}, len(req.ArticleIDs))
	articles := make([]domain.Article, 0, len(req.ArticleIDs))
	for _, id := range req.ArticleIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		a, err := s.lookup.GetArticle(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return "", fmt.Errorf("%w: article %s", domain.ErrNotFound, id)
			}
			return "", fmt.Errorf("resolving article %s: %w", id, err)
		}
		articles = append(articles, *a)
	}

	mode := req.Mode
	if mode == "" {
		mode = domain.SummaryBrief
	}
	return s.Summarize(ctx, articles, mode)
}

// cacheKey hashes mode, model, the strategy's prompt templates and the
// sorted article IDs, so an edited prompt misses the cache. It returns ""
// when a template cannot be loaded, which disables caching for the call.
func (s *SummaryService) cacheKey(strategy SummaryStrategy, articles []domain.Article) string {
	if s.cache == nil {
		return ""
	}
	ids := make([]string, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	sort.Strings(ids)

	h := sha256.New()
	h.Write([]byte(strategy.Mode()))
	h.Write([]byte{0})
	h.Write([]byte(s.llm.ModelName()))
	for _, name := range strategy.Prompts() {
		tpl, err := s.prompts.Load(name)
		if err != nil {
			logger.Debug("Prompt %s unavailable, skipping cache: %v", name, err)
			return ""
		}
		h.Write([]byte{0})
		h.Write([]byte(tpl))
	}
	for _, id := range ids {
		h.Write([]byte{0})
		h.Write([]byte(id))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (s *SummaryService) cacheGet(ctx context.Context, key string) (string, bool) {
	if s.cache == nil || key == "" {
		return "", false
	}
	v, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.Warn("Summary cache read failed: %v", err)
		return "", false
	}
	return v, ok
}

func (s *SummaryService) cacheSet(ctx context.Context, key, value string) {
	if s.cache == nil || key == "" {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		logger.Warn("Summary cache write failed: %v", err)
	}
}
