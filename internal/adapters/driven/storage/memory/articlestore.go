package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// Ensure ArticleStore implements the interface.
var _ driven.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is an in-memory implementation of driven.ArticleStore.
// It backs the session-scoped index.
type ArticleStore struct {
	mu        sync.RWMutex
	articles  map[string]domain.Article
	chunks    map[string]domain.Chunk
	byArticle map[string][]string
}

// NewArticleStore creates a new in-memory article store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		articles:  make(map[string]domain.Article),
		chunks:    make(map[string]domain.Chunk),
		byArticle: make(map[string][]string),
	}
}

// SaveArticle stores or replaces an article.
func (s *ArticleStore) SaveArticle(_ context.Context, article *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[article.ID] = *article
	return nil
}

// GetArticle retrieves an article by ID.
func (s *ArticleStore) GetArticle(_ context.Context, id string) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &article, nil
}

// ListArticles returns all articles, most recently published first.
func (s *ArticleStore) ListArticles(_ context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		result = append(result, a)
	}
	slices.SortFunc(result, func(a, b domain.Article) int {
		if c := b.PublishedAt.Compare(a.PublishedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

// SaveChunks stores chunks, replacing any with the same ID.
func (s *ArticleStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range chunks {
		if _, exists := s.chunks[c.ID]; !exists {
			s.byArticle[c.ArticleID] = append(s.byArticle[c.ArticleID], c.ID)
		}
		s.chunks[c.ID] = c
	}
	return nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *ArticleStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

// ListChunks returns every chunk, grouped by article in position order.
func (s *ArticleStore) ListChunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Chunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		result = append(result, c)
	}
	slices.SortFunc(result, func(a, b domain.Chunk) int {
		if c := strings.Compare(a.ArticleID, b.ArticleID); c != 0 {
			return c
		}
		return a.Position - b.Position
	})
	return result, nil
}

// DeleteChunksByArticle removes an article's chunks and returns their IDs.
func (s *ArticleStore) DeleteChunksByArticle(_ context.Context, articleID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.byArticle[articleID]
	for _, id := range ids {
		delete(s.chunks, id)
	}
	delete(s.byArticle, articleID)
	return ids, nil
}

// Clear removes all articles and chunks.
func (s *ArticleStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = make(map[string]domain.Article)
	s.chunks = make(map[string]domain.Chunk)
	s.byArticle = make(map[string][]string)
	return nil
}
