package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
	"github.com/custodia-labs/newsum/internal/core/ports/driving"
	"github.com/custodia-labs/newsum/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// DefaultOversample multiplies k when searching chunks.
const DefaultOversample = 4

// IndexService chunks and embeds articles, and answers similarity queries
// at article level by aggregating chunk hits.
type IndexService struct {
	mu         sync.Mutex
	store      driven.ArticleStore
	vectors    driven.VectorIndex
	embedder   driven.EmbeddingService
	pipeline   driven.PostProcessorPipeline
	oversample int
}

// NewIndexService creates an index service.
// embedder may be nil; indexing and queries then fail with ErrEmbeddingUnavailable.
func NewIndexService(
	store driven.ArticleStore,
	vectors driven.VectorIndex,
	embedder driven.EmbeddingService,
	pipeline driven.PostProcessorPipeline,
	oversample int,
) *IndexService {
	if oversample <= 0 {
		oversample = DefaultOversample
	}
	return &IndexService{
		store:      store,
		vectors:    vectors,
		embedder:   embedder,
		pipeline:   pipeline,
		oversample: oversample,
	}
}

// Rebuild loads stored chunk embeddings into the vector index.
// Used at startup when the index persists between sessions.
func (s *IndexService) Rebuild(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunks, err := s.store.ListChunks(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading chunks: %w", err)
	}
	if err := s.vectors.Reset(ctx); err != nil {
		return 0, fmt.Errorf("resetting vector index: %w", err)
	}

	n := 0
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			continue
		}
		if err := s.vectors.Add(ctx, c.ID, c.Embedding); err != nil {
			// Stored with a different model; skip rather than fail startup.
			logger.Warn("Skipping chunk %s: %v", c.ID, err)
			continue
		}
		n++
	}
	logger.Debug("Rebuilt vector index with %d of %d chunks", n, len(chunks))
	return n, nil
}

// IndexArticles chunks, embeds and stores articles, returning the chunk count.
// Re-indexing an article replaces its previous chunks.
func (s *IndexService) IndexArticles(ctx context.Context, articles []domain.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	if s.embedder == nil {
		return 0, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Indexing")
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for i := range articles {
		a := articles[i]
		if a.ID == "" {
			a.ID = domain.ArticleID(a.URL, a.Source, a.Title)
		}

		chunks, err := s.pipeline.Process(ctx, &a)
		if err != nil {
			return total, fmt.Errorf("chunking %s: %w", a.ID, err)
		}

		if len(chunks) > 0 {
			texts := make([]string, len(chunks))
			for j, c := range chunks {
				texts[j] = c.Content
			}
			vecs, err := s.embedder.EmbedBatch(ctx, texts)
			if err != nil {
				return total, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
			}
			if len(vecs) != len(chunks) {
				return total, fmt.Errorf("%w: got %d vectors for %d chunks", domain.ErrEmbedding, len(vecs), len(chunks))
			}
			for j := range chunks {
				chunks[j].Embedding = vecs[j]
			}
		}

		if err := s.replace(ctx, &a, chunks); err != nil {
			return total, err
		}
		total += len(chunks)
		logger.Debug("Indexed %q: %d chunks", a.Title, len(chunks))
	}

	logger.Debug("Indexed %d articles, %d chunks, index size %d", len(articles), total, s.vectors.Len())
	return total, nil
}

// replace swaps an article's stored chunks and vectors for new ones.
func (s *IndexService) replace(ctx context.Context, a *domain.Article, chunks []domain.Chunk) error {
	oldIDs, err := s.store.DeleteChunksByArticle(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("removing previous chunks: %w", err)
	}
	for _, id := range oldIDs {
		if err := s.vectors.Delete(ctx, id); err != nil {
			return fmt.Errorf("removing previous vector: %w", err)
		}
	}

	if err := s.store.SaveArticle(ctx, a); err != nil {
		return fmt.Errorf("saving article: %w", err)
	}
	if err := s.store.SaveChunks(ctx, chunks); err != nil {
		return fmt.Errorf("saving chunks: %w", err)
	}
	for _, c := range chunks {
		if err := s.vectors.Add(ctx, c.ID, c.Embedding); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
		}
	}
	return nil
}

// QuerySimilar returns at most k articles ordered by descending similarity,
// ties broken by article ID.
func (s *IndexService) QuerySimilar(ctx context.Context, text string, k int) ([]domain.ArticleHit, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: query text is empty", domain.ErrInvalidInput)
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", domain.ErrInvalidInput)
	}
	if s.vectors.Len() == 0 {
		return nil, domain.ErrEmptyIndex
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	logger.Section("Similarity Query")
	logger.Debug("Query: %q, k: %d, oversample: %d", text, k, s.oversample)

	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbedding, err)
	}

	hits, err := s.vectors.Search(ctx, vec, k*s.oversample)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	logger.Debug("Chunk hits: %d", len(hits))

	best := make(map[string]float64)
	for _, h := range hits {
		chunk, err := s.store.GetChunk(ctx, h.ChunkID)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolving chunk: %w", err)
		}
		if cur, ok := best[chunk.ArticleID]; !ok || h.Similarity > cur {
			best[chunk.ArticleID] = h.Similarity
		}
	}

	results := make([]domain.ArticleHit, 0, len(best))
	for id, sim := range best {
		a, err := s.store.GetArticle(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolving article: %w", err)
		}
		results = append(results, domain.ArticleHit{Article: *a, Similarity: sim})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].Article.ID < results[j].Article.ID
	})
	if len(results) > k {
		results = results[:k]
	}

	logger.Debug("Article hits: %d", len(results))
	return results, nil
}

// GetArticle returns an indexed article by ID.
func (s *IndexService) GetArticle(ctx context.Context, id string) (*domain.Article, error) {
	return s.store.GetArticle(ctx, id)
}

// Len returns the number of indexed chunks.
func (s *IndexService) Len() int {
	return s.vectors.Len()
}

// Reset empties the store and the vector index.
func (s *IndexService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing article store: %w", err)
	}
	return s.vectors.Reset(ctx)
}
