package memory

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is an exact cosine-similarity index held in memory.
// Vectors are L2-normalised on insert so a search is one dot product per entry.
type VectorIndex struct {
	mu         sync.RWMutex
	dimensions int
	vectors    map[string][]float32
}

// NewVectorIndex creates an index. With dimensions <= 0 the size is fixed by
// the first vector added.
func NewVectorIndex(dimensions int) *VectorIndex {
	return &VectorIndex{
		dimensions: dimensions,
		vectors:    make(map[string][]float32),
	}
}

// Add inserts or replaces the vector for a chunk.
func (v *VectorIndex) Add(_ context.Context, chunkID string, embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("%w: empty embedding for chunk %s", domain.ErrInvalidInput, chunkID)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dimensions <= 0 {
		v.dimensions = len(embedding)
	}
	if len(embedding) != v.dimensions {
		return fmt.Errorf("%w: embedding has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(embedding), v.dimensions)
	}

	v.vectors[chunkID] = normalise(embedding)
	return nil
}

// Delete removes a vector. Unknown IDs are ignored.
func (v *VectorIndex) Delete(_ context.Context, chunkID string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.vectors, chunkID)
	return nil
}

// Search returns the k most similar vectors, best first.
// Ties are broken by chunk ID so results are deterministic.
func (v *VectorIndex) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, nil
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if len(v.vectors) == 0 {
		return nil, nil
	}
	if len(query) != v.dimensions {
		return nil, fmt.Errorf("%w: query has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(query), v.dimensions)
	}

	q := normalise(query)
	hits := make([]driven.VectorHit, 0, len(v.vectors))
	for id, vec := range v.vectors {
		hits = append(hits, driven.VectorHit{ChunkID: id, Similarity: dot(q, vec)})
	}

	slices.SortFunc(hits, func(a, b driven.VectorHit) int {
		switch {
		case a.Similarity > b.Similarity:
			return -1
		case a.Similarity < b.Similarity:
			return 1
		default:
			return strings.Compare(a.ChunkID, b.ChunkID)
		}
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Len returns the number of vectors held.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.vectors)
}

// Reset removes all vectors. A dimension fixed by the first Add is kept.
func (v *VectorIndex) Reset(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vectors = make(map[string][]float32)
	return nil
}

// Dimensions returns the vector size, zero until known.
func (v *VectorIndex) Dimensions() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dimensions
}

// Close releases resources.
func (v *VectorIndex) Close() error {
	return nil
}

// normalise returns a unit-length copy of vec. A zero vector stays zero.
func normalise(vec []float32) []float32 {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(vec))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range vec {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
