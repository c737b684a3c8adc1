// Package chunker provides a fixed-size text chunking processor.
package chunker

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = domain.DefaultChunkSize

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = domain.DefaultChunkOverlap

// Processor splits article bodies into fixed-size chunks.
// Sizes are counted in runes so multi-byte text is never cut mid-character.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the article body into chunks.
// Input chunks are ignored; this processor creates new chunks from the article.
func (p *Processor) Process(_ context.Context, article *domain.Article, _ []domain.Chunk) ([]domain.Chunk, error) {
	parts := p.Split(article.Body())
	if len(parts) == 0 {
		return nil, nil
	}

	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, domain.Chunk{
			ID:        uuid.New().String(),
			ArticleID: article.ID,
			Content:   part,
			Position:  i,
		})
	}
	return chunks, nil
}

// Split cuts text into windows of at most chunkSize runes, each starting
// overlap runes before the previous one ended. A window that would cut a word
// is shortened to the last whitespace in its second half.
func (p *Processor) Split(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	n := len(runes)
	if n == 0 {
		return nil
	}

	var out []string
	start := 0
	for start < n {
		end := start + p.chunkSize
		if end >= n {
			end = n
		} else if cut := lastSpace(runes, start+p.chunkSize/2, end); cut > 0 {
			end = cut
		}

		if part := strings.TrimSpace(string(runes[start:end])); part != "" {
			out = append(out, part)
		}
		if end == n {
			break
		}

		next := end - p.overlap
		if next <= start {
			next = end
		}
		start = next
	}
	return out
}

// lastSpace returns the index of the last whitespace rune in runes[from:to], or -1.
func lastSpace(runes []rune, from, to int) int {
	for i := to - 1; i >= from; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}
