package postprocessors

import (
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/postprocessors/chunker"
)

// NewDefaultPipeline builds the indexing pipeline from index settings.
func NewDefaultPipeline(settings domain.IndexSettings) *Pipeline {
	return NewPipeline(NewChunker(settings))
}

// NewChunker builds a chunker from index settings, keeping defaults for unset values.
func NewChunker(settings domain.IndexSettings) *chunker.Processor {
	var opts []chunker.Option
	if settings.ChunkSize > 0 {
		opts = append(opts, chunker.WithChunkSize(settings.ChunkSize))
	}
	if settings.ChunkOverlap >= 0 {
		opts = append(opts, chunker.WithOverlap(settings.ChunkOverlap))
	}
	return chunker.New(opts...)
}
