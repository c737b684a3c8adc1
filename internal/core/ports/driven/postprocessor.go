package driven

import (
	"context"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// PostProcessor turns an article into chunks ready for embedding.
// PostProcessors are chained in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for logging.
	Name() string

	// Process takes an article and returns chunks.
	// A creating processor (chunker) receives nil and returns new chunks;
	// later processors receive and may modify the chunks.
	Process(ctx context.Context, article *domain.Article, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the article through all processors in order.
	Process(ctx context.Context, article *domain.Article) ([]domain.Chunk, error)
}
