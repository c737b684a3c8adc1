package driving

import (
	"context"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// SummaryService produces brief or detailed summaries of articles.
type SummaryService interface {
	// Summarize summarises the given articles. Failures wrap domain.ErrSummarization.
	Summarize(ctx context.Context, articles []domain.Article, mode domain.SummaryMode) (string, error)

	// SummarizeByID resolves indexed articles by ID and summarises them.
	SummarizeByID(ctx context.Context, req domain.SummaryRequest) (string, error)
}
