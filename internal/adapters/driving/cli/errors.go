package cli

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

// hint appends a remedy to errors the user can fix from the command line.
func hint(err error) error {
	if err == nil {
		return nil
	}
	var msg string
	switch {
	case errors.Is(err, domain.ErrAuth):
		msg = "check NEWS_API_KEY or run 'newsum settings set-key news'"
	case errors.Is(err, domain.ErrRateLimited):
		msg = "the news provider is rate limiting requests, try again later"
	case errors.Is(err, domain.ErrEmptyIndex):
		msg = "run 'newsum search' first, or set index.persist to keep articles between runs"
	case errors.Is(err, domain.ErrLLMUnavailable):
		msg = "configure an LLM with 'newsum settings llm'"
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		msg = "configure embeddings with 'newsum settings embedding'"
	default:
		return err
	}
	return fmt.Errorf("%w\n  hint: %s", err, msg)
}
