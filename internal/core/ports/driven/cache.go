package driven

import (
	"context"
	"time"
)

// SummaryCache stores generated summaries by key.
// This is an optional service - when nil, every summary is generated.
type SummaryCache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value. A zero ttl means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Close releases resources.
	Close() error
}
