// Package cache selects the configured summary cache backend.
package cache

import (
	"context"
	"fmt"

	"github.com/custodia-labs/newsum/internal/adapters/driven/cache/redis"
	"github.com/custodia-labs/newsum/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/newsum/internal/core/domain"
	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// CreateSummaryCache returns the cache for the configured backend.
// The none backend returns a nil cache, which disables caching.
func CreateSummaryCache(ctx context.Context, settings domain.CacheSettings) (driven.SummaryCache, error) {
	switch settings.Backend {
	case domain.CacheNone:
		return nil, nil
	case domain.CacheMemory, "":
		return memory.NewSummaryCache(), nil
	case domain.CacheRedis:
		c, err := redis.Connect(ctx, settings.RedisURL)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unsupported cache backend: %s", domain.ErrInvalidInput, settings.Backend)
	}
}
