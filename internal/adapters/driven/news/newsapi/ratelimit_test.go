package newsapi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/newsum/internal/core/domain"
)

func TestNewRateLimiter_InvalidConfigFallsBack(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{})
	assert.NotNil(t, r.limiter)
	assert.NoError(t, r.Wait(context.Background()))
}

func TestRateLimiter_BackoffFailsFast(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	r.Backoff(time.Hour)

	start := time.Now()
	err := r.Wait(context.Background())
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Contains(t, err.Error(), "retry after")
	assert.Less(t, time.Since(start), time.Second)
}

func TestRateLimiter_BackoffExpired(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	r.Backoff(time.Nanosecond)
	time.Sleep(time.Millisecond)

	assert.NoError(t, r.Wait(context.Background()))
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	r := NewRateLimiter(DefaultRateLimit)
	r.Backoff(0)
	assert.WithinDuration(t, time.Now().Add(defaultBackoff), r.RetryAt(), time.Second)
}
