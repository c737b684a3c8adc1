// Package redis provides a summary cache shared across processes via Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/custodia-labs/newsum/internal/core/ports/driven"
)

// DefaultKeyPrefix namespaces summary keys.
const DefaultKeyPrefix = "newsum:summary:"

// Ensure SummaryCache implements the interface.
var _ driven.SummaryCache = (*SummaryCache)(nil)

// SummaryCache stores summaries as plain Redis strings with expiry.
type SummaryCache struct {
	client *goredis.Client
	prefix string
}

// Option configures a SummaryCache.
type Option func(*SummaryCache)

// WithKeyPrefix overrides the key namespace.
func WithKeyPrefix(prefix string) Option {
	return func(c *SummaryCache) {
		c.prefix = prefix
	}
}

// Connect parses a redis:// URL, dials and pings the server.
// A value that is not a URL is treated as a host:port address.
func Connect(ctx context.Context, url string, opts ...Option) (*SummaryCache, error) {
	if url == "" {
		return nil, errors.New("redis url is empty")
	}
	opt, err := goredis.ParseURL(url)
	if err != nil {
		opt = &goredis.Options{Addr: url}
	}

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return New(client, opts...), nil
}

// New wraps an existing client.
func New(client *goredis.Client, opts ...Option) *SummaryCache {
	c := &SummaryCache{
		client: client,
		prefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SummaryCache) key(k string) string {
	return c.prefix + k
}

// Get returns the cached value. A missing key is a miss, not an error.
func (c *SummaryCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

// Set stores a value. A zero ttl means no expiry.
func (c *SummaryCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *SummaryCache) Close() error {
	return c.client.Close()
}
