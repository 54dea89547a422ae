// Package redis opens Redis connections with retry and verifies them
// before handing the client to the caller.
package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Errors.
var (
	ErrEmptyURL     = errors.New("redis: connection URL is empty")
	ErrInvalidURL   = errors.New("redis: failed to parse connection URL")
	ErrUnavailable  = errors.New("redis: server unavailable")
	ErrHealthFailed = errors.New("redis: health check failed")
)

// Option configures the connection.
type Option func(*config)

type config struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	dialTimeout   time.Duration
}

// WithPoolSize sets the connection pool size. Default 10.
func WithPoolSize(n int) Option {
	return func(c *config) { c.poolSize = n }
}

// WithRetry sets the number of connection attempts and the base interval
// between them. Default 3 attempts every 2 seconds.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(c *config) {
		c.retryAttempts = attempts
		c.retryInterval = interval
	}
}

// Open connects to Redis at the given redis:// or rediss:// URL and pings
// it, retrying on failure.
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidURL
	}

	cfg := config{
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	parsed, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	parsed.PoolSize = cfg.poolSize
	if cfg.dialTimeout > 0 {
		parsed.DialTimeout = cfg.dialTimeout
	}

	client := redis.NewClient(parsed)

	var lastErr error
	for attempt := range cfg.retryAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				_ = client.Close()
				return nil, ctx.Err()
			case <-time.After(cfg.retryInterval):
			}
		}
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrUnavailable, lastErr)
}

// Healthcheck returns a probe function for readiness checks.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthFailed, err)
		}
		return nil
	}
}
