// Package cache provides a small TTL key-value cache with in-memory and
// Redis backends. It backs the session profile cache and the featured
// vehicle listings on the home page.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Errors.
var (
	ErrNotFound = errors.New("cache: entry not found")
	ErrClosed   = errors.New("cache: closed")
	ErrEncode   = errors.New("cache: failed to encode value")
	ErrDecode   = errors.New("cache: failed to decode value")
)

// Cache is a TTL key-value store.
//
// TTL semantics for Set: positive expires after the duration, zero uses
// the backend's default, negative never expires.
type Cache[V any] interface {
	// Get returns the value for key, or ErrNotFound if absent or expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear drops every entry.
	Clear(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

func encode[V any](v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	return data, nil
}

func decode[V any](data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrDecode, err)
	}
	return v, nil
}

var group singleflight.Group

// GetOrFetch returns the cached value for key, or runs fetch on a miss and
// caches the result. Concurrent misses for the same key run fetch once
// (singleflight), which keeps a burst of page loads from stampeding the
// backend API. Flights are scoped to the cache instance, so the same key
// used against two caches never shares a result.
func GetOrFetch[V any](ctx context.Context, c Cache[V], key string, ttl time.Duration, fetch func(ctx context.Context) (V, error)) (V, error) {
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	got, err, _ := group.Do(fmt.Sprintf("%p:%s", c, key), func() (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero V
		return zero, err
	}

	v := got.(V)
	_ = c.Set(ctx, key, v, ttl) // best effort
	return v, nil
}
