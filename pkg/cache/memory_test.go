package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vroumauto/webapp/pkg/cache"
)

func newTestCache(t *testing.T) *cache.Memory[string] {
	t.Helper()
	c := cache.NewMemory[string](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemorySetGet(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestMemoryMiss(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	_, err := c.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemoryExpiry(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemoryNeverExpires(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", -1))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestMemoryDeleteAndClear(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", "1", time.Minute))
	require.NoError(t, c.Set(ctx, "b", "2", time.Minute))

	require.NoError(t, c.Delete(ctx, "a"))
	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, cache.ErrNotFound)

	require.NoError(t, c.Clear(ctx))
	_, err = c.Get(ctx, "b")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestMemoryClosed(t *testing.T) {
	t.Parallel()

	c := cache.NewMemory[string](cache.WithCleanupInterval(0))
	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // idempotent

	assert.ErrorIs(t, c.Set(context.Background(), "k", "v", 0), cache.ErrClosed)
	_, err := c.Get(context.Background(), "k")
	assert.ErrorIs(t, err, cache.ErrClosed)
}

func TestGetOrFetch(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		return "fetched", nil
	}

	got, err := cache.GetOrFetch(ctx, c, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "fetched", got)

	// Second call is served from cache.
	got, err = cache.GetOrFetch(ctx, c, "k", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, "fetched", got)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetOrFetchDistinctCachesSameKey(t *testing.T) {
	t.Parallel()

	strs := cache.NewMemory[string](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = strs.Close() })
	ints := cache.NewMemory[int](cache.WithCleanupInterval(0))
	t.Cleanup(func() { _ = ints.Close() })

	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	var (
		wg     sync.WaitGroup
		gotInt int
		intErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		gotInt, intErr = cache.GetOrFetch(ctx, ints, "k", time.Minute, func(context.Context) (int, error) {
			close(started)
			<-release
			return 7, nil
		})
	}()

	// While the int fetch is in flight, the same key against the string
	// cache must run its own fetch instead of joining that flight and
	// receiving a value of the wrong type.
	<-started
	gotStr, err := cache.GetOrFetch(ctx, strs, "k", time.Minute, func(context.Context) (string, error) {
		return "s", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "s", gotStr)

	close(release)
	wg.Wait()
	require.NoError(t, intErr)
	assert.Equal(t, 7, gotInt)
}

func TestGetOrFetchError(t *testing.T) {
	t.Parallel()

	c := newTestCache(t)
	ctx := context.Background()

	wantErr := errors.New("backend down")
	_, err := cache.GetOrFetch(ctx, c, "k", time.Minute, func(context.Context) (string, error) {
		return "", wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// Errors are not cached.
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}
