package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping Redis cache tests")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx := context.Background()
	require.NoError(t, rdb.FlushAll(ctx).Err(), "Failed to flush Redis")
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestSearchKey(t *testing.T) {
	a, err := SearchKey(map[string][]string{"type": {"Villa"}, "minPrice": {"100"}})
	require.NoError(t, err)
	b, err := SearchKey(map[string][]string{"minPrice": {"100"}, "type": {"Villa"}})
	require.NoError(t, err)
	c, err := SearchKey(map[string][]string{"minPrice": {"200"}})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "catalog:search:")

	_, err = SearchKey(make(chan int))
	assert.Error(t, err)
}

func TestNewCatalogCache_NilClient(t *testing.T) {
	c := NewCatalogCache(nil, time.Minute)
	assert.IsType(t, NopCache{}, c)

	var dest []string
	hit, err := c.Get(context.Background(), SummariesKey, &dest)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCatalogCache_RoundTripAndInvalidate(t *testing.T) {
	rdb := setupRedis(t)
	c := NewCatalogCache(rdb, time.Minute)
	ctx := context.Background()

	var dest []string
	hit, err := c.Get(ctx, SummariesKey, &dest)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, SummariesKey, []string{"a", "b"}))
	require.NoError(t, c.Set(ctx, PropertyKey("42"), map[string]int{"views": 1}))
	require.NoError(t, rdb.Set(ctx, "session:1", "keep", 0).Err())

	hit, err = c.Get(ctx, SummariesKey, &dest)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"a", "b"}, dest)

	require.NoError(t, c.Invalidate(ctx))

	hit, err = c.Get(ctx, PropertyKey("42"), &map[string]int{})
	require.NoError(t, err)
	assert.False(t, hit)

	val, err := rdb.Get(ctx, "session:1").Result()
	require.NoError(t, err)
	assert.Equal(t, "keep", val)
}
