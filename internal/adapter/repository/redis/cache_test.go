package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestCacheSetAndGet(t *testing.T) {
	client := newTestRedisClient(t)

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "foo", "bar", time.Minute))

	val, err := cache.Get(ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, "bar", val)
}

func TestCacheGetMissing(t *testing.T) {
	client := newTestRedisClient(t)

	cache := NewCache(client)

	_, err := cache.Get(context.Background(), "missing")
	require.ErrorIs(t, err, redislib.Nil)
}

func TestCacheDelete(t *testing.T) {
	client := newTestRedisClient(t)

	cache := NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "gone", "soon", time.Minute))
	require.NoError(t, cache.Delete(ctx, "gone"))

	_, err := cache.Get(ctx, "gone")
	require.ErrorIs(t, err, redislib.Nil)
}
