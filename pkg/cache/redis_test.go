package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestRedisStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s, err := NewRedisStore(newTestRedis(t), "test", "emotion", 3)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "I feel fine", "neutral"))
	v, ok, err := s.Get(ctx, "I feel fine")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "neutral", v)
}

func TestRedisStoreEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s, err := NewRedisStore(newTestRedis(t), "test", "generation", 2)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", "2"))
	_, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, s.Set(ctx, "c", "3"))

	_, ok, err = s.Get(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	for _, k := range []string{"a", "c"} {
		_, ok, err = s.Get(ctx, k)
		require.NoError(t, err)
		assert.True(t, ok, k)
	}

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestRedisStoresAreIndependent(t *testing.T) {
	ctx := context.Background()
	rdb := newTestRedis(t)
	emotion, _ := NewRedisStore(rdb, "test", "emotion", DefaultSize)
	generation, _ := NewRedisStore(rdb, "test", "generation", DefaultSize)

	require.NoError(t, emotion.Set(ctx, "same", "scared"))
	_, ok, err := generation.Get(ctx, "same")
	require.NoError(t, err)
	assert.False(t, ok)
}
