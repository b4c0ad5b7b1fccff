package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewRedisCacheWithClient(client, DefaultConfig())
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestNewRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)

	config := DefaultRedisConfig()
	config.Addr = mr.Addr()

	c, err := NewRedisCache(context.Background(), config)
	require.NoError(t, err)
	defer c.Close()
}

func TestNewRedisCache_ConnectionError(t *testing.T) {
	config := DefaultRedisConfig()
	config.Addr = "localhost:99999"

	_, err := NewRedisCache(context.Background(), config)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))

	value, err := c.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)

	// keys carry the prefix on the server
	assert.True(t, mr.Exists("bcschema:key"))
}

func TestRedisCache_GetMiss(t *testing.T) {
	c, _ := setupTestRedis(t)

	_, err := c.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsCacheMiss(err))
}

func TestRedisCache_Expiration(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "key")
	assert.True(t, IsCacheMiss(err))
}

func TestRedisCache_TTLDefaults(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "default", []byte("value"), 0))
	assert.Equal(t, time.Hour, mr.TTL("bcschema:default"))

	require.NoError(t, c.Set(ctx, "forever", []byte("value"), -1))
	assert.Equal(t, time.Duration(0), mr.TTL("bcschema:forever"))
}

func TestRedisCache_DeleteAndExists(t *testing.T) {
	c, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "key", []byte("value"), 0))

	exists, err := c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, c.Delete(ctx, "key"))
	exists, err = c.Exists(ctx, "key")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisCache_ClearRespectsPrefix(t *testing.T) {
	c, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "one", []byte("1"), 0))
	require.NoError(t, c.Set(ctx, "two", []byte("2"), 0))
	require.NoError(t, mr.Set("other:key", "3"))

	require.NoError(t, c.Clear(ctx))

	assert.False(t, mr.Exists("bcschema:one"))
	assert.False(t, mr.Exists("bcschema:two"))
	assert.True(t, mr.Exists("other:key"))
}

func TestRedisCache_ServerDown(t *testing.T) {
	c, mr := setupTestRedis(t)
	mr.Close()

	_, err := c.Get(context.Background(), "key")
	require.Error(t, err)
	assert.False(t, IsCacheMiss(err))
}
