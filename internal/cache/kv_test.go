package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisKVStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisKVStore(client)
}

func TestRedisKVStore_SetGetDel(t *testing.T) {
	mr, kv := setupTestRedis(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "tenant:slug:demo")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, kv.Set(ctx, "tenant:slug:demo", `{"slug":"demo"}`, time.Minute))
	val, err := kv.Get(ctx, "tenant:slug:demo")
	require.NoError(t, err)
	assert.Equal(t, `{"slug":"demo"}`, val)
	assert.Equal(t, time.Minute, mr.TTL("tenant:slug:demo"))

	require.NoError(t, kv.Del(ctx, "tenant:slug:demo"))
	_, err = kv.Get(ctx, "tenant:slug:demo")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisKVStore_Expiry(t *testing.T) {
	mr, kv := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", time.Second))
	mr.FastForward(2 * time.Second)

	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()

	client, err := NewRedisClient(context.Background(), addr, "", 0)
	require.NoError(t, err)
	_ = client.Close()

	// после Close сервер не отвечает на PING, адрес берём сохранённый
	mr.Close()
	_, err = NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}

func TestNoopStore(t *testing.T) {
	var kv KVStore = NoopStore{}
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	_, err := kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, kv.Del(ctx, "k"))
}
