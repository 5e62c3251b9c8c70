package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/cache"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/storetest"
)

func TestTenantResolver_CachesBySlug(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	gdb := storetest.NewDB(t)
	tenant := storetest.Tenant(t, gdb, "salon")
	resolver := NewTenantResolver(repository.NewGormTenantRepository(gdb), cache.NewRedisKVStore(client), time.Minute, nil)
	ctx := context.Background()

	got, err := resolver.Resolve(ctx, " Salon ")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
	require.True(t, mr.Exists("tenant:slug:salon"))
	assert.Equal(t, time.Minute, mr.TTL("tenant:slug:salon"))

	// база больше не нужна: ответ берётся из кэша
	require.NoError(t, gdb.Exec("UPDATE tenants SET name = ? WHERE id = ?", "Renombrado", tenant.ID).Error)
	cached, err := resolver.Resolve(ctx, "salon")
	require.NoError(t, err)
	assert.Equal(t, tenant.Name, cached.Name)

	resolver.Invalidate(ctx, "salon")
	assert.False(t, mr.Exists("tenant:slug:salon"))

	fresh, err := resolver.Resolve(ctx, "salon")
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", fresh.Name)
}

func TestTenantResolver_Errors(t *testing.T) {
	gdb := storetest.NewDB(t)
	resolver := NewTenantResolver(repository.NewGormTenantRepository(gdb), nil, time.Minute, nil)
	ctx := context.Background()

	_, err := resolver.Resolve(ctx, "")
	requireKind(t, err, apperr.KindValidation, "slug")

	_, err = resolver.Resolve(ctx, "nadie")
	requireKind(t, err, apperr.KindNotFound, "tenant")
}

func TestTenantResolver_RedisDownFallsBackToDB(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	gdb := storetest.NewDB(t)
	tenant := storetest.Tenant(t, gdb, "salon")
	resolver := NewTenantResolver(repository.NewGormTenantRepository(gdb), cache.NewRedisKVStore(client), time.Minute, nil)

	got, err := resolver.Resolve(context.Background(), "salon")
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, got.ID)
}
