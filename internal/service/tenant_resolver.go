package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/cache"
	"github.com/Leganyst/saas-store/internal/logger"
	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/repository"
)

const opResolveTenant = "resolve_tenant"

// TenantResolver переводит слаг в тенанта через read-through кэш.
type TenantResolver struct {
	tenants repository.TenantRepository
	kv      cache.KVStore
	ttl     time.Duration
	log     *zap.Logger
}

func NewTenantResolver(tenants repository.TenantRepository, kv cache.KVStore, ttl time.Duration, log *zap.Logger) *TenantResolver {
	if kv == nil {
		kv = cache.NoopStore{}
	}
	return &TenantResolver{tenants: tenants, kv: kv, ttl: ttl, log: logger.OrNop(log)}
}

func tenantSlugKey(slug string) string {
	return "tenant:slug:" + slug
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func (r *TenantResolver) Resolve(ctx context.Context, slug string) (*model.Tenant, error) {
	slug = normalizeSlug(slug)
	if slug == "" {
		return nil, apperr.Validation("slug", "tenant slug is required")
	}
	key := tenantSlugKey(slug)

	raw, err := r.kv.Get(ctx, key)
	switch {
	case err == nil:
		var t model.Tenant
		if jerr := json.Unmarshal([]byte(raw), &t); jerr == nil {
			return &t, nil
		}
		r.log.Warn("broken tenant cache entry", zap.String("key", key))
	case !errors.Is(err, cache.ErrCacheMiss):
		// кэш недоступен — идём в базу
		r.log.Warn("tenant cache get failed", zap.String("key", key), zap.Error(err))
	}

	t, err := r.tenants.GetBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("tenant", fmt.Sprintf("Tenant %q not found", slug))
		}
		return nil, dbFailure(r.log, opResolveTenant, err, zap.String("slug", slug))
	}

	if payload, err := json.Marshal(t); err == nil {
		if err := r.kv.Set(ctx, key, string(payload), r.ttl); err != nil {
			r.log.Warn("tenant cache set failed", zap.String("key", key), zap.Error(err))
		}
	}
	return t, nil
}

// Invalidate удаляет запись кэша после изменения или удаления тенанта.
func (r *TenantResolver) Invalidate(ctx context.Context, slug string) {
	key := tenantSlugKey(normalizeSlug(slug))
	if err := r.kv.Del(ctx, key); err != nil {
		r.log.Warn("tenant cache invalidate failed", zap.String("key", key), zap.Error(err))
	}
}
