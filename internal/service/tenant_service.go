package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/cascade"
	"github.com/Leganyst/saas-store/internal/logger"
	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/utils"
)

const (
	opDeleteTenant = "delete_tenant_cascade"
	opUpdateTenant = "update_tenant"
)

// TenantPolicy — единственное место, где задан системный тенант.
type TenantPolicy struct {
	ReservedSlug string
}

func (p TenantPolicy) IsReserved(slug string) bool {
	return p.ReservedSlug != "" && strings.EqualFold(strings.TrimSpace(slug), p.ReservedSlug)
}

// TenantDeleter реализуется cascade.Deleter.
type TenantDeleter interface {
	DeleteTenant(ctx context.Context, tenantID uuid.UUID) (cascade.Report, error)
}

// SlugInvalidator сбрасывает кэш слага (TenantResolver).
type SlugInvalidator interface {
	Invalidate(ctx context.Context, slug string)
}

// TenantPatch — частичное обновление; nil-поля не меняются.
type TenantPatch struct {
	Name         *string           `json:"name"`
	Description  *string           `json:"description"`
	Mode         *model.TenantMode `json:"mode"`
	ContactEmail *string           `json:"contactEmail"`
	ContactPhone *string           `json:"contactPhone"`
	Address      *string           `json:"address"`
	City         *string           `json:"city"`
	Country      *string           `json:"country"`
	Currency     *string           `json:"currency"`
	Timezone     *string           `json:"timezone"`
	Language     *string           `json:"language"`
	IsActive     *bool             `json:"isActive"`
}

type TenantService struct {
	tenants repository.TenantRepository
	deleter TenantDeleter
	cache   SlugInvalidator
	policy  TenantPolicy
	log     *zap.Logger
}

func NewTenantService(
	tenants repository.TenantRepository,
	deleter TenantDeleter,
	cache SlugInvalidator,
	policy TenantPolicy,
	log *zap.Logger,
) *TenantService {
	return &TenantService{
		tenants: tenants,
		deleter: deleter,
		cache:   cache,
		policy:  policy,
		log:     logger.OrNop(log),
	}
}

// guard: тенант существует и не системный.
func (s *TenantService) guard(ctx context.Context, id uuid.UUID, op string) (*model.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("tenant", fmt.Sprintf("Tenant with ID %s not found", id))
		}
		return nil, dbFailure(s.log, op, err, zap.Stringer("tenant_id", id))
	}
	if s.policy.IsReserved(tenant.Slug) {
		s.log.Warn("attempt to modify system tenant", zap.String("operation", op), zap.String("slug", tenant.Slug))
		return nil, apperr.Validation("slug", "system tenant cannot be modified")
	}
	return tenant, nil
}

// DeleteTenant удаляет тенанта со всеми данными одной транзакцией.
func (s *TenantService) DeleteTenant(ctx context.Context, id uuid.UUID) (cascade.Report, error) {
	tenant, err := s.guard(ctx, id, opDeleteTenant)
	if err != nil {
		return cascade.Report{}, err
	}

	report, err := s.deleter.DeleteTenant(ctx, id)
	if err != nil {
		return cascade.Report{}, err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, tenant.Slug)
	}
	s.log.Info("tenant removed",
		zap.Stringer("tenant_id", id),
		zap.String("slug", tenant.Slug),
		zap.Int64("rows", report.Total()),
	)
	return report, nil
}

// UpdateTenant меняет описательные поля тенанта.
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, patch TenantPatch) (*model.Tenant, error) {
	tenant, err := s.guard(ctx, id, opUpdateTenant)
	if err != nil {
		return nil, err
	}

	fields, err := patch.columns()
	if err != nil {
		return nil, err
	}

	if err := s.tenants.Update(ctx, id, fields); err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("tenant", fmt.Sprintf("Tenant with ID %s not found", id))
		}
		return nil, dbFailure(s.log, opUpdateTenant, err, zap.Stringer("tenant_id", id))
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, tenant.Slug)
	}

	updated, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, dbFailure(s.log, opUpdateTenant, err, zap.Stringer("tenant_id", id))
	}
	return updated, nil
}

func (p TenantPatch) columns() (map[string]any, error) {
	fields := map[string]any{}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, apperr.Validation("name", "name must not be empty")
		}
		fields["name"] = name
	}
	if p.Mode != nil {
		switch *p.Mode {
		case model.TenantModeBooking, model.TenantModeEcommerce, model.TenantModeBoth:
			fields["mode"] = *p.Mode
		default:
			return nil, apperr.Validation("mode", "mode must be one of booking, ecommerce, both")
		}
	}
	if p.Timezone != nil {
		if _, ok := utils.LoadLocation(*p.Timezone); !ok {
			return nil, apperr.Validation("timezone", fmt.Sprintf("unknown time zone %q", *p.Timezone))
		}
		fields["timezone"] = *p.Timezone
	}
	if p.IsActive != nil {
		if *p.IsActive {
			fields["status"] = model.TenantStatusActive
		} else {
			fields["status"] = model.TenantStatusInactive
		}
	}

	optional := map[string]*string{
		"description":   p.Description,
		"contact_email": p.ContactEmail,
		"contact_phone": p.ContactPhone,
		"address":       p.Address,
		"city":          p.City,
		"country":       p.Country,
		"currency":      p.Currency,
		"language":      p.Language,
	}
	for col, v := range optional {
		if v != nil {
			fields[col] = *v
		}
	}

	if len(fields) == 0 {
		return nil, apperr.Validation("body", "nothing to update")
	}
	return fields, nil
}
