package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/cascade"
	"github.com/Leganyst/saas-store/internal/db"
	"github.com/Leganyst/saas-store/internal/model"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/storetest"
)

type recordingInvalidator struct {
	slugs []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, slug string) {
	r.slugs = append(r.slugs, slug)
}

type failingDeleter struct {
	err error
}

func (f failingDeleter) DeleteTenant(context.Context, uuid.UUID) (cascade.Report, error) {
	return cascade.Report{}, f.err
}

func newTenantService(t *testing.T, gdb *gorm.DB, inv SlugInvalidator) *TenantService {
	t.Helper()
	deleter, err := cascade.NewDeleter(gdb, cascade.DefaultPlan(), db.TxOptions(""), nil)
	require.NoError(t, err)
	return NewTenantService(
		repository.NewGormTenantRepository(gdb),
		deleter,
		inv,
		TenantPolicy{ReservedSlug: "zo-system"},
		nil,
	)
}

func TestTenantPolicy_IsReserved(t *testing.T) {
	p := TenantPolicy{ReservedSlug: "zo-system"}
	assert.True(t, p.IsReserved("zo-system"))
	assert.True(t, p.IsReserved(" ZO-System "))
	assert.False(t, p.IsReserved("salon"))
	assert.False(t, TenantPolicy{}.IsReserved(""))
}

func TestTenantService_DeleteTenant(t *testing.T) {
	gdb := storetest.NewDB(t)
	ctx := context.Background()
	inv := &recordingInvalidator{}
	svc := newTenantService(t, gdb, inv)

	tenant := storetest.Tenant(t, gdb, "salon")
	keep := storetest.Tenant(t, gdb, "vecino")
	for _, id := range []uuid.UUID{tenant.ID, keep.ID} {
		service := storetest.Service(t, gdb, id, "Uñas")
		storetest.Customer(t, gdb, id, "Ana", &service.ID)
		storetest.RetouchConfig(t, gdb, id, service.ID, model.FrequencyWeeks, 2, false)
	}

	report, err := svc.DeleteTenant(ctx, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, report.TenantID)
	assert.Positive(t, report.Total())
	assert.Equal(t, []string{"salon"}, inv.slugs)

	assert.Zero(t, storetest.Count(t, gdb, "tenants", "id = ?", tenant.ID))
	assert.Zero(t, storetest.Count(t, gdb, "customers", "tenant_id = ?", tenant.ID))
	assert.Equal(t, int64(1), storetest.Count(t, gdb, "customers", "tenant_id = ?", keep.ID))
	assert.Equal(t, int64(1), storetest.Count(t, gdb, "service_retouch_config", "tenant_id = ?", keep.ID))
}

func TestTenantService_DeleteTenant_Unknown(t *testing.T) {
	gdb := storetest.NewDB(t)
	svc := newTenantService(t, gdb, nil)

	_, err := svc.DeleteTenant(context.Background(), uuid.New())
	requireKind(t, err, apperr.KindNotFound, "tenant")
}

func TestTenantService_DeleteTenant_SystemTenantRefused(t *testing.T) {
	gdb := storetest.NewDB(t)
	inv := &recordingInvalidator{}
	svc := newTenantService(t, gdb, inv)
	system := storetest.Tenant(t, gdb, "zo-system")
	storetest.Customer(t, gdb, system.ID, "Admin", nil)

	_, err := svc.DeleteTenant(context.Background(), system.ID)
	requireKind(t, err, apperr.KindValidation, "slug")

	assert.Equal(t, int64(1), storetest.Count(t, gdb, "tenants", "id = ?", system.ID))
	assert.Equal(t, int64(1), storetest.Count(t, gdb, "customers", "tenant_id = ?", system.ID))
	assert.Empty(t, inv.slugs)
}

func TestTenantService_DeleteTenant_DeleterErrorPassesThrough(t *testing.T) {
	gdb := storetest.NewDB(t)
	tenant := storetest.Tenant(t, gdb, "salon")
	inv := &recordingInvalidator{}
	cause := apperr.Database(opDeleteTenant, errors.New("boom"))
	svc := NewTenantService(repository.NewGormTenantRepository(gdb), failingDeleter{err: cause}, inv,
		TenantPolicy{ReservedSlug: "zo-system"}, nil)

	_, err := svc.DeleteTenant(context.Background(), tenant.ID)
	assert.Same(t, cause, err)
	assert.Empty(t, inv.slugs)
}

func TestTenantService_UpdateTenant(t *testing.T) {
	gdb := storetest.NewDB(t)
	inv := &recordingInvalidator{}
	svc := newTenantService(t, gdb, inv)
	tenant := storetest.Tenant(t, gdb, "salon")

	name := "Salón Rosa"
	tz := "America/Mexico_City"
	inactive := false
	got, err := svc.UpdateTenant(context.Background(), tenant.ID, TenantPatch{
		Name:     &name,
		Timezone: &tz,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, tz, got.Timezone)
	assert.Equal(t, model.TenantStatusInactive, got.Status)
	assert.Equal(t, []string{"salon"}, inv.slugs)
}

func TestTenantService_UpdateTenant_Rejects(t *testing.T) {
	gdb := storetest.NewDB(t)
	svc := newTenantService(t, gdb, nil)
	tenant := storetest.Tenant(t, gdb, "salon")
	system := storetest.Tenant(t, gdb, "zo-system")
	ctx := context.Background()

	blank := "  "
	_, err := svc.UpdateTenant(ctx, tenant.ID, TenantPatch{Name: &blank})
	requireKind(t, err, apperr.KindValidation, "name")

	badTZ := "Mars/Olympus"
	_, err = svc.UpdateTenant(ctx, tenant.ID, TenantPatch{Timezone: &badTZ})
	requireKind(t, err, apperr.KindValidation, "timezone")

	badMode := model.TenantMode("kiosk")
	_, err = svc.UpdateTenant(ctx, tenant.ID, TenantPatch{Mode: &badMode})
	requireKind(t, err, apperr.KindValidation, "mode")

	_, err = svc.UpdateTenant(ctx, tenant.ID, TenantPatch{})
	requireKind(t, err, apperr.KindValidation, "body")

	name := "Sistema"
	_, err = svc.UpdateTenant(ctx, system.ID, TenantPatch{Name: &name})
	requireKind(t, err, apperr.KindValidation, "slug")

	_, err = svc.UpdateTenant(ctx, uuid.New(), TenantPatch{Name: &name})
	requireKind(t, err, apperr.KindNotFound, "tenant")
}
