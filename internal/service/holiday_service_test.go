package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leganyst/saas-store/internal/apperr"
	"github.com/Leganyst/saas-store/internal/repository"
	"github.com/Leganyst/saas-store/internal/storetest"
)

func TestHolidayService_CreateListDelete(t *testing.T) {
	gdb := storetest.NewDB(t)
	ctx := context.Background()
	tenant := storetest.Tenant(t, gdb, "salon")
	svc := NewHolidayService(repository.NewGormHolidayRepository(gdb), nil)

	xmas, err := svc.Create(ctx, tenant.ID, CreateHolidayInput{Date: "2026-12-25", Name: "Navidad"})
	require.NoError(t, err)
	assert.True(t, xmas.AffectsRetouch)
	assert.Equal(t, "2026-12-25", xmas.Date)

	off := false
	info, err := svc.Create(ctx, tenant.ID, CreateHolidayInput{Date: "2026-09-16", Name: "Independencia", AffectsRetouch: &off})
	require.NoError(t, err)
	assert.False(t, info.AffectsRetouch)

	list, err := svc.List(ctx, tenant.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-09-16", list[0].Date)
	assert.False(t, list[0].AffectsRetouch)
	assert.Equal(t, "2026-12-25", list[1].Date)

	require.NoError(t, svc.Delete(ctx, tenant.ID, xmas.ID))
	err = svc.Delete(ctx, tenant.ID, xmas.ID)
	requireKind(t, err, apperr.KindNotFound, "holiday")
}

func TestHolidayService_CreateRejects(t *testing.T) {
	gdb := storetest.NewDB(t)
	ctx := context.Background()
	tenant := storetest.Tenant(t, gdb, "salon")
	svc := NewHolidayService(repository.NewGormHolidayRepository(gdb), nil)

	_, err := svc.Create(ctx, tenant.ID, CreateHolidayInput{Date: "25/12/2026", Name: "Navidad"})
	requireKind(t, err, apperr.KindValidation, "date")

	_, err = svc.Create(ctx, tenant.ID, CreateHolidayInput{Date: "2026-12-25"})
	requireKind(t, err, apperr.KindValidation, "name")

	_, err = svc.Create(ctx, tenant.ID, CreateHolidayInput{Date: "2026-12-25", Name: "Navidad"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, tenant.ID, CreateHolidayInput{Date: "2026-12-25", Name: "Otra vez"})
	requireKind(t, err, apperr.KindValidation, "date")
}

func TestHolidayService_DeleteOtherTenant(t *testing.T) {
	gdb := storetest.NewDB(t)
	ctx := context.Background()
	tenant := storetest.Tenant(t, gdb, "salon")
	other := storetest.Tenant(t, gdb, "otro")
	svc := NewHolidayService(repository.NewGormHolidayRepository(gdb), nil)

	h, err := svc.Create(ctx, tenant.ID, CreateHolidayInput{Date: "2026-05-01", Name: "Trabajo"})
	require.NoError(t, err)

	requireKind(t, svc.Delete(ctx, other.ID, h.ID), apperr.KindNotFound, "holiday")
	requireKind(t, svc.Delete(ctx, tenant.ID, uuid.New()), apperr.KindNotFound, "holiday")
	assert.Equal(t, int64(1), storetest.Count(t, gdb, "tenant_holidays", "tenant_id = ?", tenant.ID))
}
