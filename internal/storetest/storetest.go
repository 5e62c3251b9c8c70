// Package storetest — общие фикстуры для тестов на in-memory sqlite.
package storetest

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/db"
	"github.com/Leganyst/saas-store/internal/model"
)

// NewDB — чистая мигрированная база на один тест.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(db.MemoryDSN())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(gdb); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func mustCreate(t *testing.T, gdb *gorm.DB, v any) {
	t.Helper()
	if err := gdb.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}

// Tenant создаёт активного тенанта со слагом slug.
func Tenant(t *testing.T, gdb *gorm.DB, slug string) *model.Tenant {
	t.Helper()
	tenant := &model.Tenant{
		Slug:     slug,
		Name:     "Tenant " + slug,
		Mode:     model.TenantModeBoth,
		Status:   model.TenantStatusActive,
		Currency: "MXN",
		Timezone: "UTC",
		Language: "es",
	}
	mustCreate(t, gdb, tenant)
	return tenant
}

func Service(t *testing.T, gdb *gorm.DB, tenantID uuid.UUID, name string) *model.Service {
	t.Helper()
	s := &model.Service{TenantOwned: model.TenantOwned{TenantID: tenantID}, Name: name, Price: 100, IsActive: true}
	mustCreate(t, gdb, s)
	return s
}

func Customer(t *testing.T, gdb *gorm.DB, tenantID uuid.UUID, name string, retouchServiceID *uuid.UUID) *model.Customer {
	t.Helper()
	c := &model.Customer{
		TenantOwned:      model.TenantOwned{TenantID: tenantID},
		Name:             name,
		Phone:            "+5215512345678",
		Status:           model.CustomerStatusActive,
		RetouchServiceID: retouchServiceID,
	}
	mustCreate(t, gdb, c)
	return c
}

func Visit(t *testing.T, gdb *gorm.DB, tenantID, customerID uuid.UUID, at time.Time, status model.VisitStatus) *model.CustomerVisit {
	t.Helper()
	v := &model.CustomerVisit{
		TenantOwned: model.TenantOwned{TenantID: tenantID},
		CustomerID:  customerID,
		VisitDate:   at,
		Status:      status,
	}
	mustCreate(t, gdb, v)
	return v
}

func RetouchConfig(t *testing.T, gdb *gorm.DB, tenantID, serviceID uuid.UUID, freq model.FrequencyType, value int, businessDaysOnly bool) *model.ServiceRetouchConfig {
	t.Helper()
	c := &model.ServiceRetouchConfig{
		TenantID:         tenantID,
		ServiceID:        serviceID,
		FrequencyType:    freq,
		FrequencyValue:   value,
		IsActive:         true,
		BusinessDaysOnly: businessDaysOnly,
	}
	mustCreate(t, gdb, c)
	return c
}

// Count — число строк таблицы, удовлетворяющих условию.
func Count(t *testing.T, gdb *gorm.DB, table, where string, args ...any) int64 {
	t.Helper()
	var n int64
	q := gdb.Table(table)
	if where != "" {
		q = q.Where(where, args...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
