package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/calendar"
	"github.com/Leganyst/saas-store/internal/model"
)

// ServiceFilter — выборка услуг одного тенанта.
type ServiceFilter struct {
	TenantID   uuid.UUID
	OnlyActive bool
	Window     calendar.Window
}

type ServiceRepository interface {
	// Услуга тенанта; чужая услуга выглядит как отсутствующая.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Service, error)
	List(ctx context.Context, f ServiceFilter) ([]model.Service, int64, error)
	NamesByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Service, error) {
	var svc model.Service
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&svc, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

// List возвращает страницу услуг и общее число подходящих строк.
// Пустое окно отдаёт только счётчик.
func (r *GormServiceRepository) List(ctx context.Context, f ServiceFilter) ([]model.Service, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("tenant_id = ?", f.TenantID)
		if f.OnlyActive {
			db = db.Where("is_active = ?", true)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Service{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := []model.Service{}
	if f.Window.Empty() || total == 0 {
		return out, total, nil
	}

	err := r.db.WithContext(ctx).
		Scopes(scope).
		Order("name ASC").Order("id ASC").
		Limit(f.Window.Limit).Offset(f.Window.Offset).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// NamesByIDs — id → название для услуг тенанта; чужие и несуществующие id пропускаются.
func (r *GormServiceRepository) NamesByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	err := r.db.WithContext(ctx).
		Model(&model.Service{}).
		Select("id", "name").
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}
