package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/model"
)

type HolidayRepository interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]model.TenantHoliday, error)
	// Только праздники с affects_retouch = true.
	ListAffectingRetouch(ctx context.Context, tenantID uuid.UUID) ([]model.TenantHoliday, error)
	Create(ctx context.Context, holiday *model.TenantHoliday) error
	// gorm.ErrRecordNotFound, если у тенанта нет такого праздника.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

type GormHolidayRepository struct {
	db *gorm.DB
}

func NewGormHolidayRepository(db *gorm.DB) *GormHolidayRepository {
	return &GormHolidayRepository{db: db}
}

func (r *GormHolidayRepository) List(ctx context.Context, tenantID uuid.UUID) ([]model.TenantHoliday, error) {
	var holidays []model.TenantHoliday
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *GormHolidayRepository) ListAffectingRetouch(ctx context.Context, tenantID uuid.UUID) ([]model.TenantHoliday, error) {
	var holidays []model.TenantHoliday
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND affects_retouch = ?", tenantID, true).
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

// Create вставляет праздник одной транзакцией. Для bool с DEFAULT gorm
// подставляет значение по умолчанию вместо false, поэтому affects_retouch = false
// дописывается отдельным UPDATE в той же транзакции.
func (r *GormHolidayRepository) Create(ctx context.Context, holiday *model.TenantHoliday) error {
	affects := holiday.AffectsRetouch
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(holiday).Error; err != nil {
			return err
		}
		if affects {
			return nil
		}
		if err := tx.Model(holiday).Update("affects_retouch", false).Error; err != nil {
			return err
		}
		holiday.AffectsRetouch = false
		return nil
	})
}

func (r *GormHolidayRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Delete(&model.TenantHoliday{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
