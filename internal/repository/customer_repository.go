package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/model"
)

type CustomerRepository interface {
	// Клиент в рамках тенанта.
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Customer, error)
	// Записать дату ретуши и обновить updated_at.
	SetNextRetouchDate(ctx context.Context, tenantID, id uuid.UUID, next time.Time) error
	// Активные клиенты по возрастанию даты ретуши, клиенты без даты — в конце.
	ListByRetouchDate(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]model.Customer, error)
	// Активные клиенты с телефоном и датой ретуши в [from, to).
	ListDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]model.Customer, error)
}

type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ? AND tenant_id = ?", id, tenantID).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormCustomerRepository) SetNextRetouchDate(ctx context.Context, tenantID, id uuid.UUID, next time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Customer{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Updates(map[string]any{
			"next_retouch_date": next.UTC(),
			"updated_at":        time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormCustomerRepository) ListByRetouchDate(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]model.Customer, error) {
	if limit <= 0 {
		return []model.Customer{}, nil
	}
	if offset < 0 {
		offset = 0
	}

	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, model.CustomerStatusActive).
		// "IS NULL" даёт 0/1 и в postgres, и в sqlite: NULL уходят в конец.
		// id в конце делает порядок полным, иначе страницы могут пересекаться.
		Order("next_retouch_date IS NULL, next_retouch_date ASC, name ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *GormCustomerRepository) ListDueBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, model.CustomerStatusActive).
		Where("phone <> ''").
		Where("next_retouch_date >= ? AND next_retouch_date < ?", from.UTC(), to.UTC()).
		Order("next_retouch_date ASC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}
