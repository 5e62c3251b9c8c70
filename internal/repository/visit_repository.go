package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/saas-store/internal/model"
)

type VisitRepository interface {
	// Последний завершённый визит клиента; gorm.ErrRecordNotFound, если таких нет.
	LastCompleted(ctx context.Context, tenantID, customerID uuid.UUID) (*model.CustomerVisit, error)
}

type GormVisitRepository struct {
	db *gorm.DB
}

func NewGormVisitRepository(db *gorm.DB) *GormVisitRepository {
	return &GormVisitRepository{db: db}
}

func (r *GormVisitRepository) LastCompleted(ctx context.Context, tenantID, customerID uuid.UUID) (*model.CustomerVisit, error) {
	var v model.CustomerVisit
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ? AND status = ?", tenantID, customerID, model.VisitStatusCompleted).
		Order("visit_date DESC").
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}
