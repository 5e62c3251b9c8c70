package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/saas-store/internal/model"
)

// RetouchConfigRow — конфигурация вместе с названием услуги.
// ServiceName == nil, если услуга удалена в обход приложения.
type RetouchConfigRow struct {
	ID               uuid.UUID
	ServiceID        uuid.UUID
	ServiceName      *string
	FrequencyType    model.FrequencyType
	FrequencyValue   int
	IsActive         bool
	IsDefault        bool
	BusinessDaysOnly bool
}

type RetouchConfigRepository interface {
	// Активная конфигурация для (тенант, услуга).
	GetActive(ctx context.Context, tenantID, serviceID uuid.UUID) (*model.ServiceRetouchConfig, error)
	// LEFT JOIN services: конфигурации без услуги не теряются.
	ListWithServiceName(ctx context.Context, tenantID uuid.UUID) ([]RetouchConfigRow, error)
	// В одной транзакции: снять is_default с остальных (если cfg.IsDefault),
	// затем INSERT ... ON CONFLICT (tenant_id, service_id) DO UPDATE.
	Upsert(ctx context.Context, cfg *model.ServiceRetouchConfig) error
	// Включить/выключить; при выключении снимается и is_default.
	SetActive(ctx context.Context, tenantID, serviceID uuid.UUID, active bool) error
}

type GormRetouchConfigRepository struct {
	db   *gorm.DB
	txOp *sql.TxOptions
}

// NewGormRetouchConfigRepository; txOpts может быть nil — тогда уровень изоляции драйвера.
func NewGormRetouchConfigRepository(db *gorm.DB, txOpts *sql.TxOptions) *GormRetouchConfigRepository {
	return &GormRetouchConfigRepository{db: db, txOp: txOpts}
}

func (r *GormRetouchConfigRepository) GetActive(ctx context.Context, tenantID, serviceID uuid.UUID) (*model.ServiceRetouchConfig, error) {
	var c model.ServiceRetouchConfig
	err := r.db.WithContext(ctx).
		First(&c, "tenant_id = ? AND service_id = ? AND is_active = ?", tenantID, serviceID, true).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *GormRetouchConfigRepository) ListWithServiceName(ctx context.Context, tenantID uuid.UUID) ([]RetouchConfigRow, error) {
	var rows []RetouchConfigRow
	err := r.db.WithContext(ctx).
		Table("service_retouch_config AS c").
		Select(`c.id, c.service_id, s.name AS service_name, c.frequency_type, c.frequency_value,
			c.is_active, c.is_default, c.business_days_only`).
		Joins("LEFT JOIN services s ON s.id = c.service_id").
		Where("c.tenant_id = ?", tenantID).
		Order("c.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []RetouchConfigRow{}
	}
	return rows, nil
}

func (r *GormRetouchConfigRepository) Upsert(ctx context.Context, cfg *model.ServiceRetouchConfig) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cfg.IsDefault {
			err := tx.Model(&model.ServiceRetouchConfig{}).
				Where("tenant_id = ? AND service_id <> ? AND is_default = ?", cfg.TenantID, cfg.ServiceID, true).
				Updates(map[string]any{"is_default": false, "updated_at": time.Now().UTC()}).Error
			if err != nil {
				return err
			}
		}

		// новая строка всегда активна; при конфликте is_active не трогаем
		cfg.IsActive = true
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "tenant_id"}, {Name: "service_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"frequency_type",
				"frequency_value",
				"is_default",
				"business_days_only",
				"updated_at",
			}),
		}).Create(cfg).Error
	}, r.txOp)
}

func (r *GormRetouchConfigRepository) SetActive(ctx context.Context, tenantID, serviceID uuid.UUID, active bool) error {
	fields := map[string]any{"is_active": active, "updated_at": time.Now().UTC()}
	if !active {
		fields["is_default"] = false
	}
	res := r.db.WithContext(ctx).
		Model(&model.ServiceRetouchConfig{}).
		Where("tenant_id = ? AND service_id = ?", tenantID, serviceID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
