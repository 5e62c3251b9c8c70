package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base — общие поля всех таблиц.
// ID генерируется на стороне приложения: так одна и та же схема мигрирует
// и на PostgreSQL, и на SQLite (там нет gen_random_uuid()).
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TenantOwned — строка, принадлежащая тенанту.
type TenantOwned struct {
	TenantID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenantId"`
	Tenant   *Tenant   `gorm:"foreignKey:TenantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
