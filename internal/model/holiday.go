package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// tenant_holidays — нерабочие дни тенанта, по одному на дату.
type TenantHoliday struct {
	Base
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:tenant_holidays_tenant_date_unique,priority:1" json:"tenantId"`
	Tenant   *Tenant   `gorm:"foreignKey:TenantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Date           datatypes.Date `gorm:"not null;uniqueIndex:tenant_holidays_tenant_date_unique,priority:2" json:"date"`
	AffectsRetouch bool           `gorm:"not null;default:true" json:"affectsRetouch"`
	Description    string         `gorm:"type:text" json:"description"`
}
