package model

import "gorm.io/datatypes"

type TenantMode string

const (
	TenantModeBooking   TenantMode = "booking"
	TenantModeEcommerce TenantMode = "ecommerce"
	TenantModeBoth      TenantMode = "both"
)

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// tenants
type Tenant struct {
	Base

	Slug        string       `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Mode        TenantMode   `gorm:"type:varchar(32);not null;default:'both'" json:"mode"`
	Status      TenantStatus `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`

	ContactEmail string `gorm:"type:varchar(255)" json:"contactEmail"`
	ContactPhone string `gorm:"type:varchar(50)" json:"contactPhone"`
	Address      string `gorm:"type:text" json:"address"`
	City         string `gorm:"type:varchar(100)" json:"city"`
	Country      string `gorm:"type:varchar(100)" json:"country"`

	Currency string `gorm:"type:varchar(8);not null;default:'MXN'" json:"currency"`
	// IANA-зона; все сравнения дат ретуши делаются в ней.
	Timezone string `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	Language string `gorm:"type:varchar(8);not null;default:'es'" json:"language"`

	// NOT NULL: NULL в JSON-колонке не читается обратно в datatypes.JSON
	Branding datatypes.JSON `gorm:"not null;default:'{}'" json:"branding,omitempty"`
	Features datatypes.JSON `gorm:"not null;default:'{}'" json:"features,omitempty"`
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
