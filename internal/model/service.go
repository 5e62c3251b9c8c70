package model

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// services
type Service struct {
	Base
	TenantOwned

	Name        string  `gorm:"type:varchar(255);not null" json:"name"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"type:numeric(12,2);not null;default:0" json:"price"`

	// В минутах, может быть nil, если услуга не фиксирована по времени.
	DurationMinutes *int64 `json:"durationMinutes"`

	IsActive bool `gorm:"not null;default:true;index" json:"isActive"`
}

type FrequencyType string

const (
	FrequencyDays   FrequencyType = "days"
	FrequencyWeeks  FrequencyType = "weeks"
	FrequencyMonths FrequencyType = "months"
)

// service_retouch_config — правило ретуши для услуги, не больше одного на (тенант, услуга).
type ServiceRetouchConfig struct {
	Base
	TenantID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:service_retouch_config_tenant_service_unique,priority:1" json:"tenantId"`
	Tenant   *Tenant   `gorm:"foreignKey:TenantID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:service_retouch_config_tenant_service_unique,priority:2" json:"serviceId"`

	FrequencyType    FrequencyType  `gorm:"type:varchar(16);not null" json:"frequencyType"`
	FrequencyValue   int            `gorm:"not null" json:"frequencyValue"`
	IsActive         bool           `gorm:"not null;default:true" json:"isActive"`
	IsDefault        bool           `gorm:"not null;default:false" json:"isDefault"`
	BusinessDaysOnly bool           `gorm:"not null;default:false" json:"businessDaysOnly"`
	Metadata         datatypes.JSON `gorm:"not null;default:'{}'" json:"metadata,omitempty"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (ServiceRetouchConfig) TableName() string { return "service_retouch_config" }

// service_products — расходники, списываемые услугой.
type ServiceProduct struct {
	Base
	TenantOwned

	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"serviceId"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Quantity  float64   `gorm:"type:numeric(12,3);not null;default:1" json:"quantity"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// service_quotes — расчёты стоимости для клиента.
type ServiceQuote struct {
	Base
	TenantOwned

	ServiceID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"serviceId"`
	CustomerID *uuid.UUID `gorm:"type:uuid" json:"customerId"`
	Amount     float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status     string     `gorm:"type:varchar(32);not null;default:'draft'" json:"status"`

	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
