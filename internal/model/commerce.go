package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// orders
type Order struct {
	Base
	TenantOwned

	CustomerID *uuid.UUID `gorm:"type:uuid" json:"customerId"`
	Number     string     `gorm:"type:varchar(64);not null" json:"number"`
	Status     string     `gorm:"type:varchar(32);not null;index" json:"status"`
	Total      float64    `gorm:"type:numeric(12,2);not null;default:0" json:"total"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// order_items — без tenant_id, принадлежность через orders.
type OrderItem struct {
	Base

	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"orderId"`
	ProductID *uuid.UUID `gorm:"type:uuid" json:"productId"`
	Quantity  int        `gorm:"not null;default:1" json:"quantity"`
	UnitPrice float64    `gorm:"type:numeric(12,2);not null" json:"unitPrice"`

	Order   *Order   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// payments
type Payment struct {
	Base
	TenantOwned

	OrderID *uuid.UUID `gorm:"type:uuid" json:"orderId"`
	Amount  float64    `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method  string     `gorm:"type:varchar(32);not null" json:"method"`
	Status  string     `gorm:"type:varchar(32);not null" json:"status"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// mercadopago_payments
type MercadoPagoPayment struct {
	Base
	TenantOwned

	OrderID    *uuid.UUID     `gorm:"type:uuid" json:"orderId"`
	ExternalID string         `gorm:"type:varchar(128);not null" json:"externalId"`
	Status     string         `gorm:"type:varchar(32);not null" json:"status"`
	Payload    datatypes.JSON `json:"payload,omitempty"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (MercadoPagoPayment) TableName() string { return "mercadopago_payments" }

// mercadopago_tokens
type MercadoPagoToken struct {
	Base
	TenantOwned

	AccessToken  string     `gorm:"type:text;not null" json:"-"`
	RefreshToken string     `gorm:"type:text" json:"-"`
	ExpiresAt    *time.Time `json:"expiresAt"`
}

func (MercadoPagoToken) TableName() string { return "mercadopago_tokens" }

// pos_terminals
type PosTerminal struct {
	Base
	TenantOwned

	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	ExternalID string `gorm:"type:varchar(128)" json:"externalId"`
}
