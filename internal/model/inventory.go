package model

import "github.com/google/uuid"

// products
type Product struct {
	Base
	TenantOwned

	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	SKU      string  `gorm:"type:varchar(64)" json:"sku"`
	Price    float64 `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	IsActive bool    `gorm:"not null;default:true" json:"isActive"`
}

// product_inventory — остаток по товару.
type ProductInventory struct {
	Base
	TenantOwned

	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Quantity  float64   `gorm:"type:numeric(12,3);not null;default:0" json:"quantity"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (ProductInventory) TableName() string { return "product_inventory" }

// inventory_transactions
type InventoryTransaction struct {
	Base
	TenantOwned

	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Delta     float64   `gorm:"type:numeric(12,3);not null" json:"delta"`
	Reason    string    `gorm:"type:varchar(64)" json:"reason"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// inventory_alerts
type InventoryAlert struct {
	Base
	TenantOwned

	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Message   string    `gorm:"type:text" json:"message"`
	Resolved  bool      `gorm:"not null;default:false" json:"resolved"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// product_alert_config — порог остатка для уведомления.
type ProductAlertConfig struct {
	Base
	TenantOwned

	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	MinStock  float64   `gorm:"type:numeric(12,3);not null;default:0" json:"minStock"`

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (ProductAlertConfig) TableName() string { return "product_alert_config" }
