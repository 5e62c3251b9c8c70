package model

import (
	"fmt"

	"gorm.io/gorm"
)

// All — реестр всех сущностей. Порядок не важен: AutoMigrate сам
// упорядочивает таблицы по зависимостям.
func All() []any {
	return []any{
		&Tenant{},
		&Customer{},
		&CustomerVisit{},
		&CustomerAdvance{},
		&AdvanceApplication{},
		&Service{},
		&ServiceRetouchConfig{},
		&ServiceProduct{},
		&ServiceQuote{},
		&TenantHoliday{},
		&Booking{},
		&Staff{},
		&UserRole{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&MercadoPagoPayment{},
		&MercadoPagoToken{},
		&PosTerminal{},
		&Product{},
		&ProductInventory{},
		&InventoryTransaction{},
		&InventoryAlert{},
		&ProductAlertConfig{},
		&SocialPost{},
		&ContentVariant{},
		&SocialPostTarget{},
		&PostJob{},
		&PostResult{},
		&PostingRule{},
		&TenantChannel{},
		&ChannelAccount{},
		&ChannelCredential{},
		&TenantConfig{},
		&APIKey{},
		&AuditLog{},
		&TenantQuota{},
		&MediaAsset{},
	}
}

// AutoMigrate выполняет миграцию всех сущностей.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

// TableNames возвращает имена таблиц реестра в том виде, в каком их видит gorm.
func TableNames(db *gorm.DB) ([]string, error) {
	models := All()
	names := make([]string, 0, len(models))
	for _, m := range models {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("parse %T: %w", m, err)
		}
		names = append(names, stmt.Schema.Table)
	}
	return names, nil
}
