package model

import (
	"time"

	"gorm.io/datatypes"
)

// tenant_configs
type TenantConfig struct {
	Base
	TenantOwned

	Key   string         `gorm:"type:varchar(128);not null" json:"key"`
	Value datatypes.JSON `json:"value,omitempty"`
}

// api_keys
type APIKey struct {
	Base
	TenantOwned

	Name      string     `gorm:"type:varchar(255);not null" json:"name"`
	KeyHash   string     `gorm:"type:varchar(255);not null" json:"-"`
	RevokedAt *time.Time `json:"revokedAt"`
}

func (APIKey) TableName() string { return "api_keys" }

// audit_logs
type AuditLog struct {
	Base
	TenantOwned

	Action  string         `gorm:"type:varchar(64);not null" json:"action"`
	Actor   string         `gorm:"type:varchar(255)" json:"actor"`
	Details datatypes.JSON `json:"details,omitempty"`
}

// tenant_quotas
type TenantQuota struct {
	Base
	TenantOwned

	Resource string `gorm:"type:varchar(64);not null" json:"resource"`
	Limit    int64  `gorm:"column:quota_limit;not null" json:"limit"`
	Used     int64  `gorm:"not null;default:0" json:"used"`
}

// inflection считает quota неисчисляемым и даёт tenant_quota.
func (TenantQuota) TableName() string { return "tenant_quotas" }

// media_assets
type MediaAsset struct {
	Base
	TenantOwned

	URL       string `gorm:"type:text;not null" json:"url"`
	MimeType  string `gorm:"type:varchar(64)" json:"mimeType"`
	SizeBytes int64  `gorm:"not null;default:0" json:"sizeBytes"`
}
