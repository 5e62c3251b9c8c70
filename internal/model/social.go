package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// social_posts
type SocialPost struct {
	Base
	TenantOwned

	Body        string     `gorm:"type:text" json:"body"`
	Status      string     `gorm:"type:varchar(32);not null" json:"status"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// content_variants — вариант текста/медиа под конкретную сеть; без tenant_id.
type ContentVariant struct {
	Base

	SocialPostID uuid.UUID `gorm:"type:uuid;not null;index" json:"socialPostId"`
	Network      string    `gorm:"type:varchar(32);not null" json:"network"`
	Body         string    `gorm:"type:text" json:"body"`

	SocialPost *SocialPost `gorm:"foreignKey:SocialPostID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// social_post_targets — куда публиковать пост; без tenant_id.
type SocialPostTarget struct {
	Base

	SocialPostID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"socialPostId"`
	ChannelAccountID *uuid.UUID `gorm:"type:uuid" json:"channelAccountId"`

	SocialPost     *SocialPost     `gorm:"foreignKey:SocialPostID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ChannelAccount *ChannelAccount `gorm:"foreignKey:ChannelAccountID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// post_jobs
type PostJob struct {
	Base
	TenantOwned

	SocialPostID *uuid.UUID `gorm:"type:uuid" json:"socialPostId"`
	Status       string     `gorm:"type:varchar(32);not null" json:"status"`
	Attempts     int        `gorm:"not null;default:0" json:"attempts"`

	SocialPost *SocialPost `gorm:"foreignKey:SocialPostID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// post_results — итог выполнения задачи; без tenant_id.
type PostResult struct {
	Base

	PostJobID uuid.UUID      `gorm:"type:uuid;not null;index" json:"postJobId"`
	Success   bool           `gorm:"not null" json:"success"`
	Response  datatypes.JSON `json:"response,omitempty"`

	PostJob *PostJob `gorm:"foreignKey:PostJobID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// posting_rules
type PostingRule struct {
	Base
	TenantOwned

	Name string         `gorm:"type:varchar(255);not null" json:"name"`
	Rule datatypes.JSON `json:"rule,omitempty"`
}

// tenant_channels
type TenantChannel struct {
	Base
	TenantOwned

	Network string `gorm:"type:varchar(32);not null" json:"network"`
	Name    string `gorm:"type:varchar(255)" json:"name"`
}

// channel_accounts — без tenant_id.
type ChannelAccount struct {
	Base

	TenantChannelID uuid.UUID `gorm:"type:uuid;not null;index" json:"tenantChannelId"`
	ExternalID      string    `gorm:"type:varchar(128)" json:"externalId"`

	TenantChannel *TenantChannel `gorm:"foreignKey:TenantChannelID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// channel_credentials — без tenant_id.
type ChannelCredential struct {
	Base

	ChannelAccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"channelAccountId"`
	Secret           string    `gorm:"type:text" json:"-"`

	ChannelAccount *ChannelAccount `gorm:"foreignKey:ChannelAccountID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
