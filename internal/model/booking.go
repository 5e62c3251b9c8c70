package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookings
type Booking struct {
	Base
	TenantOwned

	CustomerID uuid.UUID     `gorm:"type:uuid;not null;index" json:"customerId"`
	ServiceID  *uuid.UUID    `gorm:"type:uuid" json:"serviceId"`
	StaffID    *uuid.UUID    `gorm:"type:uuid" json:"staffId"`
	StartsAt   time.Time     `gorm:"not null;index" json:"startsAt"`
	EndsAt     time.Time     `gorm:"not null" json:"endsAt"`
	Status     BookingStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	Comment    string        `gorm:"type:text" json:"comment"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Staff    *Staff    `gorm:"foreignKey:StaffID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// staff
type Staff struct {
	Base
	TenantOwned

	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255)" json:"email"`
	Phone    string `gorm:"type:varchar(50)" json:"phone"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`
}

func (Staff) TableName() string { return "staff" }

// user_roles — роль пользователя внутри тенанта. Пользователи живут
// во внешнем сервисе авторизации, поэтому user_id без внешнего ключа.
type UserRole struct {
	Base
	TenantOwned

	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Role   string    `gorm:"type:varchar(32);not null" json:"role"`
}
