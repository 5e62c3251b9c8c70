package model

import (
	"time"

	"github.com/google/uuid"
)

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// customers
type Customer struct {
	Base
	TenantOwned

	Name   string         `gorm:"type:varchar(255);not null" json:"name"`
	Phone  string         `gorm:"type:varchar(50)" json:"phone"`
	Email  string         `gorm:"type:varchar(255)" json:"email"`
	Status CustomerStatus `gorm:"type:varchar(32);not null;default:'active';index" json:"status"`

	NextRetouchDate  *time.Time `gorm:"index" json:"nextRetouchDate"`
	RetouchServiceID *uuid.UUID `gorm:"type:uuid" json:"retouchServiceId"`

	RetouchService *Service `gorm:"foreignKey:RetouchServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

type VisitStatus string

const (
	VisitStatusScheduled VisitStatus = "scheduled"
	VisitStatusCompleted VisitStatus = "completed"
	VisitStatusCancelled VisitStatus = "cancelled"
	VisitStatusNoShow    VisitStatus = "no_show"
)

// customer_visits — журнал визитов; здесь только читается.
type CustomerVisit struct {
	Base
	TenantOwned

	CustomerID uuid.UUID   `gorm:"type:uuid;not null;index" json:"customerId"`
	BookingID  *uuid.UUID  `gorm:"type:uuid" json:"bookingId"`
	ServiceID  *uuid.UUID  `gorm:"type:uuid" json:"serviceId"`
	VisitDate  time.Time   `gorm:"not null;index" json:"visitDate"`
	Status     VisitStatus `gorm:"type:varchar(32);not null;index" json:"status"`
	Notes      string      `gorm:"type:text" json:"notes"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Booking  *Booking  `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// customer_advances — предоплаты клиента.
type CustomerAdvance struct {
	Base
	TenantOwned

	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customerId"`
	Amount     float64   `gorm:"type:numeric(12,2);not null" json:"amount"`
	Balance    float64   `gorm:"type:numeric(12,2);not null" json:"balance"`

	Customer *Customer `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// advance_applications — списания предоплаты в счёт брони.
type AdvanceApplication struct {
	Base
	TenantOwned

	AdvanceID uuid.UUID  `gorm:"type:uuid;not null;index" json:"advanceId"`
	BookingID *uuid.UUID `gorm:"type:uuid" json:"bookingId"`
	Amount    float64    `gorm:"type:numeric(12,2);not null" json:"amount"`

	Advance *CustomerAdvance `gorm:"foreignKey:AdvanceID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Booking *Booking         `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
