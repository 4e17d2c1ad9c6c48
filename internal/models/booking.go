package models

import (
	"time"

	"github.com/google/uuid"
)

type Booking struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CustomerID uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"customer,omitempty"`

	BarberID uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_barber_start" json:"barber_id"`
	Barber   *Barber   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber,omitempty"`

	ServiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	Service   *Service  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	StartTime   time.Time `gorm:"type:timestamptz;not null;index:idx_bookings_barber_start" json:"start_time"`
	EndTime     time.Time `gorm:"type:timestamptz;not null" json:"end_time"`
	DurationMin int       `gorm:"not null" json:"duration_min"`

	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	Price         float64  `gorm:"not null" json:"price"`
	TotalRevenue  *float64 `json:"total_revenue"`
	PaymentMethod *string  `gorm:"size:20" json:"payment_method"`

	CancellationReason string     `gorm:"size:500" json:"cancellation_reason,omitempty"`
	CancelledBy        *string    `gorm:"size:10" json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`

	Notes string `gorm:"size:255" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
