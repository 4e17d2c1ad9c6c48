package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_customer_barber" json:"customer_id"`
	BarberID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_customer_barber" json:"barber_id"`
	BookingID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"booking_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:1000" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
