package models

import (
	"time"

	"github.com/google/uuid"
)

// Service is a catalog entry; its price and duration are copied into a Booking
// when the booking is created.
type Service struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	Price       float64 `gorm:"not null" json:"price"`
	Active      bool    `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
