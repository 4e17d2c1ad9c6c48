package models

import (
	"time"

	"github.com/google/uuid"
)

type WorkingHours struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BarberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_working_hours_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"not null;uniqueIndex:idx_working_hours_barber_weekday" json:"weekday"`

	StartTime  string `gorm:"size:5" json:"start_time"`
	EndTime    string `gorm:"size:5" json:"end_time"`
	LunchStart string `gorm:"size:5" json:"lunch_start"`
	LunchEnd   string `gorm:"size:5" json:"lunch_end"`
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
