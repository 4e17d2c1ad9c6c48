package models

import (
	"time"

	"github.com/google/uuid"
)

type Barber struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   *User     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Bio      string `gorm:"size:500" json:"bio,omitempty"`
	Featured bool   `gorm:"not null;default:false;index" json:"featured"`
	Active   bool   `gorm:"not null;default:true;index" json:"active"`

	WorkingHours []WorkingHours `json:"working_hours,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
