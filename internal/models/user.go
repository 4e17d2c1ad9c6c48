package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser   = "user"
	RoleBarber = "barber"
	RoleAdmin  = "admin"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name   string `gorm:"size:100;not null" json:"name"`
	Email  string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone  string `gorm:"size:20" json:"phone"`
	Role   string `gorm:"size:20;not null;default:'user'" json:"role"`
	Active bool   `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
