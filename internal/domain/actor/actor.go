// Package actor describes who is performing an operation.
package actor

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Role string

const (
	RoleUser   Role = models.RoleUser
	RoleBarber Role = models.RoleBarber
	RoleAdmin  Role = models.RoleAdmin
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleBarber, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Actor is the authenticated caller. ID is the user account id, also for barbers.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
