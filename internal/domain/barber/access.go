package barber

import (
	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var (
	ErrNotBarberOwner = apperr.Forbidden("not_barber_owner", "only the barber or an admin may do this")
	ErrAdminOnly      = apperr.Forbidden("admin_only", "admin role required")
)

// CanManage allows admins, and barbers acting on their own record.
func CanManage(b *models.Barber, a actor.Actor) error {
	if a.IsAdmin() {
		return nil
	}
	if a.Role == actor.RoleBarber && b.UserID == a.ID {
		return nil
	}
	return ErrNotBarberOwner
}

func RequireAdmin(a actor.Actor) error {
	if !a.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
