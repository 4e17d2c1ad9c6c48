package barber_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestCanManage(t *testing.T) {
	b := &models.Barber{ID: uuid.New(), UserID: uuid.New()}

	assert.NoError(t, barber.CanManage(b, actor.Actor{ID: uuid.New(), Role: actor.RoleAdmin}))
	assert.NoError(t, barber.CanManage(b, actor.Actor{ID: b.UserID, Role: actor.RoleBarber}))
	assert.ErrorIs(t, barber.CanManage(b, actor.Actor{ID: uuid.New(), Role: actor.RoleBarber}), barber.ErrNotBarberOwner)
	assert.ErrorIs(t, barber.CanManage(b, actor.Actor{ID: b.UserID, Role: actor.RoleUser}), barber.ErrNotBarberOwner)
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, barber.RequireAdmin(actor.Actor{Role: actor.RoleAdmin}))
	assert.ErrorIs(t, barber.RequireAdmin(actor.Actor{Role: actor.RoleBarber}), barber.ErrAdminOnly)
}
