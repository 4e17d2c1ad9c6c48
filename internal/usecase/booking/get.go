package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type GetBooking struct {
	bookings domain.Repository
	barbers  barber.Repository
}

func NewGetBooking(
	bookings domain.Repository,
	barbers barber.Repository,
) *GetBooking {
	return &GetBooking{
		bookings: bookings,
		barbers:  barbers,
	}
}

// Execute returns the booking along with the statuses a may move it to.
func (uc *GetBooking) Execute(
	ctx context.Context,
	a actor.Actor,
	id uuid.UUID,
) (*models.Booking, []domain.Status, error) {

	b, err := uc.bookings.GetBooking(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	br, err := uc.barbers.GetBarber(ctx, b.BarberID)
	if err != nil {
		return nil, nil, err
	}
	if err := domain.Authorize(b, a, br.UserID); err != nil {
		return nil, nil, err
	}

	return b, domain.AllowedTargets(domain.Status(b.Status), a.Role), nil
}
