package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

// ListBookings serves a barber's calendar for one day or one month.
type ListBookings struct {
	bookings domain.Repository
	barbers  barber.Repository
	clock    timezone.Clock
}

func NewListBookings(
	bookings domain.Repository,
	barbers barber.Repository,
	clock timezone.Clock,
) *ListBookings {
	return &ListBookings{
		bookings: bookings,
		barbers:  barbers,
		clock:    clock,
	}
}

func (uc *ListBookings) ByDate(
	ctx context.Context,
	a actor.Actor,
	barberID uuid.UUID,
	date time.Time,
) ([]models.Booking, error) {

	start, end := timezone.DayRange(date.In(uc.clock.Location()))
	return uc.list(ctx, a, barberID, start, end)
}

func (uc *ListBookings) ByMonth(
	ctx context.Context,
	a actor.Actor,
	barberID uuid.UUID,
	year int,
	month time.Month,
) ([]models.Booking, error) {

	start, end := timezone.MonthRange(year, month, uc.clock.Location())
	return uc.list(ctx, a, barberID, start, end)
}

func (uc *ListBookings) list(
	ctx context.Context,
	a actor.Actor,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	br, err := uc.barbers.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if err := barber.CanManage(br, a); err != nil {
		return nil, err
	}

	return uc.bookings.ListForPeriod(ctx, br.ID, start, end)
}
