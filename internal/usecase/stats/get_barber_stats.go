package stats

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/stats"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type GetBarberStats struct {
	bookings booking.Repository
	barbers  barber.Repository
	clock    timezone.Clock
}

func NewGetBarberStats(
	bookings booking.Repository,
	barbers barber.Repository,
	clock timezone.Clock,
) *GetBarberStats {
	return &GetBarberStats{
		bookings: bookings,
		barbers:  barbers,
		clock:    clock,
	}
}

func (uc *GetBarberStats) Execute(
	ctx context.Context,
	a actor.Actor,
	barberID uuid.UUID,
	window domain.Window,
) (*domain.BarberStats, error) {

	if err := window.Validate(); err != nil {
		return nil, err
	}

	b, err := uc.barbers.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if err := barber.CanManage(b, a); err != nil {
		return nil, err
	}

	rows, err := uc.bookings.ListForPeriod(ctx, b.ID, window.From, window.To)
	if err != nil {
		return nil, err
	}

	out := domain.Aggregate(b.ID, window, rows, uc.clock.Location())
	return &out, nil
}
