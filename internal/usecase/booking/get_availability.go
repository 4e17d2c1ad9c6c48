package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
)

type AvailabilityInput struct {
	BarberID  uuid.UUID
	Date      time.Time
	ServiceID *uuid.UUID
}

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}

type GetAvailability struct {
	bookings    domain.Repository
	barbers     barber.Repository
	catalog     catalog.Repository
	clock       timezone.Clock
	granularity time.Duration
}

func NewGetAvailability(
	bookings domain.Repository,
	barbers barber.Repository,
	catalog catalog.Repository,
	clock timezone.Clock,
	granularity time.Duration,
) *GetAvailability {
	return &GetAvailability{
		bookings:    bookings,
		barbers:     barbers,
		catalog:     catalog,
		clock:       clock,
		granularity: granularity,
	}
}

// Execute lists the bookable start times of the barber on in.Date. Without a
// service each slot spans one grid step; with one, the service duration.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]Slot, error) {

	b, err := uc.barbers.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if !b.Active {
		return nil, barber.ErrBarberNotFound
	}

	span := uc.granularity
	var fit time.Duration

	if in.ServiceID != nil {
		svc, err := uc.catalog.GetService(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		if !svc.Active {
			return nil, catalog.ErrServiceNotFound
		}
		span = time.Duration(svc.DurationMin) * time.Minute
		fit = span
	}

	date := timezone.StartOfDay(in.Date.In(uc.clock.Location()))

	policy, err := dayPolicy(ctx, uc.barbers, b.ID, date)
	if err != nil {
		return nil, err
	}

	candidates := availability.GenerateSlots(availability.SlotRequest{
		Policy:      policy,
		Date:        date,
		Granularity: uc.granularity,
		Now:         uc.clock.Now(),
		Fit:         fit,
	})
	if len(candidates) == 0 {
		return []Slot{}, nil
	}

	dayStart, dayEnd := timezone.DayRange(date)
	existing, err := uc.bookings.ListActiveOverlapping(ctx, b.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	free := availability.FilterConflicts(candidates, span, domain.BusyIntervals(existing))

	out := make([]Slot, 0, len(free))
	for _, s := range free {
		out = append(out, Slot{
			Start: s,
			End:   s.Add(span),
			Label: s.Format("15:04"),
		})
	}
	return out, nil
}
