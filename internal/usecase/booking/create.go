package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

var ErrCustomerRequired = apperr.Validation("customer_required", "customer_id is required when booking for someone else")

type CreateInput struct {
	BarberID   uuid.UUID
	ServiceID  uuid.UUID
	Start      time.Time
	CustomerID *uuid.UUID
	Notes      string
}

type CreateBooking struct {
	tx          txmanager.Transactor
	bookings    domain.Repository
	barbers     barber.Repository
	catalog     catalog.Repository
	clock       timezone.Clock
	granularity time.Duration
	metrics     *metrics.Metrics
	audit       *audit.Dispatcher
}

func NewCreateBooking(
	tx txmanager.Transactor,
	bookings domain.Repository,
	barbers barber.Repository,
	catalog catalog.Repository,
	clock timezone.Clock,
	granularity time.Duration,
	m *metrics.Metrics,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		tx:          tx,
		bookings:    bookings,
		barbers:     barbers,
		catalog:     catalog,
		clock:       clock,
		granularity: granularity,
		metrics:     m,
		audit:       audit,
	}
}

func (uc *CreateBooking) customerFor(a actor.Actor, in CreateInput) (uuid.UUID, error) {
	if a.Role == actor.RoleUser {
		if in.CustomerID != nil && *in.CustomerID != a.ID {
			return uuid.Nil, domain.ErrNotOwner
		}
		return a.ID, nil
	}
	if in.CustomerID == nil || *in.CustomerID == uuid.Nil {
		return uuid.Nil, ErrCustomerRequired
	}
	return *in.CustomerID, nil
}

// Execute books the slot atomically: the barber row is locked, the overlap
// check and the insert run in the same transaction, and the exclusion
// constraint catches anything that slips past.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	a actor.Actor,
	in CreateInput,
) (*models.Booking, error) {

	customerID, err := uc.customerFor(a, in)
	if err != nil {
		return nil, err
	}

	start := in.Start.In(uc.clock.Location())
	var created *models.Booking

	err = uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		br, err := uc.barbers.LockBarber(ctx, in.BarberID)
		if err != nil {
			return err
		}
		if !br.Active {
			return barber.ErrBarberNotFound
		}
		if a.Role == actor.RoleBarber && br.UserID != a.ID {
			return barber.ErrNotBarberOwner
		}

		svc, err := uc.catalog.GetService(ctx, in.ServiceID)
		if err != nil {
			return err
		}
		if !svc.Active {
			return catalog.ErrServiceNotFound
		}

		customer, err := uc.catalog.GetUser(ctx, customerID)
		if err != nil {
			return err
		}
		if !customer.Active {
			return catalog.ErrUserNotFound
		}

		duration := time.Duration(svc.DurationMin) * time.Minute

		policy, err := dayPolicy(ctx, uc.barbers, br.ID, start)
		if err != nil {
			return err
		}
		if err := domain.ValidateSlot(policy, start, duration, uc.granularity, uc.clock.Now()); err != nil {
			return err
		}

		candidate := availability.NewInterval(start, duration)
		existing, err := uc.bookings.ListActiveOverlapping(ctx, br.ID, candidate.Start, candidate.End)
		if err != nil {
			return err
		}
		if err := domain.CheckNoOverlap(candidate, existing); err != nil {
			return err
		}

		b := &models.Booking{
			ID:          uuid.New(),
			CustomerID:  customer.ID,
			BarberID:    br.ID,
			ServiceID:   svc.ID,
			StartTime:   candidate.Start,
			EndTime:     candidate.End,
			DurationMin: svc.DurationMin,
			Status:      string(domain.InitialStatus(a.Role)),
			Price:       svc.Price,
			Notes:       strings.TrimSpace(in.Notes),
		}
		if err := uc.bookings.CreateBooking(ctx, b); err != nil {
			return err
		}

		created = b
		return nil
	})

	if err != nil {
		if apperr.IsKind(err, apperr.KindSlotConflict) {
			uc.metrics.SlotConflict()
		}
		return nil, err
	}

	uc.metrics.BookingCreated(created.Status)
	uc.audit.Dispatch(audit.NewEvent(a, "booking_created", "booking", created.ID, map[string]any{
		"barber_id": created.BarberID,
		"start":     created.StartTime,
		"status":    created.Status,
	}))

	log.Info().
		Str("booking_id", created.ID.String()).
		Str("barber_id", created.BarberID.String()).
		Time("start", created.StartTime).
		Str("status", created.Status).
		Msg("booking created")

	return created, nil
}
