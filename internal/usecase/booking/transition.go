package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

type TransitionInput struct {
	BookingID     uuid.UUID
	Status        string
	PaymentMethod string
	Reason        string
}

type TransitionBooking struct {
	tx       txmanager.Transactor
	bookings domain.Repository
	barbers  barber.Repository
	clock    timezone.Clock
	metrics  *metrics.Metrics
	audit    *audit.Dispatcher
}

func NewTransitionBooking(
	tx txmanager.Transactor,
	bookings domain.Repository,
	barbers barber.Repository,
	clock timezone.Clock,
	m *metrics.Metrics,
	audit *audit.Dispatcher,
) *TransitionBooking {
	return &TransitionBooking{
		tx:       tx,
		bookings: bookings,
		barbers:  barbers,
		clock:    clock,
		metrics:  m,
		audit:    audit,
	}
}

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	a actor.Actor,
	in TransitionInput,
) (*models.Booking, error) {

	to, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, domain.ErrInvalidStatus.WithDetails(map[string]any{"status": in.Status})
	}

	var (
		updated *models.Booking
		from    string
	)

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := uc.bookings.LockBooking(ctx, in.BookingID)
		if err != nil {
			return err
		}

		br, err := uc.barbers.GetBarber(ctx, b.BarberID)
		if err != nil {
			return err
		}
		if err := domain.Authorize(b, a, br.UserID); err != nil {
			return err
		}

		from = b.Status
		cmd := domain.Command{
			To:            to,
			PaymentMethod: in.PaymentMethod,
			Reason:        in.Reason,
		}
		if err := domain.Transition(b, a.Role, cmd, uc.clock.Now()); err != nil {
			return err
		}

		if err := uc.bookings.UpdateBooking(ctx, b); err != nil {
			return err
		}

		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.Transition(from, updated.Status)
	uc.audit.Dispatch(audit.NewEvent(a, "booking_"+updated.Status, "booking", updated.ID, map[string]any{
		"from":           from,
		"to":             updated.Status,
		"payment_method": in.PaymentMethod,
		"reason":         updated.CancellationReason,
	}))

	log.Info().
		Str("booking_id", updated.ID.String()).
		Str("from", from).
		Str("to", updated.Status).
		Str("role", string(a.Role)).
		Msg("booking transitioned")

	return updated, nil
}
