package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

// PurgeBooking removes a finished booking for good. Admin only.
type PurgeBooking struct {
	tx       txmanager.Transactor
	bookings domain.Repository
	audit    *audit.Dispatcher
}

func NewPurgeBooking(
	tx txmanager.Transactor,
	bookings domain.Repository,
	audit *audit.Dispatcher,
) *PurgeBooking {
	return &PurgeBooking{
		tx:       tx,
		bookings: bookings,
		audit:    audit,
	}
}

func (uc *PurgeBooking) Execute(
	ctx context.Context,
	a actor.Actor,
	bookingID uuid.UUID,
) error {

	if err := barber.RequireAdmin(a); err != nil {
		return err
	}

	var status string
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := uc.bookings.LockBooking(ctx, bookingID)
		if err != nil {
			return err
		}
		if !domain.Status(b.Status).IsTerminal() {
			return domain.ErrNotTerminal.WithDetails(map[string]any{"status": b.Status})
		}
		status = b.Status
		return uc.bookings.DeleteBooking(ctx, b.ID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.NewEvent(a, "booking_purged", "booking", bookingID, map[string]any{
		"status": status,
	}))
	return nil
}
