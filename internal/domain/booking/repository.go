package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Repository interface {
	// -------- Booking (create / conflict) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// ListActiveOverlapping returns pending/confirmed bookings of the barber
	// intersecting [start, end).
	ListActiveOverlapping(
		ctx context.Context,
		barberID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	// LockBooking is GetBooking holding a row lock for the rest of the transaction.
	LockBooking(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id uuid.UUID,
	) error

	// -------- Listing --------
	// ListForPeriod returns the barber's bookings starting in [start, end), any
	// status, ordered by start, with Service preloaded.
	ListForPeriod(
		ctx context.Context,
		barberID uuid.UUID,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
