package review

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

var ErrCustomersOnly = apperr.Forbidden("customers_only", "only customers can leave reviews")

type CreateInput struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type CreateReview struct {
	tx       txmanager.Transactor
	bookings booking.Repository
	reviews  domain.Repository
	audit    *audit.Dispatcher
}

func NewCreateReview(
	tx txmanager.Transactor,
	bookings booking.Repository,
	reviews domain.Repository,
	audit *audit.Dispatcher,
) *CreateReview {
	return &CreateReview{
		tx:       tx,
		bookings: bookings,
		reviews:  reviews,
		audit:    audit,
	}
}

// Execute records one review per customer and barber, for a completed booking
// the customer owns.
func (uc *CreateReview) Execute(
	ctx context.Context,
	a actor.Actor,
	in CreateInput,
) (*models.Review, error) {

	if a.Role != actor.RoleUser {
		return nil, ErrCustomersOnly
	}
	if err := domain.Validate(in.Rating, in.Comment); err != nil {
		return nil, err
	}

	var created *models.Review

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := uc.bookings.GetBooking(ctx, in.BookingID)
		if err != nil {
			return err
		}
		if b.CustomerID != a.ID {
			return booking.ErrNotOwner
		}
		if booking.Status(b.Status) != booking.StatusCompleted {
			return domain.ErrBookingNotCompleted
		}

		exists, err := uc.reviews.ExistsForCustomerBarber(ctx, a.ID, b.BarberID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyReviewed
		}

		r := &models.Review{
			ID:         uuid.New(),
			CustomerID: a.ID,
			BarberID:   b.BarberID,
			BookingID:  b.ID,
			Rating:     in.Rating,
			Comment:    strings.TrimSpace(in.Comment),
		}
		if err := uc.reviews.CreateReview(ctx, r); err != nil {
			return err
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.NewEvent(a, "review_created", "review", created.ID, map[string]any{
		"barber_id": created.BarberID,
		"rating":    created.Rating,
	}))

	return created, nil
}
