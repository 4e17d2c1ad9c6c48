package review

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5

	maxCommentLen = 1000
)

var (
	ErrInvalidRating      = apperr.Validation("invalid_rating", "rating must be between 1 and 5")
	ErrCommentTooLong     = apperr.Validation("comment_too_long", "comment is too long")
	ErrBookingNotCompleted = apperr.Validation("booking_not_completed", "only completed bookings can be reviewed")
	ErrAlreadyReviewed    = apperr.New(apperr.KindValidation, "already_reviewed", "barber already reviewed by this customer")
)

func Validate(rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if len(strings.TrimSpace(comment)) > maxCommentLen {
		return ErrCommentTooLong
	}
	return nil
}

type Repository interface {
	CreateReview(
		ctx context.Context,
		r *models.Review,
	) error

	ExistsForCustomerBarber(
		ctx context.Context,
		customerID uuid.UUID,
		barberID uuid.UUID,
	) (bool, error)
}
