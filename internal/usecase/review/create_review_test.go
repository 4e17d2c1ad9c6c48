package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/review"
)

func seedBooking(t *testing.T, store *memory.Store, customer, barber uuid.UUID, start time.Time, status string) models.Booking {
	t.Helper()
	b := models.Booking{
		ID:          uuid.New(),
		CustomerID:  customer,
		BarberID:    barber,
		ServiceID:   uuid.New(),
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      status,
	}
	require.NoError(t, store.CreateBooking(context.Background(), &b))
	return b
}

func TestCreateReview(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := review.NewCreateReview(store, store, store, nil)

	customer := uuid.New()
	barberID := uuid.New()
	start := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)

	done := seedBooking(t, store, customer, barberID, start, "completed")
	again := seedBooking(t, store, customer, barberID, start.AddDate(0, 0, 7), "completed")
	open := seedBooking(t, store, customer, uuid.New(), start, "confirmed")

	me := actor.Actor{ID: customer, Role: actor.RoleUser}

	r, err := uc.Execute(ctx, me, review.CreateInput{BookingID: done.ID, Rating: 5, Comment: "  great fade "})
	require.NoError(t, err)
	assert.Equal(t, "great fade", r.Comment)
	assert.Equal(t, barberID, r.BarberID)

	_, err = uc.Execute(ctx, me, review.CreateInput{BookingID: again.ID, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)

	_, err = uc.Execute(ctx, me, review.CreateInput{BookingID: open.ID, Rating: 4})
	assert.ErrorIs(t, err, domain.ErrBookingNotCompleted)

	_, err = uc.Execute(ctx, me, review.CreateInput{BookingID: open.ID, Rating: 9})
	assert.ErrorIs(t, err, domain.ErrInvalidRating)

	_, err = uc.Execute(ctx, actor.Actor{ID: uuid.New(), Role: actor.RoleUser}, review.CreateInput{BookingID: done.ID, Rating: 3})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	_, err = uc.Execute(ctx, actor.Actor{ID: uuid.New(), Role: actor.RoleBarber}, review.CreateInput{BookingID: done.ID, Rating: 3})
	assert.ErrorIs(t, err, review.ErrCustomersOnly)
}
