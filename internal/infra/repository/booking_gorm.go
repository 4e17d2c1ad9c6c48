package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func activeStatuses() []string {
	out := make([]string, len(booking.ActiveStatuses))
	for i, s := range booking.ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	err := txmanager.Executor(ctx, r.db).
		Omit(clause.Associations).
		Create(b).Error

	if db.IsExclusionConflict(err) {
		return booking.ErrSlotConflict.WithDetails(map[string]any{"source": "constraint"})
	}
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingGormRepository) ListActiveOverlapping(
	ctx context.Context,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var out []models.Booking
	if err := txmanager.Executor(ctx, r.db).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID,
			activeStatuses(),
			end,
			start,
		).
		Order("start_time ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list overlapping bookings: %w", err)
	}

	return out, nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {
	return r.first(txmanager.Executor(ctx, r.db), id)
}

func (r *BookingGormRepository) LockBooking(
	ctx context.Context,
	id uuid.UUID,
) (*models.Booking, error) {
	return r.first(
		txmanager.Executor(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}),
		id,
	)
}

func (r *BookingGormRepository) first(q *gorm.DB, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := q.Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, booking.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := txmanager.Executor(ctx, r.db).
		Omit(clause.Associations).
		Save(b).Error

	if db.IsExclusionConflict(err) {
		return booking.ErrSlotConflict
	}
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := txmanager.Executor(ctx, r.db).
		Where("id = ?", id).
		Delete(&models.Booking{})

	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *BookingGormRepository) ListForPeriod(
	ctx context.Context,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var out []models.Booking

	err := txmanager.Executor(ctx, r.db).
		Preload("Service").
		Preload("Customer").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&out).Error

	if err != nil {
		return nil, fmt.Errorf("list bookings for period: %w", err)
	}

	return out, nil
}

// Compile-time check
var _ booking.Repository = (*BookingGormRepository)(nil)
