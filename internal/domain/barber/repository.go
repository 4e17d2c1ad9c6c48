package barber

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type ListFilter struct {
	Featured *bool
}

type Repository interface {
	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Barber, error)

	GetBarberByUserID(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.Barber, error)

	// LockBarber is GetBarber holding a row lock for the rest of the transaction.
	LockBarber(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Barber, error)

	UpdateBarberFlags(
		ctx context.Context,
		b *models.Barber,
	) error

	// ListActiveBarbers returns active barbers ordered by name.
	ListActiveBarbers(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Barber, error)

	// -------- Featured set --------
	// LockFeaturedSet serializes writers of the featured flag until the
	// surrounding transaction ends.
	LockFeaturedSet(ctx context.Context) error

	CountFeatured(
		ctx context.Context,
		excluding uuid.UUID,
	) (int64, error)

	// -------- Working hours --------
	ListWorkingHours(
		ctx context.Context,
		barberID uuid.UUID,
	) ([]models.WorkingHours, error)

	GetWorkingHours(
		ctx context.Context,
		barberID uuid.UUID,
		weekday int,
	) (*models.WorkingHours, error)

	ReplaceWorkingHours(
		ctx context.Context,
		barberID uuid.UUID,
		rows []models.WorkingHours,
	) error
}
