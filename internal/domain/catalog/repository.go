// Package catalog holds the records the booking engine reads but does not own:
// services and user accounts.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var (
	ErrServiceNotFound = apperr.NotFound("service")
	ErrUserNotFound    = apperr.NotFound("user")
)

type Repository interface {
	GetService(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Service, error)

	ListActiveServices(ctx context.Context) ([]models.Service, error)

	GetUser(
		ctx context.Context,
		id uuid.UUID,
	) (*models.User, error)
}
