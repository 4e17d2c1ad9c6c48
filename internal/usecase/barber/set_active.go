package barber

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

// SetActive soft-deletes or restores a barber. Deactivation also clears the
// featured flag so a later restore cannot push the featured count over the cap.
type SetActive struct {
	tx          txmanager.Transactor
	barbers     domain.Repository
	invalidator *cache.Invalidator
	audit       *audit.Dispatcher
}

func NewSetActive(
	tx txmanager.Transactor,
	barbers domain.Repository,
	invalidator *cache.Invalidator,
	audit *audit.Dispatcher,
) *SetActive {
	return &SetActive{
		tx:          tx,
		barbers:     barbers,
		invalidator: invalidator,
		audit:       audit,
	}
}

func (uc *SetActive) Execute(
	ctx context.Context,
	a actor.Actor,
	barberID uuid.UUID,
	active bool,
) (*models.Barber, error) {

	if err := domain.RequireAdmin(a); err != nil {
		return nil, err
	}

	var updated *models.Barber

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := uc.barbers.LockBarber(ctx, barberID)
		if err != nil {
			return err
		}

		b.Active = active
		if !active {
			b.Featured = false
		}

		if err := uc.barbers.UpdateBarberFlags(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := uc.invalidator.Invalidate(ctx, cache.TagBarbers); err != nil {
		log.Warn().Err(err).Msg("barber listing left dirty after activation change")
	}

	uc.audit.Dispatch(audit.NewEvent(a, "barber_active_set", "barber", updated.ID, map[string]any{
		"active": active,
	}))

	return updated, nil
}
