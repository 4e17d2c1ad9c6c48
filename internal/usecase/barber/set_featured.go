package barber

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

type SetFeatured struct {
	tx          txmanager.Transactor
	barbers     domain.Repository
	invalidator *cache.Invalidator
	metrics     *metrics.Metrics
	audit       *audit.Dispatcher
}

func NewSetFeatured(
	tx txmanager.Transactor,
	barbers domain.Repository,
	invalidator *cache.Invalidator,
	m *metrics.Metrics,
	audit *audit.Dispatcher,
) *SetFeatured {
	return &SetFeatured{
		tx:          tx,
		barbers:     barbers,
		invalidator: invalidator,
		metrics:     m,
		audit:       audit,
	}
}

// Execute sets the featured flag. Featuring holds the featured-set lock while
// it counts the other featured barbers, so two concurrent requests cannot both
// take the last place.
func (uc *SetFeatured) Execute(
	ctx context.Context,
	a actor.Actor,
	barberID uuid.UUID,
	featured bool,
) (*models.Barber, error) {

	if err := domain.RequireAdmin(a); err != nil {
		return nil, err
	}

	var updated *models.Barber

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.barbers.LockFeaturedSet(ctx); err != nil {
			return err
		}

		b, err := uc.barbers.LockBarber(ctx, barberID)
		if err != nil {
			return err
		}

		if featured {
			if !b.Active {
				return domain.ErrBarberInactive
			}

			others, err := uc.barbers.CountFeatured(ctx, b.ID)
			if err != nil {
				return err
			}
			if err := domain.CheckFeaturedQuota(others); err != nil {
				return err
			}
		}

		if b.Featured == featured {
			updated = b
			return nil
		}

		b.Featured = featured
		if err := uc.barbers.UpdateBarberFlags(ctx, b); err != nil {
			return err
		}

		updated = b
		return nil
	})

	if err != nil {
		if apperr.IsKind(err, apperr.KindQuotaExceeded) {
			uc.metrics.QuotaRejected()
		}
		return nil, err
	}

	uc.invalidate(ctx)

	uc.audit.Dispatch(audit.NewEvent(a, "barber_featured_set", "barber", updated.ID, map[string]any{
		"featured": featured,
	}))

	log.Info().
		Str("barber_id", updated.ID.String()).
		Bool("featured", featured).
		Msg("barber featured flag set")

	return updated, nil
}

// invalidate never fails the request: the write is already committed and the
// invalidator keeps the tag dirty until it can be dropped.
func (uc *SetFeatured) invalidate(ctx context.Context) {
	if err := uc.invalidator.Invalidate(ctx, cache.TagBarbers); err != nil {
		log.Warn().Err(err).Msg("barber listing left dirty after featured change")
	}
}
