package barber

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/cache"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/txmanager"
)

var ErrDuplicateWeekday = apperr.Validation("duplicate_weekday", "each weekday may appear once")

// ======================================================
// GET
// ======================================================

type GetWorkingHours struct {
	barbers domain.Repository
}

func NewGetWorkingHours(barbers domain.Repository) *GetWorkingHours {
	return &GetWorkingHours{barbers: barbers}
}

func (uc *GetWorkingHours) Execute(
	ctx context.Context,
	barberID uuid.UUID,
) ([]models.WorkingHours, error) {

	if _, err := uc.barbers.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return uc.barbers.ListWorkingHours(ctx, barberID)
}

// ======================================================
// PUT
// ======================================================

// UpdateWorkingHours replaces the barber's weekly policy. Existing bookings are
// left alone even when they fall outside the new hours.
type UpdateWorkingHours struct {
	tx          txmanager.Transactor
	barbers     domain.Repository
	invalidator *cache.Invalidator
	audit       *audit.Dispatcher
}

func NewUpdateWorkingHours(
	tx txmanager.Transactor,
	barbers domain.Repository,
	invalidator *cache.Invalidator,
	audit *audit.Dispatcher,
) *UpdateWorkingHours {
	return &UpdateWorkingHours{
		tx:          tx,
		barbers:     barbers,
		invalidator: invalidator,
		audit:       audit,
	}
}

func (uc *UpdateWorkingHours) Execute(
	ctx context.Context,
	a actor.Actor,
	barberID uuid.UUID,
	rows []models.WorkingHours,
) ([]models.WorkingHours, error) {

	seen := map[int]bool{}
	for _, row := range rows {
		if seen[row.Weekday] {
			return nil, ErrDuplicateWeekday.WithDetails(map[string]any{"weekday": row.Weekday})
		}
		seen[row.Weekday] = true
	}
	if _, err := availability.WeeklyPolicyFromWorkingHours(rows); err != nil {
		return nil, err
	}

	var out []models.WorkingHours

	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := uc.barbers.LockBarber(ctx, barberID)
		if err != nil {
			return err
		}
		if err := domain.CanManage(b, a); err != nil {
			return err
		}

		if err := uc.barbers.ReplaceWorkingHours(ctx, b.ID, rows); err != nil {
			return err
		}

		out, err = uc.barbers.ListWorkingHours(ctx, b.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	// the public listing embeds working hours
	if err := uc.invalidator.Invalidate(ctx, cache.TagBarbers); err != nil {
		log.Warn().Err(err).Str("barber_id", barberID.String()).Msg("barber listing left dirty after working hours change")
	}

	uc.audit.Dispatch(audit.NewEvent(a, "working_hours_updated", "barber", barberID, map[string]any{
		"days": len(rows),
	}))

	return out, nil
}
