package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
)

// dayPolicy loads the barber's policy for date's weekday. A weekday without a
// row is a day off.
func dayPolicy(
	ctx context.Context,
	barbers barber.Repository,
	barberID uuid.UUID,
	date time.Time,
) (availability.DayPolicy, error) {

	wh, err := barbers.GetWorkingHours(ctx, barberID, int(date.Weekday()))
	if err != nil {
		return availability.DayPolicy{}, err
	}
	if wh == nil {
		return availability.DayPolicy{}, nil
	}
	return availability.DayPolicyFromWorkingHours(*wh)
}
