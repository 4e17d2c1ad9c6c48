package barber

import (
	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
)

// MaxFeatured caps how many active barbers may be featured at once.
const MaxFeatured = 3

var (
	ErrQuotaExceeded  = apperr.New(apperr.KindQuotaExceeded, "featured_quota_exceeded", "featured barber limit reached")
	ErrBarberInactive = apperr.Validation("barber_inactive", "barber is not active")
	ErrBarberNotFound = apperr.NotFound("barber")
)

// CheckFeaturedQuota is called with the number of active featured barbers
// other than the one being featured.
func CheckFeaturedQuota(othersFeatured int64) error {
	if othersFeatured >= MaxFeatured {
		return ErrQuotaExceeded.WithDetails(map[string]any{
			"max":     MaxFeatured,
			"current": othersFeatured,
		})
	}
	return nil
}
