package barber_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
)

func TestCheckFeaturedQuota(t *testing.T) {
	for others := int64(0); others < barber.MaxFeatured; others++ {
		assert.NoError(t, barber.CheckFeaturedQuota(others))
	}

	err := barber.CheckFeaturedQuota(barber.MaxFeatured)
	assert.ErrorIs(t, err, barber.ErrQuotaExceeded)
	assert.Equal(t, apperr.KindQuotaExceeded, apperr.KindOf(err))

	ae, _ := apperr.As(err)
	assert.Equal(t, barber.MaxFeatured, ae.Details["max"])
}
