package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
)

func TestKindOf(t *testing.T) {
	conflict := apperr.New(apperr.KindSlotConflict, "slot_conflict", "taken")

	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{name: "direct", err: conflict, want: apperr.KindSlotConflict},
		{name: "wrapped", err: fmt.Errorf("create booking: %w", conflict), want: apperr.KindSlotConflict},
		{name: "plain error", err: errors.New("boom"), want: apperr.KindInternal},
		{name: "unavailable", err: apperr.Unavailable(errors.New("conn reset")), want: apperr.KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.KindOf(tt.err))
		})
	}
}

func TestIs_MatchesCopiesWithDetails(t *testing.T) {
	sentinel := apperr.New(apperr.KindQuotaExceeded, "featured_quota_exceeded", "too many")
	withDetails := sentinel.WithDetails(map[string]any{"limit": 3})

	assert.ErrorIs(t, withDetails, sentinel)
	assert.ErrorIs(t, fmt.Errorf("set featured: %w", withDetails), sentinel)
	assert.NotErrorIs(t, withDetails, apperr.NotFound("barber"))
	assert.Nil(t, sentinel.Details)
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "barber_not_found: barber not found", apperr.NotFound("barber").Error())
	assert.Equal(t, "unavailable: conn reset", apperr.Unavailable(errors.New("conn reset")).Error())
}

func TestIsKind_NilIsFalse(t *testing.T) {
	assert.False(t, apperr.IsKind(nil, apperr.KindInternal))
}
