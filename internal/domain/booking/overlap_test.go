package booking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func TestCheckNoOverlap(t *testing.T) {
	at := func(h, m int) time.Time { return time.Date(2024, 5, 6, h, m, 0, 0, time.UTC) }
	existing := []models.Booking{
		*newBooking(booking.StatusConfirmed, at(10, 0)),
		*newBooking(booking.StatusCancelled, at(11, 0)),
		*newBooking(booking.StatusPending, at(12, 0)),
	}

	tests := []struct {
		name      string
		candidate availability.Interval
		wantErr   bool
	}{
		{name: "same slot", candidate: availability.NewInterval(at(10, 0), 30*time.Minute), wantErr: true},
		{name: "partial overlap", candidate: availability.NewInterval(at(9, 45), 30*time.Minute), wantErr: true},
		{name: "touching before", candidate: availability.NewInterval(at(9, 30), 30*time.Minute)},
		{name: "touching after", candidate: availability.NewInterval(at(10, 30), 30*time.Minute)},
		{name: "cancelled slot is free", candidate: availability.NewInterval(at(11, 0), 30*time.Minute)},
		{name: "pending holds its slot", candidate: availability.NewInterval(at(11, 30), time.Hour), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking.CheckNoOverlap(tt.candidate, existing)
			if tt.wantErr {
				assert.ErrorIs(t, err, booking.ErrSlotConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlot(t *testing.T) {
	policy := availability.DayPolicy{
		Available: true,
		Windows: []availability.Window{
			{Start: 8 * 60, End: 12 * 60},
			{Start: 13 * 60, End: 19 * 60},
		},
	}
	day := func(h, m int) time.Time { return time.Date(2024, 5, 7, h, m, 0, 0, time.UTC) }

	tests := []struct {
		name    string
		start   time.Time
		dur     time.Duration
		wantErr error
	}{
		{name: "ok", start: day(9, 30), dur: 30 * time.Minute},
		{name: "past", start: now.Add(-time.Hour), dur: 30 * time.Minute, wantErr: booking.ErrSlotInPast},
		{name: "off grid", start: day(9, 15), dur: 30 * time.Minute, wantErr: booking.ErrSlotNotAligned},
		{name: "into lunch", start: day(11, 30), dur: time.Hour, wantErr: booking.ErrOutsideWorkingHours},
		{name: "before opening", start: day(7, 30), dur: 30 * time.Minute, wantErr: booking.ErrOutsideWorkingHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := booking.ValidateSlot(policy, tt.start, tt.dur, 30*time.Minute, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
