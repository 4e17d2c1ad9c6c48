package booking

import (
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Interval is the calendar span b occupies.
func Interval(b *models.Booking) availability.Interval {
	return availability.Interval{Start: b.StartTime, End: b.EndTime}
}

// BusyIntervals keeps the spans of bookings that still hold their slot.
func BusyIntervals(bookings []models.Booking) []availability.Interval {
	out := make([]availability.Interval, 0, len(bookings))
	for i := range bookings {
		if Status(bookings[i].Status).IsActive() {
			out = append(out, Interval(&bookings[i]))
		}
	}
	return out
}

// CheckNoOverlap fails with ErrSlotConflict when candidate intersects any
// pending or confirmed booking in existing.
func CheckNoOverlap(candidate availability.Interval, existing []models.Booking) error {
	for i := range existing {
		b := &existing[i]
		if !Status(b.Status).IsActive() {
			continue
		}
		if candidate.Overlaps(Interval(b)) {
			return ErrSlotConflict.WithDetails(map[string]any{"booking_id": b.ID.String()})
		}
	}
	return nil
}

// ValidateSlot checks a requested start against the clock, the slot grid and
// the barber's policy for that day.
func ValidateSlot(
	policy availability.DayPolicy,
	start time.Time,
	duration time.Duration,
	granularity time.Duration,
	now time.Time,
) error {
	if !start.After(now) {
		return ErrSlotInPast
	}
	if !availability.IsAligned(start, granularity) {
		return ErrSlotNotAligned
	}
	if !policy.Contains(start, start.Add(duration)) {
		return ErrOutsideWorkingHours
	}
	return nil
}
