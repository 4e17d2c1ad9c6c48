package timezone

import (
	"fmt"
	"time"
)

const DefaultTimezone = "America/Bogota"

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to DefaultTimezone and then UTC.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

// --------------------------------------------------
// Shop clock
// --------------------------------------------------

// Clock yields the current instant in the shop's timezone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

func NewClock(loc *time.Location) Clock {
	return Clock{loc: loc, now: time.Now}
}

// FixedClock always returns at, in loc.
func FixedClock(at time.Time, loc *time.Location) Clock {
	return Clock{loc: loc, now: func() time.Time { return at }}
}

// ClockFunc reads the current instant from now.
func ClockFunc(now func() time.Time, loc *time.Location) Clock {
	return Clock{loc: loc, now: now}
}

func (c Clock) Now() time.Time {
	return c.now().In(c.Location())
}

func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// --------------------------------------------------
// Calendar helpers
// --------------------------------------------------

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayRange is [midnight, next midnight) of t's day. DST days are 23 or 25 hours.
func DayRange(t time.Time) (time.Time, time.Time) {
	start := StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseInstant accepts RFC 3339 or a shop-local "YYYY-MM-DD HH:MM".
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid instant %q: %w", s, err)
	}
	return t, nil
}
