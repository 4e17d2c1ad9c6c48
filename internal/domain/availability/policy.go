package availability

import (
	"fmt"
	"sort"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Clock is a wall-clock time of day in minutes since midnight.
type Clock int

const minutesPerDay = 24 * 60

func ParseClock(hm string) (Clock, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", hm, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On places the clock on date's calendar day, in date's location.
func (c Clock) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, int(c)/60, int(c)%60, 0, 0, date.Location())
}

// Window is a half-open working interval [Start, End).
type Window struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

type DayPolicy struct {
	Available bool     `json:"available"`
	Windows   []Window `json:"windows"`
}

type WeeklyPolicy [7]DayPolicy

func (w WeeklyPolicy) For(day time.Weekday) DayPolicy {
	return w[int(day)]
}

var ErrInvalidPolicy = apperr.Validation("invalid_working_hours", "working hours are invalid")

// Validate requires ordered, non-empty, non-overlapping windows inside one day.
func (p DayPolicy) Validate() error {
	if !p.Available {
		return nil
	}
	if len(p.Windows) == 0 {
		return ErrInvalidPolicy.WithDetails(map[string]any{"reason": "no_windows"})
	}

	for i, w := range p.Windows {
		if w.Start < 0 || w.End > minutesPerDay || w.Start >= w.End {
			return ErrInvalidPolicy.WithDetails(map[string]any{"reason": "bad_window", "window": i})
		}
		if i > 0 && w.Start < p.Windows[i-1].End {
			return ErrInvalidPolicy.WithDetails(map[string]any{"reason": "overlapping_windows", "window": i})
		}
	}
	return nil
}

// Contains reports whether [start, end) lies entirely within a single window on
// start's calendar day.
func (p DayPolicy) Contains(start, end time.Time) bool {
	if !p.Available {
		return false
	}
	for _, w := range p.Windows {
		if !start.Before(w.Start.On(start)) && !end.After(w.End.On(start)) {
			return true
		}
	}
	return false
}

// DayPolicyFromWorkingHours expands a stored row into windows; a lunch break
// splits the day into two windows.
func DayPolicyFromWorkingHours(wh models.WorkingHours) (DayPolicy, error) {
	if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return DayPolicy{}, nil
	}

	start, err := ParseClock(wh.StartTime)
	if err != nil {
		return DayPolicy{}, err
	}
	end, err := ParseClock(wh.EndTime)
	if err != nil {
		return DayPolicy{}, err
	}

	p := DayPolicy{Available: true}

	if wh.LunchStart != "" && wh.LunchEnd != "" {
		lunchStart, err := ParseClock(wh.LunchStart)
		if err != nil {
			return DayPolicy{}, err
		}
		lunchEnd, err := ParseClock(wh.LunchEnd)
		if err != nil {
			return DayPolicy{}, err
		}

		if start < lunchStart {
			p.Windows = append(p.Windows, Window{Start: start, End: lunchStart})
		}
		if lunchEnd < end {
			p.Windows = append(p.Windows, Window{Start: lunchEnd, End: end})
		}
	} else {
		p.Windows = []Window{{Start: start, End: end}}
	}

	return p, p.Validate()
}

func WeeklyPolicyFromWorkingHours(rows []models.WorkingHours) (WeeklyPolicy, error) {
	var w WeeklyPolicy
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			return w, ErrInvalidPolicy.WithDetails(map[string]any{"reason": "bad_weekday", "weekday": row.Weekday})
		}
		p, err := DayPolicyFromWorkingHours(row)
		if err != nil {
			return w, err
		}
		w[row.Weekday] = p
	}
	return w, nil
}

func sortedWindows(ws []Window) []Window {
	out := append([]Window(nil), ws...)
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
