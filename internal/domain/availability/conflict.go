package availability

import (
	"sort"
	"time"
)

// Interval is the half-open range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, d time.Duration) Interval {
	return Interval{Start: start, End: start.Add(d)}
}

// Overlaps treats touching endpoints as disjoint.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// FilterConflicts removes every slot whose [slot, slot+span) intersects a busy
// interval. slots must be ordered; busy may be in any order.
func FilterConflicts(slots []time.Time, span time.Duration, busy []Interval) []time.Time {
	if len(busy) == 0 {
		return slots
	}

	sorted := append([]Interval(nil), busy...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	out := make([]time.Time, 0, len(slots))
	idx := 0

	for _, slot := range slots {
		candidate := NewInterval(slot, span)

		// slots ascend, so anything finished by now stays finished
		for idx < len(sorted) && !sorted[idx].End.After(slot) {
			idx++
		}

		conflict := false
		for j := idx; j < len(sorted) && sorted[j].Start.Before(candidate.End); j++ {
			if candidate.Overlaps(sorted[j]) {
				conflict = true
				break
			}
		}

		if !conflict {
			out = append(out, slot)
		}
	}

	return out
}
