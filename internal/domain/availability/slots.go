package availability

import "time"

const DefaultGranularity = 30 * time.Minute

type SlotRequest struct {
	Policy      DayPolicy
	Date        time.Time
	Granularity time.Duration
	Now         time.Time

	// Fit, when positive, drops slots whose [slot, slot+Fit) would run past the
	// end of their window.
	Fit time.Duration
}

// GenerateSlots enumerates candidate start times on req.Date for every policy
// window, stepping by the granularity. Slots not strictly after req.Now are
// dropped. The result is ordered and free of duplicates.
func GenerateSlots(req SlotRequest) []time.Time {
	if !req.Policy.Available {
		return []time.Time{}
	}

	step := req.Granularity
	if step <= 0 {
		step = DefaultGranularity
	}

	slots := make([]time.Time, 0)
	var last time.Time

	for _, w := range sortedWindows(req.Policy.Windows) {
		windowStart := w.Start.On(req.Date)
		windowEnd := w.End.On(req.Date)

		for cur := windowStart; cur.Before(windowEnd); cur = cur.Add(step) {
			if !cur.After(req.Now) {
				continue
			}
			if req.Fit > 0 && cur.Add(req.Fit).After(windowEnd) {
				break
			}
			if !last.IsZero() && !cur.After(last) {
				continue
			}

			slots = append(slots, cur)
			last = cur
		}
	}

	return slots
}

// IsAligned reports whether t sits on the slot grid of its day.
func IsAligned(t time.Time, granularity time.Duration) bool {
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return t.Sub(midnight)%granularity == 0
}
