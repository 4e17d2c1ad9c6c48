// Package stats rolls a barber's bookings up into per-status, per-service and
// per-day figures.
package stats

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var ErrInvalidWindow = apperr.Validation("invalid_window", "from must be before to")

// Window is half-open on booking start: [From, To).
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (w Window) Validate() error {
	if !w.From.Before(w.To) {
		return ErrInvalidWindow
	}
	return nil
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

type StatusStat struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type ServiceStat struct {
	ServiceID   uuid.UUID `json:"service_id"`
	ServiceName string    `json:"service_name"`
	Count       int       `json:"count"`
	Revenue     float64   `json:"revenue"`
}

type DayStat struct {
	Day     string  `json:"day"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type Totals struct {
	Bookings  int     `json:"bookings"`
	Completed int     `json:"completed"`
	Revenue   float64 `json:"revenue"`
}

type BarberStats struct {
	BarberID  uuid.UUID     `json:"barber_id"`
	Window    Window        `json:"window"`
	ByStatus  []StatusStat  `json:"by_status"`
	ByService []ServiceStat `json:"by_service"`
	ByDay     []DayStat     `json:"by_day"`
	Totals    Totals        `json:"totals"`
}

func revenueOf(b *models.Booking) float64 {
	if b.TotalRevenue == nil {
		return 0
	}
	return *b.TotalRevenue
}

// Aggregate counts each booking whose start lies in w exactly once. Per-service
// and per-day rollups only consider completed bookings; days are bucketed in loc.
func Aggregate(barberID uuid.UUID, w Window, bookings []models.Booking, loc *time.Location) BarberStats {
	if loc == nil {
		loc = time.UTC
	}

	out := BarberStats{
		BarberID:  barberID,
		Window:    w,
		ByStatus:  []StatusStat{},
		ByService: []ServiceStat{},
		ByDay:     []DayStat{},
	}

	byStatus := map[string]*StatusStat{}
	byService := map[uuid.UUID]*ServiceStat{}
	byDay := map[string]*DayStat{}

	for i := range bookings {
		b := &bookings[i]
		if !w.Contains(b.StartTime) {
			continue
		}

		rev := revenueOf(b)
		out.Totals.Bookings++

		s, ok := byStatus[b.Status]
		if !ok {
			s = &StatusStat{Status: b.Status}
			byStatus[b.Status] = s
		}
		s.Count++
		s.Revenue += rev

		if booking.Status(b.Status) != booking.StatusCompleted {
			continue
		}

		out.Totals.Completed++
		out.Totals.Revenue += rev

		svc, ok := byService[b.ServiceID]
		if !ok {
			svc = &ServiceStat{ServiceID: b.ServiceID}
			if b.Service != nil {
				svc.ServiceName = b.Service.Name
			}
			byService[b.ServiceID] = svc
		}
		svc.Count++
		svc.Revenue += rev

		key := b.StartTime.In(loc).Format("2006-01-02")
		d, ok := byDay[key]
		if !ok {
			d = &DayStat{Day: key}
			byDay[key] = d
		}
		d.Count++
		d.Revenue += rev
	}

	for _, s := range byStatus {
		out.ByStatus = append(out.ByStatus, *s)
	}
	sort.Slice(out.ByStatus, func(i, j int) bool { return out.ByStatus[i].Status < out.ByStatus[j].Status })

	for _, s := range byService {
		out.ByService = append(out.ByService, *s)
	}
	sort.Slice(out.ByService, func(i, j int) bool {
		if out.ByService[i].Revenue != out.ByService[j].Revenue {
			return out.ByService[i].Revenue > out.ByService[j].Revenue
		}
		return out.ByService[i].ServiceID.String() < out.ByService[j].ServiceID.String()
	})

	for _, d := range byDay {
		out.ByDay = append(out.ByDay, *d)
	}
	sort.Slice(out.ByDay, func(i, j int) bool { return out.ByDay[i].Day < out.ByDay[j].Day })

	return out
}
