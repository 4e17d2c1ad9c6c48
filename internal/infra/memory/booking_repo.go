package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var _ booking.Repository = (*Store)(nil)

// CreateBooking enforces the calendar exclusion the way the database
// constraint does: no two active bookings of a barber may intersect.
func (s *Store) CreateBooking(ctx context.Context, b *models.Booking) error {
	defer s.acquire(ctx)()

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if err := s.checkExclusion(b); err != nil {
		return err
	}

	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now

	stored := *b
	stored.Customer, stored.Barber, stored.Service = nil, nil, nil
	s.bookings[b.ID] = stored
	return nil
}

func (s *Store) checkExclusion(b *models.Booking) error {
	if !booking.Status(b.Status).IsActive() {
		return nil
	}
	for id, other := range s.bookings {
		if id == b.ID || other.BarberID != b.BarberID {
			continue
		}
		if !booking.Status(other.Status).IsActive() {
			continue
		}
		if booking.Interval(b).Overlaps(booking.Interval(&other)) {
			return booking.ErrSlotConflict.WithDetails(map[string]any{"source": "constraint"})
		}
	}
	return nil
}

func (s *Store) ListActiveOverlapping(
	ctx context.Context,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {
	defer s.acquire(ctx)()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.BarberID != barberID || !booking.Status(b.Status).IsActive() {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	defer s.acquire(ctx)()

	b, ok := s.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return &b, nil
}

// LockBooking is GetBooking; the transaction already holds the store lock.
func (s *Store) LockBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.GetBooking(ctx, id)
}

func (s *Store) UpdateBooking(ctx context.Context, b *models.Booking) error {
	defer s.acquire(ctx)()

	if _, ok := s.bookings[b.ID]; !ok {
		return booking.ErrBookingNotFound
	}
	if err := s.checkExclusion(b); err != nil {
		return err
	}

	b.UpdatedAt = time.Now().UTC()
	stored := *b
	stored.Customer, stored.Barber, stored.Service = nil, nil, nil
	s.bookings[b.ID] = stored
	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	defer s.acquire(ctx)()

	if _, ok := s.bookings[id]; !ok {
		return booking.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}

func (s *Store) ListForPeriod(
	ctx context.Context,
	barberID uuid.UUID,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {
	defer s.acquire(ctx)()

	out := []models.Booking{}
	for _, b := range s.bookings {
		if b.BarberID != barberID || b.StartTime.Before(start) || !b.StartTime.Before(end) {
			continue
		}
		if svc, ok := s.services[b.ServiceID]; ok {
			b.Service = &svc
		}
		if u, ok := s.users[b.CustomerID]; ok {
			b.Customer = &u
		}
		out = append(out, b)
	}
	sortByStart(out)
	return out, nil
}

func sortByStart(bs []models.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].StartTime.Equal(bs[j].StartTime) {
			return bs[i].ID.String() < bs[j].ID.String()
		}
		return bs[i].StartTime.Before(bs[j].StartTime)
	})
}
