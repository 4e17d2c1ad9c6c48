package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var _ barber.Repository = (*Store)(nil)

func (s *Store) GetBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error) {
	defer s.acquire(ctx)()

	b, ok := s.barbers[id]
	if !ok {
		return nil, barber.ErrBarberNotFound
	}
	return &b, nil
}

func (s *Store) GetBarberByUserID(ctx context.Context, userID uuid.UUID) (*models.Barber, error) {
	defer s.acquire(ctx)()

	for _, b := range s.barbers {
		if b.UserID == userID {
			return &b, nil
		}
	}
	return nil, barber.ErrBarberNotFound
}

func (s *Store) LockBarber(ctx context.Context, id uuid.UUID) (*models.Barber, error) {
	return s.GetBarber(ctx, id)
}

func (s *Store) UpdateBarberFlags(ctx context.Context, b *models.Barber) error {
	defer s.acquire(ctx)()

	cur, ok := s.barbers[b.ID]
	if !ok {
		return barber.ErrBarberNotFound
	}
	cur.Featured = b.Featured
	cur.Active = b.Active
	cur.UpdatedAt = time.Now().UTC()
	s.barbers[b.ID] = cur
	return nil
}

func (s *Store) ListActiveBarbers(ctx context.Context, filter barber.ListFilter) ([]models.Barber, error) {
	defer s.acquire(ctx)()

	out := []models.Barber{}
	for _, b := range s.barbers {
		if !b.Active {
			continue
		}
		if filter.Featured != nil && b.Featured != *filter.Featured {
			continue
		}
		b.WorkingHours = append([]models.WorkingHours(nil), s.hours[b.ID]...)
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// LockFeaturedSet is a no-op: the transaction already holds the store lock.
func (s *Store) LockFeaturedSet(ctx context.Context) error {
	return nil
}

func (s *Store) CountFeatured(ctx context.Context, excluding uuid.UUID) (int64, error) {
	defer s.acquire(ctx)()

	var n int64
	for id, b := range s.barbers {
		if id != excluding && b.Featured && b.Active {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListWorkingHours(ctx context.Context, barberID uuid.UUID) ([]models.WorkingHours, error) {
	defer s.acquire(ctx)()
	return append([]models.WorkingHours{}, s.hours[barberID]...), nil
}

func (s *Store) GetWorkingHours(ctx context.Context, barberID uuid.UUID, weekday int) (*models.WorkingHours, error) {
	defer s.acquire(ctx)()

	for _, wh := range s.hours[barberID] {
		if wh.Weekday == weekday {
			return &wh, nil
		}
	}
	return nil, nil
}

func (s *Store) ReplaceWorkingHours(ctx context.Context, barberID uuid.UUID, rows []models.WorkingHours) error {
	defer s.acquire(ctx)()

	out := make([]models.WorkingHours, 0, len(rows))
	for _, wh := range rows {
		wh.BarberID = barberID
		if wh.ID == uuid.Nil {
			wh.ID = uuid.New()
		}
		out = append(out, wh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	s.hours[barberID] = out
	return nil
}
