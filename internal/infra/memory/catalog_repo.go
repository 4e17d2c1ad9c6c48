package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/review"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var (
	_ catalog.Repository = (*Store)(nil)
	_ review.Repository  = (*Store)(nil)
	_ audit.Store        = (*Store)(nil)
	_ audit.Reader       = (*Store)(nil)
)

func (s *Store) GetService(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	defer s.acquire(ctx)()

	svc, ok := s.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return &svc, nil
}

func (s *Store) ListActiveServices(ctx context.Context) ([]models.Service, error) {
	defer s.acquire(ctx)()

	out := []models.Service{}
	for _, svc := range s.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	defer s.acquire(ctx)()

	u, ok := s.users[id]
	if !ok {
		return nil, catalog.ErrUserNotFound
	}
	return &u, nil
}

// -------- Reviews --------

func (s *Store) CreateReview(ctx context.Context, r *models.Review) error {
	defer s.acquire(ctx)()

	for _, other := range s.reviews {
		if other.BookingID == r.BookingID ||
			(other.CustomerID == r.CustomerID && other.BarberID == r.BarberID) {
			return review.ErrAlreadyReviewed
		}
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.reviews[r.ID] = *r
	return nil
}

func (s *Store) ExistsForCustomerBarber(ctx context.Context, customerID, barberID uuid.UUID) (bool, error) {
	defer s.acquire(ctx)()

	for _, r := range s.reviews {
		if r.CustomerID == customerID && r.BarberID == barberID {
			return true, nil
		}
	}
	return false, nil
}

// -------- Audit --------

func (s *Store) SaveAuditLog(ctx context.Context, entry *models.AuditLog) error {
	defer s.acquire(ctx)()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	s.audit = append(s.audit, *entry)
	return nil
}

func (s *Store) ListAuditLogs(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	defer s.acquire(ctx)()

	var matched []models.AuditLog
	for i := len(s.audit) - 1; i >= 0; i-- {
		if q.Matches(s.audit[i]) {
			matched = append(matched, s.audit[i])
		}
	}
	total := int64(len(matched))

	if q.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}
