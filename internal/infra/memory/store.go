// Package memory is an in-process implementation of the repositories and the
// transactor. Transactions serialize on one store-wide mutex and roll back by
// restoring a snapshot, so the same invariants hold as with Postgres.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type Store struct {
	mu sync.Mutex

	users    map[uuid.UUID]models.User
	barbers  map[uuid.UUID]models.Barber
	hours    map[uuid.UUID][]models.WorkingHours
	services map[uuid.UUID]models.Service
	bookings map[uuid.UUID]models.Booking
	reviews  map[uuid.UUID]models.Review
	audit    []models.AuditLog
}

func NewStore() *Store {
	return &Store{
		users:    map[uuid.UUID]models.User{},
		barbers:  map[uuid.UUID]models.Barber{},
		hours:    map[uuid.UUID][]models.WorkingHours{},
		services: map[uuid.UUID]models.Service{},
		bookings: map[uuid.UUID]models.Booking{},
		reviews:  map[uuid.UUID]models.Review{},
	}
}

type txKey struct{}

type snapshot struct {
	users    map[uuid.UUID]models.User
	barbers  map[uuid.UUID]models.Barber
	hours    map[uuid.UUID][]models.WorkingHours
	services map[uuid.UUID]models.Service
	bookings map[uuid.UUID]models.Booking
	reviews  map[uuid.UUID]models.Review
	audit    int
}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// acquire locks the store unless ctx already runs inside one of its
// transactions.
func (s *Store) acquire(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) snapshot() snapshot {
	hours := make(map[uuid.UUID][]models.WorkingHours, len(s.hours))
	for k, v := range s.hours {
		hours[k] = append([]models.WorkingHours(nil), v...)
	}
	return snapshot{
		users:    maps.Clone(s.users),
		barbers:  maps.Clone(s.barbers),
		hours:    hours,
		services: maps.Clone(s.services),
		bookings: maps.Clone(s.bookings),
		reviews:  maps.Clone(s.reviews),
		audit:    len(s.audit),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.barbers = snap.barbers
	s.hours = snap.hours
	s.services = snap.services
	s.bookings = snap.bookings
	s.reviews = snap.reviews
	s.audit = s.audit[:snap.audit]
}

// WithinTx runs fn holding the store lock. Any error rolls every change back.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
		if err != nil {
			s.restore(snap)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

// -------- Seeding --------

func (s *Store) PutUser(u models.User) models.User {
	defer s.acquire(context.Background())()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users[u.ID] = u
	return u
}

func (s *Store) PutBarber(b models.Barber) models.Barber {
	defer s.acquire(context.Background())()
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.WorkingHours = nil
	s.barbers[b.ID] = b
	return b
}

func (s *Store) PutService(svc models.Service) models.Service {
	defer s.acquire(context.Background())()
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}
	s.services[svc.ID] = svc
	return svc
}

// AuditLogs returns a copy of every stored audit entry.
func (s *Store) AuditLogs() []models.AuditLog {
	defer s.acquire(context.Background())()
	return append([]models.AuditLog(nil), s.audit...)
}
