package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/timezone"
	"github.com/BruksfildServices01/barbershop-booking/internal/usecase/booking"
)

// 2024-05-06 is a Monday.
var monday = time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

type fixture struct {
	store *memory.Store
	now   time.Time

	customer   models.User
	other      models.User
	barberUser models.User
	barber     models.Barber
	service    models.Service

	create     *booking.CreateBooking
	transition *booking.TransitionBooking
	avail      *booking.GetAvailability
	get        *booking.GetBooking
	purge      *booking.PurgeBooking
	list       *booking.ListBookings
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		store: memory.NewStore(),
		now:   monday.Add(-12 * time.Hour),
	}

	f.customer = f.store.PutUser(models.User{Name: "Carla", Email: "carla@example.com", Role: models.RoleUser, Active: true})
	f.other = f.store.PutUser(models.User{Name: "Otto", Email: "otto@example.com", Role: models.RoleUser, Active: true})
	f.barberUser = f.store.PutUser(models.User{Name: "Bruno", Email: "bruno@example.com", Role: models.RoleBarber, Active: true})
	f.barber = f.store.PutBarber(models.Barber{UserID: f.barberUser.ID, Name: "Bruno", Active: true})
	f.service = f.store.PutService(models.Service{Name: "Corte", DurationMin: 30, Price: 25000, Active: true})

	require.NoError(t, f.store.ReplaceWorkingHours(context.Background(), f.barber.ID, []models.WorkingHours{{
		Weekday:    int(time.Monday),
		StartTime:  "08:00",
		EndTime:    "19:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		Active:     true,
	}}))

	clock := timezone.ClockFunc(func() time.Time { return f.now }, time.UTC)
	gran := 30 * time.Minute

	f.create = booking.NewCreateBooking(f.store, f.store, f.store, f.store, clock, gran, nil, nil)
	f.transition = booking.NewTransitionBooking(f.store, f.store, f.store, clock, nil, nil)
	f.avail = booking.NewGetAvailability(f.store, f.store, f.store, clock, gran)
	f.get = booking.NewGetBooking(f.store, f.store)
	f.purge = booking.NewPurgeBooking(f.store, f.store, nil)
	f.list = booking.NewListBookings(f.store, f.store, clock)

	return f
}

func (f *fixture) asCustomer() actor.Actor {
	return actor.Actor{ID: f.customer.ID, Role: actor.RoleUser}
}

func (f *fixture) asBarber() actor.Actor {
	return actor.Actor{ID: f.barberUser.ID, Role: actor.RoleBarber}
}

func asAdmin() actor.Actor {
	return actor.Actor{ID: uuid.New(), Role: actor.RoleAdmin}
}

func (f *fixture) book(t *testing.T, a actor.Actor, start time.Time) *models.Booking {
	t.Helper()

	in := booking.CreateInput{BarberID: f.barber.ID, ServiceID: f.service.ID, Start: start}
	if a.Role != actor.RoleUser {
		id := f.customer.ID
		in.CustomerID = &id
	}

	b, err := f.create.Execute(context.Background(), a, in)
	require.NoError(t, err)
	return b
}
