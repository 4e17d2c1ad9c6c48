package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/barber"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/memory"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

func newBooking(barberID uuid.UUID, start time.Time, status booking.Status) *models.Booking {
	return &models.Booking{
		CustomerID:  uuid.New(),
		BarberID:    barberID,
		ServiceID:   uuid.New(),
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      string(status),
		Price:       25000,
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	b := s.PutBarber(models.Barber{Name: "Ana", Active: true})

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		b.Featured = true
		require.NoError(t, s.UpdateBarberFlags(ctx, &b))
		require.NoError(t, s.CreateBooking(ctx, newBooking(b.ID, time.Now().Add(time.Hour), booking.StatusPending)))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := s.GetBarber(ctx, b.ID)
	require.NoError(t, err)
	assert.False(t, got.Featured)

	list, err := s.ListActiveOverlapping(ctx, b.ID, time.Now(), time.Now().Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestWithinTx_Nested(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	b := s.PutBarber(models.Barber{Name: "Ana", Active: true})

	err := s.WithinTx(ctx, func(ctx context.Context) error {
		return s.WithinTx(ctx, func(ctx context.Context) error {
			b.Featured = true
			return s.UpdateBarberFlags(ctx, &b)
		})
	})
	require.NoError(t, err)

	n, err := s.CountFeatured(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCreateBooking_ExclusionBackstop(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	barberID := uuid.New()
	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateBooking(ctx, newBooking(barberID, start, booking.StatusConfirmed)))

	err := s.CreateBooking(ctx, newBooking(barberID, start.Add(15*time.Minute), booking.StatusPending))
	assert.ErrorIs(t, err, booking.ErrSlotConflict)

	assert.NoError(t, s.CreateBooking(ctx, newBooking(barberID, start.Add(30*time.Minute), booking.StatusPending)), "touching is fine")
	assert.NoError(t, s.CreateBooking(ctx, newBooking(uuid.New(), start, booking.StatusPending)), "other barber")
	assert.NoError(t, s.CreateBooking(ctx, newBooking(barberID, start, booking.StatusCancelled)), "terminal rows are history")
}

func TestListForPeriod_HalfOpenAndPreloaded(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	svc := s.PutService(models.Service{Name: "Cut", DurationMin: 30, Price: 25000, Active: true})
	barberID := uuid.New()
	day := time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

	for _, h := range []int{0, 9, 23} {
		b := newBooking(barberID, day.Add(time.Duration(h)*time.Hour), booking.StatusConfirmed)
		b.ServiceID = svc.ID
		require.NoError(t, s.CreateBooking(ctx, b))
	}
	require.NoError(t, s.CreateBooking(ctx, newBooking(barberID, day.Add(24*time.Hour), booking.StatusConfirmed)))

	got, err := s.ListForPeriod(ctx, barberID, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].StartTime.Equal(day))
	require.NotNil(t, got[1].Service)
	assert.Equal(t, "Cut", got[1].Service.Name)
}

func TestListActiveBarbers_Filter(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	s.PutBarber(models.Barber{Name: "Bruno", Active: true, Featured: true})
	s.PutBarber(models.Barber{Name: "Ana", Active: true})
	s.PutBarber(models.Barber{Name: "Caio", Active: false, Featured: true})

	all, err := s.ListActiveBarbers(ctx, barber.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].Name)

	featured := true
	only, err := s.ListActiveBarbers(ctx, barber.ListFilter{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Bruno", only[0].Name)
}

func TestWithinTx_SerializesWriters(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	barberID := uuid.New()
	start := time.Date(2030, 1, 7, 10, 0, 0, 0, time.UTC)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.WithinTx(ctx, func(ctx context.Context) error {
				existing, err := s.ListActiveOverlapping(ctx, barberID, start, start.Add(30*time.Minute))
				if err != nil {
					return err
				}
				if len(existing) > 0 {
					return booking.ErrSlotConflict
				}
				return s.CreateBooking(ctx, newBooking(barberID, start, booking.StatusPending))
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}
