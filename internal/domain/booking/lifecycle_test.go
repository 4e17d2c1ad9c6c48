package booking_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

var now = time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)

func newBooking(status booking.Status, start time.Time) *models.Booking {
	return &models.Booking{
		ID:          uuid.New(),
		CustomerID:  uuid.New(),
		BarberID:    uuid.New(),
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      string(status),
		Price:       25000,
	}
}

func TestPlan_TransitionTable(t *testing.T) {
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		from     booking.Status
		start    time.Time
		role     actor.Role
		cmd      booking.Command
		wantKind apperr.Kind
	}{
		{name: "barber confirms future booking", from: booking.StatusPending, start: future, role: actor.RoleBarber, cmd: booking.Command{To: booking.StatusConfirmed}},
		{name: "admin confirms", from: booking.StatusPending, start: future, role: actor.RoleAdmin, cmd: booking.Command{To: booking.StatusConfirmed}},
		{name: "user may not confirm", from: booking.StatusPending, start: future, role: actor.RoleUser, cmd: booking.Command{To: booking.StatusConfirmed}, wantKind: apperr.KindForbidden},
		{name: "confirm after start", from: booking.StatusPending, start: past, role: actor.RoleBarber, cmd: booking.Command{To: booking.StatusConfirmed}, wantKind: apperr.KindInvalidTransition},
		{name: "user cancels pending with reason", from: booking.StatusPending, start: future, role: actor.RoleUser, cmd: booking.Command{To: booking.StatusCancelled, Reason: "sick"}},
		{name: "user cancels confirmed with reason", from: booking.StatusConfirmed, start: future, role: actor.RoleUser, cmd: booking.Command{To: booking.StatusCancelled, Reason: "sick"}},
		{name: "barber complete pending", from: booking.StatusPending, start: past, role: actor.RoleBarber, cmd: booking.Command{To: booking.StatusCompleted, PaymentMethod: "cash"}},
		{name: "user may not complete", from: booking.StatusConfirmed, start: past, role: actor.RoleUser, cmd: booking.Command{To: booking.StatusCompleted, PaymentMethod: "cash"}, wantKind: apperr.KindForbidden},
		{name: "complete without payment", from: booking.StatusConfirmed, start: past, role: actor.RoleBarber, cmd: booking.Command{To: booking.StatusCompleted}, wantKind: apperr.KindMissingPaymentMethod},
		{name: "complete with unknown payment", from: booking.StatusConfirmed, start: past, role: actor.RoleBarber, cmd: booking.Command{To: booking.StatusCompleted, PaymentMethod: "bitcoin"}, wantKind: apperr.KindValidation},
		{name: "no show after start", from: booking.StatusConfirmed, start: past, role: actor.RoleBarber, cmd: booking.Command{To: booking.StatusNoShow}},
		{name: "no show before start", from: booking.StatusConfirmed, start: future, role: actor.RoleBarber, cmd: booking.Command{To: booking.StatusNoShow}, wantKind: apperr.KindInvalidTransition},
		{name: "no show from pending is not an edge", from: booking.StatusPending, start: past, role: actor.RoleBarber, cmd: booking.Command{To: booking.StatusNoShow}, wantKind: apperr.KindInvalidTransition},
		{name: "confirmed back to pending is not an edge", from: booking.StatusConfirmed, start: future, role: actor.RoleAdmin, cmd: booking.Command{To: booking.StatusPending}, wantKind: apperr.KindInvalidTransition},
		{name: "self loop is not an edge", from: booking.StatusConfirmed, start: future, role: actor.RoleAdmin, cmd: booking.Command{To: booking.StatusConfirmed}, wantKind: apperr.KindInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBooking(tt.from, tt.start)
			err := booking.Plan(b, tt.role, tt.cmd, now)

			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, apperr.KindOf(err))
			}
			assert.Equal(t, string(tt.from), b.Status, "Plan must not mutate")
		})
	}
}

func TestPlan_TerminalStatesAreImmutable(t *testing.T) {
	targets := []booking.Status{
		booking.StatusPending, booking.StatusConfirmed, booking.StatusCompleted,
		booking.StatusCancelled, booking.StatusNoShow,
	}

	for _, from := range []booking.Status{booking.StatusCompleted, booking.StatusCancelled, booking.StatusNoShow} {
		for _, to := range targets {
			for _, role := range []actor.Role{actor.RoleUser, actor.RoleBarber, actor.RoleAdmin} {
				b := newBooking(from, now.Add(-time.Hour))
				err := booking.Transition(b, role, booking.Command{To: to, PaymentMethod: "cash", Reason: "x"}, now)

				assert.ErrorIs(t, err, booking.ErrInvalidTransition, "%s -> %s by %s", from, to, role)
				assert.Equal(t, string(from), b.Status)
			}
		}
	}
}

func TestTransitionError_Details(t *testing.T) {
	b := newBooking(booking.StatusCancelled, now)
	err := booking.Plan(b, actor.RoleAdmin, booking.Command{To: booking.StatusConfirmed}, now)

	var te *booking.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, booking.StatusCancelled, te.From)
	assert.Equal(t, booking.StatusConfirmed, te.To)

	ae, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "cancelled", ae.Details["from"])
	assert.Equal(t, "terminal_state", ae.Details["reason"])
}

func TestTransition_CompleteCapturesPriceSnapshot(t *testing.T) {
	b := newBooking(booking.StatusConfirmed, now.Add(-time.Hour))

	err := booking.Transition(b, actor.RoleBarber, booking.Command{To: booking.StatusCompleted, PaymentMethod: "card"}, now)
	require.NoError(t, err)

	assert.Equal(t, "completed", b.Status)
	require.NotNil(t, b.TotalRevenue)
	assert.Equal(t, 25000.0, *b.TotalRevenue)
	require.NotNil(t, b.PaymentMethod)
	assert.Equal(t, "card", *b.PaymentMethod)
	require.NotNil(t, b.CompletedAt)
	assert.Equal(t, now, *b.CompletedAt)
}

func TestTransition_CancellationReasonAsymmetry(t *testing.T) {
	tests := []struct {
		role    actor.Role
		reason  string
		wantErr bool
	}{
		{role: actor.RoleUser, reason: "", wantErr: true},
		{role: actor.RoleUser, reason: "   ", wantErr: true},
		{role: actor.RoleBarber, reason: "", wantErr: true},
		{role: actor.RoleAdmin, reason: ""},
		{role: actor.RoleUser, reason: "traffic"},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+tt.reason, func(t *testing.T) {
			b := newBooking(booking.StatusPending, now.Add(time.Hour))
			err := booking.Transition(b, tt.role, booking.Command{To: booking.StatusCancelled, Reason: tt.reason}, now)

			if tt.wantErr {
				assert.ErrorIs(t, err, booking.ErrCancellationReasonRequired)
				assert.Equal(t, "pending", b.Status)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "cancelled", b.Status)
			require.NotNil(t, b.CancelledBy)
			assert.Equal(t, string(tt.role), *b.CancelledBy)
			assert.Equal(t, tt.reason, b.CancellationReason)
			require.NotNil(t, b.CancelledAt)
			assert.Nil(t, b.TotalRevenue)
		})
	}
}

func TestAuthorize(t *testing.T) {
	b := newBooking(booking.StatusPending, now)
	barberUser := uuid.New()

	assert.NoError(t, booking.Authorize(b, actor.Actor{ID: b.CustomerID, Role: actor.RoleUser}, barberUser))
	assert.NoError(t, booking.Authorize(b, actor.Actor{ID: barberUser, Role: actor.RoleBarber}, barberUser))
	assert.NoError(t, booking.Authorize(b, actor.Actor{ID: uuid.New(), Role: actor.RoleAdmin}, barberUser))

	assert.ErrorIs(t, booking.Authorize(b, actor.Actor{ID: uuid.New(), Role: actor.RoleUser}, barberUser), booking.ErrNotOwner)
	assert.ErrorIs(t, booking.Authorize(b, actor.Actor{ID: uuid.New(), Role: actor.RoleBarber}, barberUser), booking.ErrNotOwner)
	assert.ErrorIs(t, booking.Authorize(b, actor.Actor{ID: b.CustomerID, Role: actor.RoleBarber}, barberUser), booking.ErrNotOwner)
}

func TestAllowedTargets(t *testing.T) {
	assert.ElementsMatch(t,
		[]booking.Status{booking.StatusConfirmed, booking.StatusCompleted, booking.StatusCancelled},
		booking.AllowedTargets(booking.StatusPending, actor.RoleBarber))
	assert.Equal(t, []booking.Status{booking.StatusCancelled}, booking.AllowedTargets(booking.StatusConfirmed, actor.RoleUser))
	assert.Empty(t, booking.AllowedTargets(booking.StatusNoShow, actor.RoleAdmin))
}

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, booking.StatusPending, booking.InitialStatus(actor.RoleUser))
	assert.Equal(t, booking.StatusConfirmed, booking.InitialStatus(actor.RoleBarber))
	assert.Equal(t, booking.StatusConfirmed, booking.InitialStatus(actor.RoleAdmin))
}
