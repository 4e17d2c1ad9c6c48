package booking

import (
	"slices"
	"time"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

type edge struct {
	from Status
	to   Status
}

type rule struct {
	roles []actor.Role

	// precondition returns a non-empty reason when the edge may not be taken now.
	precondition func(b *models.Booking, now time.Time) string
}

var (
	anyone = []actor.Role{actor.RoleUser, actor.RoleBarber, actor.RoleAdmin}
	staff  = []actor.Role{actor.RoleBarber, actor.RoleAdmin}
)

var transitions = map[edge]rule{
	{StatusPending, StatusConfirmed}:   {roles: staff, precondition: startsInFuture},
	{StatusPending, StatusCancelled}:   {roles: anyone},
	{StatusPending, StatusCompleted}:   {roles: staff},
	{StatusConfirmed, StatusCompleted}: {roles: staff},
	{StatusConfirmed, StatusCancelled}: {roles: anyone},
	{StatusConfirmed, StatusNoShow}:    {roles: staff, precondition: startedInPast},
}

func startsInFuture(b *models.Booking, now time.Time) string {
	if !b.StartTime.After(now) {
		return "booking_already_started"
	}
	return ""
}

func startedInPast(b *models.Booking, now time.Time) string {
	if !b.StartTime.Before(now) {
		return "booking_not_started"
	}
	return ""
}

// AllowedTargets lists the statuses role may move a booking in from to.
func AllowedTargets(from Status, role actor.Role) []Status {
	if from.IsTerminal() {
		return nil
	}
	var out []Status
	for _, to := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		r, ok := transitions[edge{from, to}]
		if ok && slices.Contains(r.roles, role) {
			out = append(out, to)
		}
	}
	return out
}
