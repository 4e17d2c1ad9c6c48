package booking

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// Command is a requested status change.
type Command struct {
	To            Status
	PaymentMethod string
	Reason        string
}

// Authorize checks that a may act on b at all. barberUserID is the user
// account behind b's barber.
func Authorize(b *models.Booking, a actor.Actor, barberUserID uuid.UUID) error {
	switch a.Role {
	case actor.RoleAdmin:
		return nil
	case actor.RoleUser:
		if b.CustomerID == a.ID {
			return nil
		}
	case actor.RoleBarber:
		if barberUserID == a.ID {
			return nil
		}
	}
	return ErrNotOwner
}

// Plan validates cmd against the transition table without touching b.
//
// Checks run in a fixed order: terminal source, unknown edge, role, time
// precondition, then the side-effect inputs of the target state.
func Plan(b *models.Booking, role actor.Role, cmd Command, now time.Time) error {
	from := Status(b.Status)

	if from.IsTerminal() {
		return &TransitionError{From: from, To: cmd.To, Role: role, Reason: "terminal_state"}
	}

	r, ok := transitions[edge{from, cmd.To}]
	if !ok {
		return &TransitionError{From: from, To: cmd.To, Role: role}
	}

	if !slices.Contains(r.roles, role) {
		return ErrTransitionForbidden.WithDetails(map[string]any{
			"from": string(from),
			"to":   string(cmd.To),
			"role": string(role),
		})
	}

	if r.precondition != nil {
		if reason := r.precondition(b, now); reason != "" {
			return &TransitionError{From: from, To: cmd.To, Role: role, Reason: reason}
		}
	}

	switch cmd.To {
	case StatusCompleted:
		if strings.TrimSpace(cmd.PaymentMethod) == "" {
			return ErrMissingPaymentMethod
		}
		if _, ok := ParsePaymentMethod(cmd.PaymentMethod); !ok {
			return ErrInvalidPaymentMethod.WithDetails(map[string]any{"payment_method": cmd.PaymentMethod})
		}
	case StatusCancelled:
		if role != actor.RoleAdmin && strings.TrimSpace(cmd.Reason) == "" {
			return ErrCancellationReasonRequired
		}
	}

	return nil
}

// Transition applies cmd to b after Plan accepts it. Revenue is the price
// captured at creation, never the current catalog price.
func Transition(b *models.Booking, role actor.Role, cmd Command, now time.Time) error {
	if err := Plan(b, role, cmd, now); err != nil {
		return err
	}

	b.Status = string(cmd.To)

	switch cmd.To {
	case StatusCompleted:
		revenue := b.Price
		method := cmd.PaymentMethod
		b.TotalRevenue = &revenue
		b.PaymentMethod = &method
		b.CompletedAt = &now

	case StatusCancelled:
		by := string(role)
		b.CancellationReason = strings.TrimSpace(cmd.Reason)
		b.CancelledBy = &by
		b.CancelledAt = &now
	}

	return nil
}
