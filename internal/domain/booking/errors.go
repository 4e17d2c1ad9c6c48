package booking

import (
	"fmt"

	"github.com/BruksfildServices01/barbershop-booking/internal/apperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"
)

var (
	ErrInvalidTransition    = apperr.New(apperr.KindInvalidTransition, "invalid_transition", "status transition not allowed")
	ErrMissingPaymentMethod = apperr.New(apperr.KindMissingPaymentMethod, "missing_payment_method", "payment method is required to complete a booking")
	ErrSlotConflict         = apperr.New(apperr.KindSlotConflict, "slot_conflict", "slot is already booked")

	ErrTransitionForbidden = apperr.Forbidden("transition_forbidden", "role may not perform this transition")
	ErrNotOwner            = apperr.Forbidden("not_booking_owner", "booking belongs to someone else")

	ErrInvalidPaymentMethod       = apperr.Validation("invalid_payment_method", "unknown payment method")
	ErrCancellationReasonRequired = apperr.Validation("cancellation_reason_required", "a cancellation reason is required")
	ErrInvalidStatus              = apperr.Validation("invalid_status", "unknown booking status")
	ErrSlotInPast                 = apperr.Validation("slot_in_past", "slot must be in the future")
	ErrSlotNotAligned             = apperr.Validation("slot_not_aligned", "slot is not on the booking grid")
	ErrOutsideWorkingHours        = apperr.Validation("outside_working_hours", "slot is outside the barber's working hours")
	ErrNotTerminal                = apperr.Validation("booking_not_terminal", "only finished bookings can be purged")

	ErrBookingNotFound = apperr.NotFound("booking")
)

// TransitionError describes a rejected status change. It unwraps to
// ErrInvalidTransition carrying the same fields as details.
type TransitionError struct {
	From   Status
	To     Status
	Role   actor.Role
	Reason string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("invalid transition %s -> %s by %s", e.From, e.To, e.Role)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TransitionError) Unwrap() error {
	details := map[string]any{
		"from": string(e.From),
		"to":   string(e.To),
		"role": string(e.Role),
	}
	if e.Reason != "" {
		details["reason"] = e.Reason
	}
	return ErrInvalidTransition.WithDetails(details)
}
