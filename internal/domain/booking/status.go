package booking

import "github.com/BruksfildServices01/barbershop-booking/internal/domain/actor"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ActiveStatuses are the states that hold a slot on the barber's calendar.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), true
	}
	return "", false
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// InitialStatus is pending for customers; barbers and admins book straight
// into confirmed.
func InitialStatus(role actor.Role) Status {
	if role == actor.RoleUser {
		return StatusPending
	}
	return StatusConfirmed
}

// ===============================
// Payment Method
// ===============================

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOther    PaymentMethod = "other"
)

func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return PaymentMethod(s), true
	}
	return "", false
}
