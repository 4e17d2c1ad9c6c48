package db

import (
	"context"
	"errors"
	"net"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the engine reacts to.
const (
	CodeUniqueViolation      = "23505"
	CodeExclusionViolation   = "23P01"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsExclusionConflict reports a violation of an EXCLUDE constraint, which for
// bookings means the slot overlaps another active booking.
func IsExclusionConflict(err error) bool {
	return pgCode(err) == CodeExclusionViolation
}

func IsUniqueViolation(err error) bool {
	return pgCode(err) == CodeUniqueViolation
}

// IsTransient reports failures that are worth retrying the whole transaction
// for: serialization failures, deadlocks and lost connections.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	switch pgCode(err) {
	case CodeSerializationFailure, CodeDeadlockDetected:
		return true
	}

	if pgconn.SafeToRetry(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
