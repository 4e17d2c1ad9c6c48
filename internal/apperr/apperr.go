// Package apperr carries the error kinds callers branch on. Every expected,
// recoverable failure of the engine is an *Error with one of these kinds; anything
// else is an internal failure.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInvalidTransition    Kind = "invalid_transition"
	KindMissingPaymentMethod Kind = "missing_payment_method"
	KindSlotConflict         Kind = "slot_conflict"
	KindQuotaExceeded        Kind = "quota_exceeded"
	KindNotFound             Kind = "not_found"
	KindForbidden            Kind = "forbidden"
	KindValidation           Kind = "validation"
	KindUnavailable          Kind = "unavailable"
	KindInternal             Kind = "internal"
)

type Error struct {
	Kind    Kind
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and code so sentinels declared with
// New keep working after WithDetails copies them.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// WithDetails returns a copy carrying the given details.
func (e *Error) WithDetails(details map[string]any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Wrap(kind Kind, code string, err error) *Error {
	return &Error{Kind: kind, Code: code, Err: err}
}

func Validation(code, message string) *Error {
	return New(KindValidation, code, message)
}

func NotFound(entity string) *Error {
	return New(KindNotFound, entity+"_not_found", entity+" not found")
}

func Forbidden(code, message string) *Error {
	return New(KindForbidden, code, message)
}

func Unavailable(err error) *Error {
	return Wrap(KindUnavailable, "unavailable", err)
}

// KindOf returns the kind of the first *Error in err's chain, KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
