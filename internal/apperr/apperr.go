// Package apperr classifies the failures the storefront reports to clients
// and maps each class to an HTTP status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the failure class.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindAuthentication
	KindInsufficientFunds
	KindUnsupportedPayment
	KindStore
)

// Error is a classified failure with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

func NotFoundf(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func Conflictf(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

func Authenticationf(format string, args ...interface{}) *Error {
	return newf(KindAuthentication, format, args...)
}

func InsufficientFundsf(format string, args ...interface{}) *Error {
	return newf(KindInsufficientFunds, format, args...)
}

func UnsupportedPaymentf(format string, args ...interface{}) *Error {
	return newf(KindUnsupportedPayment, format, args...)
}

// Storef wraps an underlying data-store failure.
func Storef(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindStore, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the failure class of err, defaulting to KindStore for
// anything unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStore
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// Status maps err to the HTTP status the handlers respond with.
// AuthenticationError deliberately maps to 400, matching the upstream API.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindAuthentication,
		KindInsufficientFunds, KindUnsupportedPayment:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
