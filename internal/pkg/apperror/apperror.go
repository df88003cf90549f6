// internal/pkg/apperror/apperror.go
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business error so the HTTP layer can map it to a status
// code without string matching.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidArgument
	KindNotFound
	KindInvalidState
	KindInsufficientStock
	KindInsufficientAvailability
	KindInsufficientReservation
	KindOverReceipt
)

// Error is a business error with a kind and a caller-facing message. The
// message carries enough context (current quantity, requested amount, maximum
// allowed) for the caller to self-correct.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the given kind and formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return New(KindInvalidArgument, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return New(KindInvalidState, format, args...)
}

func InsufficientStock(format string, args ...interface{}) *Error {
	return New(KindInsufficientStock, format, args...)
}

func InsufficientAvailability(format string, args ...interface{}) *Error {
	return New(KindInsufficientAvailability, format, args...)
}

func InsufficientReservation(format string, args ...interface{}) *Error {
	return New(KindInsufficientReservation, format, args...)
}

func OverReceipt(format string, args ...interface{}) *Error {
	return New(KindOverReceipt, format, args...)
}

// KindOf returns the Kind of err, or KindInternal if err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error to the HTTP status code the API contract requires:
// 400 for validation and quantity-guard failures, 404 for missing entities,
// 500 for everything unexpected.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidArgument, KindInvalidState,
		KindInsufficientStock, KindInsufficientAvailability,
		KindInsufficientReservation, KindOverReceipt:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
