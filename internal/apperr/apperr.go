// Package apperr defines the error kinds shared by the booking components.
// Components return errors that wrap one of the Kind values so callers can
// classify them with errors.Is regardless of the message.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindInvalidRange      Kind = "invalid_range"
	KindNotFound          Kind = "not_found"
	KindDuplicateName     Kind = "duplicate_name"
	KindDuplicateStart    Kind = "duplicate_start"
	KindSlotAlreadyBooked Kind = "slot_already_booked"
	KindForbidden         Kind = "forbidden"
	KindGroundInUse       Kind = "ground_in_use"
	KindTimeSlotInUse     Kind = "time_slot_in_use"
	KindUnavailable       Kind = "unavailable"
	KindInternal          Kind = "internal"
)

// Error carries a kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so package sentinels with different
// messages still compare equal to the generic kind values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Kind values usable as errors.Is targets.
var (
	InvalidInput      = &Error{Kind: KindInvalidInput}
	InvalidRange      = &Error{Kind: KindInvalidRange}
	NotFound          = &Error{Kind: KindNotFound}
	DuplicateName     = &Error{Kind: KindDuplicateName}
	DuplicateStart    = &Error{Kind: KindDuplicateStart}
	SlotAlreadyBooked = &Error{Kind: KindSlotAlreadyBooked}
	Forbidden         = &Error{Kind: KindForbidden}
	GroundInUse       = &Error{Kind: KindGroundInUse}
	TimeSlotInUse     = &Error{Kind: KindTimeSlotInUse}
	Unavailable       = &Error{Kind: KindUnavailable}
	Internal          = &Error{Kind: KindInternal}
)

// Wrap classifies an untyped persistence fault as Unavailable. Errors that
// already carry a kind pass through unchanged.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "internal server error"
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindInvalidInput, KindInvalidRange:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindDuplicateName, KindDuplicateStart, KindSlotAlreadyBooked, KindGroundInUse, KindTimeSlotInUse:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
