package timeslot

import "github.com/XCypherusX/tbs-api/internal/apperr"

var (
	ErrNotFound       = apperr.New(apperr.KindNotFound, "time slot not found")
	ErrInvalidTime    = apperr.New(apperr.KindInvalidInput, "start_time and end_time must be RFC3339 timestamps")
	ErrInvalidRange   = apperr.New(apperr.KindInvalidRange, "start_time must be before end_time")
	ErrDuplicateStart = apperr.New(apperr.KindDuplicateStart, "a time slot with this start time already exists")
	ErrInUse          = apperr.New(apperr.KindTimeSlotInUse, "time slot is referenced by reservations")
)
