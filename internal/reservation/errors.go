package reservation

import "github.com/XCypherusX/tbs-api/internal/apperr"

var (
	ErrNotFound          = apperr.New(apperr.KindNotFound, "reservation not found")
	ErrSlotAlreadyBooked = apperr.New(apperr.KindSlotAlreadyBooked, "time slot is already booked for this ground")
	ErrForbidden         = apperr.New(apperr.KindForbidden, "not allowed to modify this reservation")
	ErrInvalidIDs        = apperr.New(apperr.KindInvalidInput, "user_id, ground_id and time_slot_id are required")
	ErrUnknownUser       = apperr.New(apperr.KindNotFound, "user not found")
)
