package wishlist

import "github.com/XCypherusX/tbs-api/internal/apperr"

var (
	ErrInvalidIDs     = apperr.New(apperr.KindInvalidInput, "user_id, ground_id and reservation_id are required")
	ErrGroundMismatch = apperr.New(apperr.KindInvalidInput, "ground_id does not match the reservation's ground")
	ErrForbidden      = apperr.New(apperr.KindForbidden, "not allowed to create wishlist entries for another user")
)
