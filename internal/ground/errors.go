package ground

import "github.com/XCypherusX/tbs-api/internal/apperr"

var (
	ErrNotFound            = apperr.New(apperr.KindNotFound, "ground not found")
	ErrDuplicateName       = apperr.New(apperr.KindDuplicateName, "ground name already exists")
	ErrNameRequired        = apperr.New(apperr.KindInvalidInput, "ground name is required")
	ErrDescriptionRequired = apperr.New(apperr.KindInvalidInput, "ground description is required")
	ErrInvalidRate         = apperr.New(apperr.KindInvalidInput, "rate must be between 0.01 and 9999999999.99")
	ErrInactive            = apperr.New(apperr.KindInvalidInput, "ground is not active")
	ErrInUse               = apperr.New(apperr.KindGroundInUse, "ground is referenced by reservations or wishlist entries")
)
