package user

import "github.com/XCypherusX/tbs-api/internal/apperr"

var (
	ErrEmailExists         = apperr.New(apperr.KindDuplicateName, "email already registered")
	ErrInvalidCredentials  = apperr.New(apperr.KindForbidden, "invalid email or password")
	ErrInvalidRefreshToken = apperr.New(apperr.KindForbidden, "invalid or expired refresh token")
	ErrUserNotFound        = apperr.New(apperr.KindNotFound, "user not found")
	ErrInvalidDOB          = apperr.New(apperr.KindInvalidInput, "date of birth must be a past date in YYYY-MM-DD form")
)
