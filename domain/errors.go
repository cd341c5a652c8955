package domain

import "errors"

// Verification errors
var (
	ErrRateLimited     = errors.New("verification entry already issued")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrInvalidResetKey = errors.New("invalid password reset key")
)

// Authentication errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrUserInactive      = errors.New("user account is inactive")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// Token errors
var (
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenNotFound  = errors.New("token not found")
	ErrWrongTokenType = errors.New("wrong token type")
)

// Authorization errors
var (
	ErrForbidden = errors.New("insufficient role permissions")
)

// ErrStoreUnavailable marks transient backing-store failures. It is kept
// distinct from the miss errors above so a connectivity outage is never
// reported as a wrong code or a missing user.
var ErrStoreUnavailable = errors.New("backing store unavailable")
