package domain

import "errors"

// Kind classifies an error for transport-level mapping.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindConflict
	KindNotFound
	KindUnauthorized
	KindBadRequest
	KindInternal
)

// Error is a typed service error with a stable kind and a human-readable
// message. Engines surface exactly one of these per failure.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf extracts the Kind from err. Unknown errors map to KindInternal so
// implementation details never leak to callers.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Authentication errors
var (
	ErrFieldsRequired     = &Error{KindValidation, "please fill all fields"}
	ErrEmailExists        = &Error{KindConflict, "email already exists"}
	ErrInvalidCredentials = &Error{KindUnauthorized, "email or password is invalid"}
	ErrUserNotFound       = &Error{KindNotFound, "user not found"}
	ErrPasswordMismatch   = &Error{KindBadRequest, "current password does not match"}
	ErrPasswordIncorrect  = &Error{KindBadRequest, "incorrect password"}
	ErrPasswordUnchanged  = &Error{KindBadRequest, "new password cannot be the same as current password"}
)

// Two-factor errors
var (
	ErrTOTPIncorrect      = &Error{KindUnauthorized, "the provided totp is incorrect or expired"}
	ErrTOTPInvalid        = &Error{KindBadRequest, "totp is not correct or expired"}
	ErrTwoFASecretMissing = &Error{KindBadRequest, "two-factor secret required"}
	ErrTempTokenInvalid   = &Error{KindUnauthorized, "the provided temporary token is incorrect or expired"}
)

// Token errors
var (
	ErrTokenInvalid         = &Error{KindUnauthorized, "invalid token"}
	ErrTokenExpired         = &Error{KindUnauthorized, "token has expired"}
	ErrTokenMalformed       = &Error{KindUnauthorized, "malformed token"}
	ErrTokenRevoked         = &Error{KindUnauthorized, "access token invalid"}
	ErrRefreshTokenNotFound = &Error{KindUnauthorized, "refresh token not found"}
)

// Session and category errors
var (
	ErrCategoryNotFound     = &Error{KindNotFound, "categoryId is not valid"}
	ErrSessionNotFound      = &Error{KindNotFound, "session not found"}
	ErrSessionCompleted     = &Error{KindBadRequest, "session already completed"}
	ErrSessionNotPaused     = &Error{KindBadRequest, "session is not paused"}
	ErrSessionAlreadyPaused = &Error{KindBadRequest, "session is already paused"}
	ErrDurationRequired     = &Error{KindValidation, "for timer sessions, please provide durationSeconds"}
	ErrInvalidSessionType   = &Error{KindValidation, "session type must be stopwatch or timer"}
)
