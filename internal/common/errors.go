package common

import "errors"

// Callers match these with errors.Is; lower layers wrap them with detail.
var (
	// repository specific errors
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// input errors
	ErrValidation        = errors.New("validation error")
	ErrInvalidIdentifier = errors.New("invalid id")

	// auth errors
	ErrAuthenticationFailed = errors.New("invalid email or password")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidToken         = errors.New("invalid token")
	ErrRevoked              = errors.New("token revoked")

	ErrInternal = errors.New("internal error")
)
