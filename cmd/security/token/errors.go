package token

import "errors"

// Public, stable errors for callers.
var (
	// ErrTokenExpired is returned when a token is well-formed and correctly
	// signed but past its expiry. Callers surface a different user-facing
	// message for this case.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid is returned for any structural or signature failure.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrConfig is returned for invalid configuration (e.g. missing secret).
	ErrConfig = errors.New("invalid token config")
)
