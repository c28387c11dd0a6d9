package auth

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidCredentials is deliberately the same for an unknown email
	// and a wrong password, so responses cannot be used to enumerate
	// accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registration hits an existing account.
	ErrEmailTaken = errors.New("an account with this email already exists")

	// ErrSessionRevoked is returned when a presented refresh token no longer
	// matches the server-stored value (rotated away or revoked by logout).
	ErrSessionRevoked = errors.New("refresh token not found or revoked")

	// ErrWrongPassword is returned when the current password fails to verify
	// during a password change.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrSamePassword rejects a no-op password change.
	ErrSamePassword = errors.New("new password must be different from the current password")
)

// ValidationError carries every field violation found, in check order.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// IsValidation reports whether err is a ValidationError, returning it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
