package address

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers both a missing address and an address owned by a
	// different account; the two are indistinguishable on purpose.
	ErrNotFound = errors.New("address not found")
)

// ValidationError carries every field violation found, in check order.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "address validation failed: " + strings.Join(e.Violations, "; ")
}

// IsValidation reports whether err is a ValidationError, returning it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
