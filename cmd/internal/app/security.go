package app

import (
	"fmt"

	"getset/cmd/security/password"
	"getset/cmd/security/token"
)

// ValidateSecurityConfig enforces the credential policy at startup.
//
// Fail-fast is intentional: serving with a missing JWT secret would mean
// every issued token is forgeable, and a malformed PBKDF2 parameter would
// silently weaken new password hashes. Both are startup-class defects.
func ValidateSecurityConfig() error {
	if _, err := token.LoadConfigFromEnv(); err != nil {
		return fmt.Errorf("security policy: %w", err)
	}
	if _, err := password.FromEnv(); err != nil {
		return fmt.Errorf("security policy: %w", err)
	}
	return nil
}
