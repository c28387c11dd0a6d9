package password

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// PBKDF2Params controls PBKDF2-SHA512 derivation cost.
// SaltLength and KeyLength are in bytes.
type PBKDF2Params struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// Policy controls password validation.
type Policy struct {
	MinLength int
	MaxLength int
}

// Config is the single configuration surface for this package.
type Config struct {
	Params PBKDF2Params
	Policy Policy
}

// DefaultConfig returns the canonical derivation parameters.
//
// These match the credentials already on disk: changing them only affects
// newly hashed passwords because the salt and parameters travel with Config.
func DefaultConfig() Config {
	return Config{
		Params: PBKDF2Params{
			Iterations: 100_000,
			SaltLength: 32, // 256-bit salt
			KeyLength:  64,
		},
		Policy: Policy{
			MinLength: 8,
			MaxLength: 256,
		},
	}
}

// FromEnv loads config from environment variables.
//
// Env surface:
// - GETSET_PASSWORD_MIN_LEN
// - GETSET_PASSWORD_MAX_LEN
// - GETSET_PBKDF2_ITERATIONS
// - GETSET_PBKDF2_SALT_LEN
// - GETSET_PBKDF2_KEY_LEN
func FromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v, ok := os.LookupEnv("GETSET_PASSWORD_MIN_LEN"); ok {
		n, err := atoiRange(v, 1, 1024)
		if err != nil {
			return Config{}, fmt.Errorf("GETSET_PASSWORD_MIN_LEN: %w", err)
		}
		cfg.Policy.MinLength = n
	}

	if v, ok := os.LookupEnv("GETSET_PASSWORD_MAX_LEN"); ok {
		n, err := atoiRange(v, 1, 4096)
		if err != nil {
			return Config{}, fmt.Errorf("GETSET_PASSWORD_MAX_LEN: %w", err)
		}
		cfg.Policy.MaxLength = n
	}

	if v, ok := os.LookupEnv("GETSET_PBKDF2_ITERATIONS"); ok {
		n, err := atoiRange(v, 10_000, 10_000_000)
		if err != nil {
			return Config{}, fmt.Errorf("GETSET_PBKDF2_ITERATIONS: %w", err)
		}
		cfg.Params.Iterations = n
	}

	if v, ok := os.LookupEnv("GETSET_PBKDF2_SALT_LEN"); ok {
		n, err := atoiRange(v, 16, 64)
		if err != nil {
			return Config{}, fmt.Errorf("GETSET_PBKDF2_SALT_LEN: %w", err)
		}
		cfg.Params.SaltLength = n
	}

	if v, ok := os.LookupEnv("GETSET_PBKDF2_KEY_LEN"); ok {
		n, err := atoiRange(v, 32, 128)
		if err != nil {
			return Config{}, fmt.Errorf("GETSET_PBKDF2_KEY_LEN: %w", err)
		}
		cfg.Params.KeyLength = n
	}

	// Final sanity.
	if cfg.Policy.MinLength > cfg.Policy.MaxLength {
		return Config{}, fmt.Errorf(
			"password policy invalid: min_len(%d) > max_len(%d)",
			cfg.Policy.MinLength,
			cfg.Policy.MaxLength,
		)
	}

	return cfg, nil
}

func atoiRange(s string, minVal, maxVal int) (int, error) {
	s = strings.TrimSpace(s)
	i64, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}

	i := int(i64)
	if i < minVal || i > maxVal {
		return 0, fmt.Errorf("out of range [%d..%d]", minVal, maxVal)
	}
	return i, nil
}
