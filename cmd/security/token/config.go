package token

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// Env var names for the signing secrets. Kept stable because
	// deployments reference them directly.
	accessSecretEnvKey  = "ACCESS_TOKEN_SECRET"  // #nosec G101 -- env var name, not a credential
	refreshSecretEnvKey = "REFRESH_TOKEN_SECRET" // #nosec G101 -- env var name, not a credential
)

// Config defines runtime configuration for token issuance and verification.
type Config struct {
	// Issuer is the value set in the "iss" claim.
	Issuer string

	// AccessTokenTTL is the lifetime of access tokens.
	AccessTokenTTL time.Duration

	// RefreshTokenTTL is the lifetime of refresh tokens.
	RefreshTokenTTL time.Duration

	// AccessSecret and RefreshSecret are the distinct HMAC signing keys.
	AccessSecret  []byte
	RefreshSecret []byte
}

// DefaultConfig returns TTL defaults; secrets must always come from env.
func DefaultConfig() Config {
	return Config{
		Issuer:          "getset",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
}

// LoadConfigFromEnv loads token configuration from environment variables.
//
// Required:
//   - ACCESS_TOKEN_SECRET
//   - REFRESH_TOKEN_SECRET
//
// Optional (durations must be valid Go duration strings):
//   - GETSET_TOKEN_ISSUER
//   - ACCESS_TOKEN_EXPIRY
//   - REFRESH_TOKEN_EXPIRY
//
// A missing secret is a startup-class defect: the caller must refuse to
// serve rather than operate with unsigned-equivalent tokens.
func LoadConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := strings.TrimSpace(os.Getenv("GETSET_TOKEN_ISSUER")); v != "" {
		cfg.Issuer = v
	}

	if v := strings.TrimSpace(os.Getenv("ACCESS_TOKEN_EXPIRY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: ACCESS_TOKEN_EXPIRY", ErrConfig)
		}
		cfg.AccessTokenTTL = d
	}

	if v := strings.TrimSpace(os.Getenv("REFRESH_TOKEN_EXPIRY")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("%w: REFRESH_TOKEN_EXPIRY", ErrConfig)
		}
		cfg.RefreshTokenTTL = d
	}

	access := strings.TrimSpace(os.Getenv(accessSecretEnvKey))
	if access == "" {
		return Config{}, fmt.Errorf("%w: %s is not set", ErrConfig, accessSecretEnvKey)
	}
	refresh := strings.TrimSpace(os.Getenv(refreshSecretEnvKey))
	if refresh == "" {
		return Config{}, fmt.Errorf("%w: %s is not set", ErrConfig, refreshSecretEnvKey)
	}

	cfg.AccessSecret = []byte(access)
	cfg.RefreshSecret = []byte(refresh)

	if cfg.RefreshTokenTTL < cfg.AccessTokenTTL {
		return Config{}, fmt.Errorf("%w: refresh TTL shorter than access TTL", ErrConfig)
	}

	return cfg, nil
}
