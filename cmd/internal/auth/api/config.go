package authapi

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config controls the auth API transport behavior.
type Config struct {
	// Environment toggles cookie hardening and token echo. Anything other
	// than "development" is treated as production.
	Environment string

	MaxBodyBytes int64
	CookieDomain string

	// Cookie lifetimes. These should track the token TTLs so a cookie does
	// not outlive the credential inside it.
	AccessCookieTTL  time.Duration
	RefreshCookieTTL time.Duration
}

// DefaultConfig returns production-leaning defaults.
func DefaultConfig() Config {
	return Config{
		Environment:      "development",
		MaxBodyBytes:     1 << 20, // 1 MiB
		AccessCookieTTL:  time.Hour,
		RefreshCookieTTL: 7 * 24 * time.Hour,
	}
}

// LoadConfigFromEnv loads the auth API config from environment variables.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Environment = envString("GETSET_ENV", cfg.Environment)
	cfg.MaxBodyBytes = envInt64("GETSET_AUTH_MAX_BODY_BYTES", cfg.MaxBodyBytes)
	cfg.CookieDomain = envString("GETSET_COOKIE_DOMAIN", cfg.CookieDomain)
	cfg.AccessCookieTTL = envDuration("ACCESS_TOKEN_EXPIRY", cfg.AccessCookieTTL)
	cfg.RefreshCookieTTL = envDuration("REFRESH_TOKEN_EXPIRY", cfg.RefreshCookieTTL)

	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 1 << 20
	}
	return cfg
}

// Development reports whether cookie hardening is relaxed and tokens are
// echoed in JSON responses.
func (c Config) Development() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "development")
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt64(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
