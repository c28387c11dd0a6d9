package app

import "time"

// Config contains all runtime configuration loaded from environment variables.
type Config struct {
	HTTPAddr    string
	LogLevel    string
	LogFormat   string
	Environment string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int

	DatabaseURL    string
	DBMaxConns     int32
	DBMinConns     int32
	MigrateOnStart bool

	// If true, /readyz returns 503 unless DB is configured and reachable.
	ReadinessRequireDB bool

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool
	CORSMaxAgeSeconds    int

	MetricsEnabled bool
}

// LoadConfig loads Config from environment variables with defaults.
func LoadConfig() Config {
	return Config{
		HTTPAddr:    EnvString("GETSET_HTTP_ADDR", "0.0.0.0:8080"),
		LogLevel:    EnvString("GETSET_LOG_LEVEL", "info"),
		LogFormat:   EnvString("GETSET_LOG_FORMAT", "json"),
		Environment: EnvString("GETSET_ENV", "development"),

		ReadHeaderTimeout: EnvDuration("GETSET_HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
		ReadTimeout:       EnvDuration("GETSET_HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      EnvDuration("GETSET_HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:       EnvDuration("GETSET_HTTP_IDLE_TIMEOUT", 60*time.Second),

		MaxHeaderBytes: EnvInt("GETSET_HTTP_MAX_HEADER_BYTES", 1<<20),

		DatabaseURL:    EnvString("GETSET_DATABASE_URL", ""),
		DBMaxConns:     EnvInt32("GETSET_DB_MAX_CONNS", 10),
		DBMinConns:     EnvInt32("GETSET_DB_MIN_CONNS", 0),
		MigrateOnStart: EnvBool("GETSET_DB_MIGRATE_ON_START", true),

		ReadinessRequireDB: EnvBool("GETSET_READINESS_REQUIRE_DB", false),

		CORSAllowedOrigins:   EnvStringList("GETSET_CORS_ALLOWED_ORIGINS", nil),
		CORSAllowCredentials: EnvBool("GETSET_CORS_ALLOW_CREDENTIALS", true),
		CORSMaxAgeSeconds:    EnvInt("GETSET_CORS_MAX_AGE_SECONDS", 600),

		MetricsEnabled: EnvBool("GETSET_METRICS_ENABLED", true),
	}
}
