// Package app wires the GetSet server runtime: config, logging, stores,
// and the HTTP surface (auth, addresses, categories).
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"getset/cmd/identity"
	"getset/cmd/internal/address"
	addressapi "getset/cmd/internal/address/api"
	"getset/cmd/internal/auth"
	authapi "getset/cmd/internal/auth/api"
	"getset/cmd/internal/catalog"
	"getset/cmd/internal/db"
	"getset/cmd/security/password"
	"getset/cmd/security/token"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is a small app-level lifecycle abstraction.
// It exists to allow DB-backed resources to be closed gracefully.
type Store interface {
	Close(ctx context.Context) error
}

// nopStore is used for in-memory store mode.
type nopStore struct{}

func (nopStore) Close(_ context.Context) error { return nil }

// App is the GetSet server runtime.
type App struct {
	cfg Config
	log Logger

	store Store

	dbPool    *pgxpool.Pool
	dbEnabled bool

	metrics *Metrics

	auth       *authapi.Handler
	addresses  *addressapi.Handler
	categories *catalog.HTTPHandler
}

// New constructs a fully wired App instance from config and logger.
func New(cfg Config, log Logger) (*App, error) {
	if log == nil {
		log = NewLogger(cfg.LogLevel, cfg.LogFormat)
	}

	if err := ValidateSecurityConfig(); err != nil {
		return nil, err
	}

	st, dbPool, dbEnabled, stores, err := newStore(context.Background(), cfg, log)
	if err != nil {
		return nil, err
	}

	hasher, err := password.FromEnv()
	if err != nil {
		return nil, err
	}
	tokCfg, err := token.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	tokens, err := token.NewManager(tokCfg)
	if err != nil {
		return nil, err
	}

	authCfg := authapi.LoadConfigFromEnv()
	authSvc := auth.NewService(log, stores.accounts, hasher, tokens)
	authHandler := authapi.NewHandler(log, authSvc, authCfg)

	addressSvc := address.NewService(log, stores.addresses)
	addressHandler := addressapi.NewHandler(log, addressSvc, authHandler, authCfg.MaxBodyBytes)

	catalogSvc := catalog.NewService(log, stores.categories)
	catalogHandler := catalog.NewHTTPHandler(log, catalogSvc, authCfg.MaxBodyBytes)

	var metrics *Metrics
	if cfg.MetricsEnabled {
		metrics = NewMetrics()
	}

	return &App{
		cfg:        cfg,
		log:        log,
		store:      st,
		dbPool:     dbPool,
		dbEnabled:  dbEnabled,
		metrics:    metrics,
		auth:       authHandler,
		addresses:  addressHandler,
		categories: catalogHandler,
	}, nil
}

// Run starts the HTTP server and blocks until context cancellation or fatal server error.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	registerHTTP(mux, a.log, a.cfg, a.dbPool, a.dbEnabled, a.metrics, a.auth, a.addresses, a.categories)

	var handler http.Handler = mux
	if a.metrics != nil {
		handler = a.metrics.WithHTTP(handler)
	}
	handler = WithSecurityHeaders(handler)
	handler = WithCORS(handler, a.cfg, a.log)
	handler = WithRequestLogging(handler, a.log)

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: nonZeroDuration(a.cfg.ReadHeaderTimeout, 5*time.Second),
		ReadTimeout:       nonZeroDuration(a.cfg.ReadTimeout, 15*time.Second),
		WriteTimeout:      nonZeroDuration(a.cfg.WriteTimeout, 15*time.Second),
		IdleTimeout:       nonZeroDuration(a.cfg.IdleTimeout, 60*time.Second),
		MaxHeaderBytes:    nonZeroInt(a.cfg.MaxHeaderBytes, 1<<20),
	}

	a.log.Info("server.start", "addr", a.cfg.HTTPAddr, "db_enabled", a.dbEnabled, "env", a.cfg.Environment)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		a.log.Info("server.stop", "reason", "context_done")
	case err := <-errCh:
		a.log.Error("server.fail", "err", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("server.shutdown.fail", "err", err)
		return err
	}

	// Close store resources (pool etc).
	if err := a.store.Close(shutdownCtx); err != nil {
		a.log.Error("store.close.fail", "err", err)
	}

	a.log.Info("server.stopped")
	return nil
}

func nonZeroDuration(v, def time.Duration) time.Duration {
	if v <= 0 {
		return def
	}
	return v
}

func nonZeroInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// domainStores groups the per-module persistence interfaces so newStore can
// hand back either the Postgres or the in-memory family as one unit.
type domainStores struct {
	accounts   identity.Store
	addresses  address.Store
	categories catalog.Store
}

// newStore decides between Postgres-backed persistence and in-memory dev stores.
func newStore(ctx context.Context, cfg Config, log Logger) (Store, *pgxpool.Pool, bool, domainStores, error) {
	if cfg.DatabaseURL == "" {
		log.Info("db.disabled.inmemory_store")
		return nopStore{}, nil, false, domainStores{
			accounts:   identity.NewMemoryStore(),
			addresses:  address.NewMemoryStore(),
			categories: catalog.NewMemoryStore(),
		}, nil
	}

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DatabaseURL, "up"); err != nil {
			return nil, nil, false, domainStores{}, err
		}
		log.Info("db.migrations.applied")
	}

	pool, err := NewDBPool(ctx, cfg)
	if err != nil {
		return nil, nil, false, domainStores{}, err
	}

	log.Info("db.enabled.postgres_store")

	// Ownership model: app owns the pool lifecycle, the per-module stores
	// only borrow it.
	accounts, err := identity.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, false, domainStores{}, err
	}
	addresses, err := address.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, false, domainStores{}, err
	}
	categories, err := catalog.NewPostgresStore(pool)
	if err != nil {
		pool.Close()
		return nil, nil, false, domainStores{}, err
	}

	stores := domainStores{
		accounts:   accounts,
		addresses:  addresses,
		categories: categories,
	}
	return dbStore{pool: pool}, pool, true, stores, nil
}

type dbStore struct {
	pool *pgxpool.Pool
}

func (s dbStore) Close(_ context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
