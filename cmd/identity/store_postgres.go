package identity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements account persistence over PostgreSQL.
//
// Design notes:
// - The pgx pool is owned by the caller; this store must NOT close it.
// - Schema/table identifiers are safely quoted to avoid SQL injection via identifiers.
// - Email uniqueness is enforced by a unique index on email_norm; SQLSTATE
//   23505 is mapped to a ConflictError so the HTTP layer can answer 409.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore) error

var pgIdentRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WithSchema sets the Postgres schema used by the identity store (default "getset").
// The schema name is validated to be a legal PostgreSQL identifier.
func WithSchema(schema string) PostgresOption {
	return func(s *PostgresStore) error {
		schema = strings.TrimSpace(schema)
		if schema == "" {
			return fmt.Errorf("identity: empty schema")
		}
		if !pgIdentRe.MatchString(schema) {
			return fmt.Errorf("identity: invalid schema identifier")
		}
		s.schema = schema
		return nil
	}
}

// NewPostgresStore constructs a PostgresStore with secure defaults.
func NewPostgresStore(pool *pgxpool.Pool, opts ...PostgresOption) (*PostgresStore, error) {
	st := &PostgresStore{
		pool:   pool,
		schema: "getset",
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(st); err != nil {
			return nil, err
		}
	}
	if st.pool == nil {
		return nil, fmt.Errorf("identity: nil pool")
	}
	return st, nil
}

const accountColumns = `id, name, email, email_norm, phone_number,
       password_hash, password_salt, refresh_token_hash, created_at, updated_at`

// CreateAccount inserts a new account row.
func (s *PostgresStore) CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error) {
	const op = "identity.CreateAccount"

	if s == nil || s.pool == nil {
		return Account{}, OpError{Op: op, Kind: ErrInvalidInput, Msg: "nil store"}
	}
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	phone := strings.TrimSpace(in.PhoneNumber)

	if name == "" || email == "" {
		return Account{}, pgInvalid(op, "name and email are required")
	}
	if in.PasswordHash == "" || in.PasswordSalt == "" {
		return Account{}, pgInvalid(op, "derived credential is required")
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	emailNorm := NormalizeEmail(email)

	accountID, err := NewULID(now)
	if err != nil {
		return Account{}, err
	}

	accounts := pgIdent(s.schema, "accounts")

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+accounts+` (
		     id, name, email, email_norm, phone_number,
		     password_hash, password_salt, created_at, updated_at
		   ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		accountID,
		name,
		email,
		emailNorm,
		phone,
		in.PasswordHash,
		in.PasswordSalt,
		now,
	)
	if err != nil {
		if field, ok := pgClassifyUniqueViolation(err); ok {
			return Account{}, ConflictError{Op: op, Field: field}
		}
		return Account{}, err
	}

	return Account{
		ID:           accountID,
		Name:         name,
		Email:        email,
		EmailNorm:    emailNorm,
		PhoneNumber:  phone,
		PasswordHash: in.PasswordHash,
		PasswordSalt: in.PasswordSalt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetAccountByEmail loads an account by normalized email.
func (s *PostgresStore) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	const op = "identity.GetAccountByEmail"

	emailNorm := NormalizeEmail(email)
	if emailNorm == "" {
		return Account{}, pgInvalid(op, "email is required")
	}

	accounts := pgIdent(s.schema, "accounts")
	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM `+accounts+` WHERE email_norm = $1`,
		emailNorm,
	)
	return scanAccount(op, row)
}

// GetAccountByID loads an account by ID.
func (s *PostgresStore) GetAccountByID(ctx context.Context, id string) (Account, error) {
	const op = "identity.GetAccountByID"

	id = strings.TrimSpace(id)
	if id == "" {
		return Account{}, pgInvalid(op, "id is required")
	}

	accounts := pgIdent(s.schema, "accounts")
	row := s.pool.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM `+accounts+` WHERE id = $1`,
		id,
	)
	return scanAccount(op, row)
}

// SetRefreshToken overwrites the stored refresh token hash (login rotation).
func (s *PostgresStore) SetRefreshToken(ctx context.Context, accountID, tokenHash string, now time.Time) error {
	const op = "identity.SetRefreshToken"

	if strings.TrimSpace(accountID) == "" || strings.TrimSpace(tokenHash) == "" {
		return pgInvalid(op, "account id and token hash are required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	accounts := pgIdent(s.schema, "accounts")
	tag, err := s.pool.Exec(ctx,
		`UPDATE `+accounts+` SET refresh_token_hash = $2, updated_at = $3 WHERE id = $1`,
		accountID, tokenHash, now,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError{Op: op, Resource: "account"}
	}
	return nil
}

// ClearRefreshToken clears the stored refresh token hash (logout revocation).
// Idempotent: clearing an already-clear token succeeds.
func (s *PostgresStore) ClearRefreshToken(ctx context.Context, accountID string, now time.Time) error {
	const op = "identity.ClearRefreshToken"

	if strings.TrimSpace(accountID) == "" {
		return pgInvalid(op, "account id is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	accounts := pgIdent(s.schema, "accounts")
	tag, err := s.pool.Exec(ctx,
		`UPDATE `+accounts+` SET refresh_token_hash = NULL, updated_at = $2 WHERE id = $1`,
		accountID, now,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError{Op: op, Resource: "account"}
	}
	return nil
}

// UpdatePassword replaces the stored credential pair.
func (s *PostgresStore) UpdatePassword(ctx context.Context, accountID, passwordHash, passwordSalt string, now time.Time) error {
	const op = "identity.UpdatePassword"

	if strings.TrimSpace(accountID) == "" || passwordHash == "" || passwordSalt == "" {
		return pgInvalid(op, "account id and credential are required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	accounts := pgIdent(s.schema, "accounts")
	tag, err := s.pool.Exec(ctx,
		`UPDATE `+accounts+`
		    SET password_hash = $2, password_salt = $3, updated_at = $4
		  WHERE id = $1`,
		accountID, passwordHash, passwordSalt, now,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return NotFoundError{Op: op, Resource: "account"}
	}
	return nil
}

// ---- helpers ----

func scanAccount(op string, row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Email,
		&a.EmailNorm,
		&a.PhoneNumber,
		&a.PasswordHash,
		&a.PasswordSalt,
		&a.RefreshTokenHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, NotFoundError{Op: op, Resource: "account"}
		}
		return Account{}, err
	}
	return a, nil
}

func pgIdent(schema, table string) string {
	return fmt.Sprintf("%q.%q", schema, table)
}

func pgInvalid(op, msg string) error {
	return OpError{Op: op, Kind: ErrInvalidInput, Msg: msg}
}

func pgClassifyUniqueViolation(err error) (field string, ok bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return "", false
	}
	if pgErr.Code != "23505" { // unique_violation
		return "", false
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return "email", true
	default:
		return "unknown", true
	}
}
