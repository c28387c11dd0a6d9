package identity

import (
	"context"
	"time"
)

// Account is GetSet's canonical customer record.
//
// IMPORTANT: PasswordHash, PasswordSalt and RefreshTokenHash are server-side
// only. No read path exposed to clients may include them.
type Account struct {
	ID          string
	Name        string
	Email       string
	EmailNorm   string
	PhoneNumber string

	PasswordHash string
	PasswordSalt string

	// RefreshTokenHash is the SHA-256 hex digest of the single live refresh
	// token, or nil when no session is active. One scalar per account:
	// logging in again overwrites it, logging out clears it.
	RefreshTokenHash *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateAccountInput describes a registration request. The password has
// already been derived into a credential by the caller.
type CreateAccountInput struct {
	Name         string
	Email        string
	PhoneNumber  string
	PasswordHash string
	PasswordSalt string
	Now          time.Time
}

// Store is the account persistence boundary.
//
// Implementations must enforce email uniqueness with a storage-level
// constraint: the orchestrator's existence check alone cannot close the
// race between check and insert.
type Store interface {
	// CreateAccount inserts a new account. Returns a ConflictError with
	// Field "email" when the normalized email is already registered.
	CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error)

	// GetAccountByEmail loads an account by email (normalized internally).
	GetAccountByEmail(ctx context.Context, email string) (Account, error)

	// GetAccountByID loads an account by ID.
	GetAccountByID(ctx context.Context, id string) (Account, error)

	// SetRefreshToken overwrites the stored refresh token hash (rotation).
	// At most one live refresh token per account.
	SetRefreshToken(ctx context.Context, accountID, tokenHash string, now time.Time) error

	// ClearRefreshToken clears the stored refresh token hash (revocation).
	// Clearing an already-clear token is not an error.
	ClearRefreshToken(ctx context.Context, accountID string, now time.Time) error

	// UpdatePassword replaces the stored credential pair.
	UpdatePassword(ctx context.Context, accountID, passwordHash, passwordSalt string, now time.Time) error
}
