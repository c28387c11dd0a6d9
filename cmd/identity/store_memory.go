package identity

import (
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used when no database is configured
// (dev mode) and by tests. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account // by ID
	byEmail  map[string]string  // email_norm -> ID
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]Account),
		byEmail:  make(map[string]string),
	}
}

// CreateAccount inserts a new account, enforcing email uniqueness under the
// store lock (the same guarantee the Postgres unique index provides).
func (s *MemoryStore) CreateAccount(ctx context.Context, in CreateAccountInput) (Account, error) {
	const op = "identity.CreateAccount"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	name := trimmed(in.Name)
	email := trimmed(in.Email)
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

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[emailNorm]; exists {
		return Account{}, ConflictError{Op: op, Field: "email"}
	}

	a := Account{
		ID:           accountID,
		Name:         name,
		Email:        email,
		EmailNorm:    emailNorm,
		PhoneNumber:  trimmed(in.PhoneNumber),
		PasswordHash: in.PasswordHash,
		PasswordSalt: in.PasswordSalt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.accounts[accountID] = a
	s.byEmail[emailNorm] = accountID

	return a, nil
}

// GetAccountByEmail loads an account by normalized email.
func (s *MemoryStore) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	const op = "identity.GetAccountByEmail"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	emailNorm := NormalizeEmail(email)
	if emailNorm == "" {
		return Account{}, pgInvalid(op, "email is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[emailNorm]
	if !ok {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	return s.accounts[id], nil
}

// GetAccountByID loads an account by ID.
func (s *MemoryStore) GetAccountByID(ctx context.Context, id string) (Account, error) {
	const op = "identity.GetAccountByID"

	if err := ctx.Err(); err != nil {
		return Account{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[trimmed(id)]
	if !ok {
		return Account{}, NotFoundError{Op: op, Resource: "account"}
	}
	return a, nil
}

// SetRefreshToken overwrites the stored refresh token hash.
func (s *MemoryStore) SetRefreshToken(ctx context.Context, accountID, tokenHash string, now time.Time) error {
	const op = "identity.SetRefreshToken"

	if err := ctx.Err(); err != nil {
		return err
	}
	if trimmed(accountID) == "" || trimmed(tokenHash) == "" {
		return pgInvalid(op, "account id and token hash are required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return NotFoundError{Op: op, Resource: "account"}
	}
	a.RefreshTokenHash = &tokenHash
	a.UpdatedAt = now
	s.accounts[accountID] = a
	return nil
}

// ClearRefreshToken clears the stored refresh token hash. Idempotent.
func (s *MemoryStore) ClearRefreshToken(ctx context.Context, accountID string, now time.Time) error {
	const op = "identity.ClearRefreshToken"

	if err := ctx.Err(); err != nil {
		return err
	}
	if trimmed(accountID) == "" {
		return pgInvalid(op, "account id is required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return NotFoundError{Op: op, Resource: "account"}
	}
	a.RefreshTokenHash = nil
	a.UpdatedAt = now
	s.accounts[accountID] = a
	return nil
}

// UpdatePassword replaces the stored credential pair.
func (s *MemoryStore) UpdatePassword(ctx context.Context, accountID, passwordHash, passwordSalt string, now time.Time) error {
	const op = "identity.UpdatePassword"

	if err := ctx.Err(); err != nil {
		return err
	}
	if trimmed(accountID) == "" || passwordHash == "" || passwordSalt == "" {
		return pgInvalid(op, "account id and credential are required")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[accountID]
	if !ok {
		return NotFoundError{Op: op, Resource: "account"}
	}
	a.PasswordHash = passwordHash
	a.PasswordSalt = passwordSalt
	a.UpdatedAt = now
	s.accounts[accountID] = a
	return nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }
