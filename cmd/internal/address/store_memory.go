package address

import (
	"context"
	"sort"
	"sync"
	"time"

	"getset/cmd/identity"
)

// MemoryStore is an in-memory Store used by tests and DB-less runs. Safe for
// concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	addresses map[string]Address            // by address ID
	byAccount map[string]map[string]struct{} // account ID -> address IDs
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		addresses: make(map[string]Address),
		byAccount: make(map[string]map[string]struct{}),
	}
}

// Create stores a new address for the account.
func (s *MemoryStore) Create(ctx context.Context, accountID string, rec Record, now time.Time) (Address, error) {
	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	addressID, err := identity.NewULID(now)
	if err != nil {
		return Address{}, err
	}

	addr := Address{
		ID:            addressID,
		AccountID:     accountID,
		RecipientName: rec.RecipientName,
		PhoneNumber:   rec.PhoneNumber,
		Label:         rec.Label,
		AddressLine:   rec.AddressLine,
		Landmark:      rec.Landmark,
		City:          rec.City,
		State:         rec.State,
		PostalCode:    rec.PostalCode,
		Country:       rec.Country,
		IsDefault:     rec.IsDefault,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.addresses[addressID] = addr
	if s.byAccount[accountID] == nil {
		s.byAccount[accountID] = make(map[string]struct{})
	}
	s.byAccount[accountID][addressID] = struct{}{}
	return addr, nil
}

// Update replaces the stored address, scoped to the owning account.
func (s *MemoryStore) Update(ctx context.Context, accountID, addressID string, rec Record, now time.Time) (Address, error) {
	if err := ctx.Err(); err != nil {
		return Address{}, err
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	addr, ok := s.addresses[addressID]
	if !ok || addr.AccountID != accountID {
		return Address{}, ErrNotFound
	}

	addr.RecipientName = rec.RecipientName
	addr.PhoneNumber = rec.PhoneNumber
	addr.Label = rec.Label
	addr.AddressLine = rec.AddressLine
	addr.Landmark = rec.Landmark
	addr.City = rec.City
	addr.State = rec.State
	addr.PostalCode = rec.PostalCode
	addr.Country = rec.Country
	addr.IsDefault = rec.IsDefault
	addr.UpdatedAt = now

	s.addresses[addressID] = addr
	return addr, nil
}

// Delete removes the address, scoped to the owning account.
func (s *MemoryStore) Delete(ctx context.Context, accountID, addressID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	addr, ok := s.addresses[addressID]
	if !ok || addr.AccountID != accountID {
		return ErrNotFound
	}
	delete(s.addresses, addressID)
	delete(s.byAccount[accountID], addressID)
	return nil
}

// GetByID loads one address, scoped to the owning account.
func (s *MemoryStore) GetByID(ctx context.Context, accountID, addressID string) (Address, error) {
	if err := ctx.Err(); err != nil {
		return Address{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	addr, ok := s.addresses[addressID]
	if !ok || addr.AccountID != accountID {
		return Address{}, ErrNotFound
	}
	return addr, nil
}

// ListByAccount returns the account's addresses, newest first.
func (s *MemoryStore) ListByAccount(ctx context.Context, accountID string) ([]Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byAccount[accountID]
	out := make([]Address, 0, len(ids))
	for id := range ids {
		out = append(out, s.addresses[id])
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
