package catalog

import (
	"context"
	"sort"
	"sync"
	"time"

	"getset/cmd/identity"
)

// MemoryStore is an in-memory Store for tests and DB-less runs.
type MemoryStore struct {
	mu         sync.RWMutex
	categories map[string]Category
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{categories: make(map[string]Category)}
}

// Create stores a new category.
func (s *MemoryStore) Create(ctx context.Context, name, description string, now time.Time) (Category, error) {
	if err := ctx.Err(); err != nil {
		return Category{}, err
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	categoryID, err := identity.NewULID(now)
	if err != nil {
		return Category{}, err
	}

	cat := Category{
		ID:          categoryID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[categoryID] = cat
	return cat, nil
}

// List returns all categories, newest first.
func (s *MemoryStore) List(ctx context.Context) ([]Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
