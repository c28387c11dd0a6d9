package address

import (
	"context"
	"time"
)

// Address is a stored delivery address.
type Address struct {
	ID        string
	AccountID string

	RecipientName string
	PhoneNumber   string
	Label         string
	AddressLine   string
	Landmark      string
	City          string
	State         string
	PostalCode    string
	Country       string
	IsDefault     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Record is a normalized address payload for inserts and updates; the
// service owns validation and defaulting before it reaches the store.
type Record struct {
	RecipientName string
	PhoneNumber   string
	Label         string
	AddressLine   string
	Landmark      string
	City          string
	State         string
	PostalCode    string
	Country       string
	IsDefault     bool
}

// Store abstracts address persistence. All lookups are keyed by
// (accountID, addressID) so ownership is enforced at the data layer.
type Store interface {
	Create(ctx context.Context, accountID string, rec Record, now time.Time) (Address, error)
	Update(ctx context.Context, accountID, addressID string, rec Record, now time.Time) (Address, error)
	Delete(ctx context.Context, accountID, addressID string) error
	GetByID(ctx context.Context, accountID, addressID string) (Address, error)
	ListByAccount(ctx context.Context, accountID string) ([]Address, error)
}
