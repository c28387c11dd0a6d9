package address

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"getset/cmd/identity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements address persistence over PostgreSQL. The pool is
// owned by the caller; this store must NOT close it.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// NewPostgresStore constructs a PostgresStore (schema "getset").
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("address: nil pool")
	}
	return &PostgresStore{pool: pool, schema: "getset"}, nil
}

const addressColumns = `id, account_id, recipient_name, phone_number, label,
       address_line, landmark, city, state, postal_code, country, is_default,
       created_at, updated_at`

func (s *PostgresStore) table() string {
	return fmt.Sprintf("%q.%q", s.schema, "addresses")
}

// Create inserts a new address row.
func (s *PostgresStore) Create(ctx context.Context, accountID string, rec Record, now time.Time) (Address, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	addressID, err := identity.NewULID(now)
	if err != nil {
		return Address{}, err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+s.table()+` (
		     id, account_id, recipient_name, phone_number, label,
		     address_line, landmark, city, state, postal_code, country,
		     is_default, created_at, updated_at
		   ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
		addressID, accountID,
		rec.RecipientName, rec.PhoneNumber, rec.Label,
		rec.AddressLine, rec.Landmark, rec.City, rec.State, rec.PostalCode, rec.Country,
		rec.IsDefault, now,
	)
	if err != nil {
		return Address{}, err
	}

	return Address{
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
	}, nil
}

// Update replaces the address row, scoped to the owning account.
func (s *PostgresStore) Update(ctx context.Context, accountID, addressID string, rec Record, now time.Time) (Address, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	row := s.pool.QueryRow(ctx,
		`UPDATE `+s.table()+`
		    SET recipient_name = $3, phone_number = $4, label = $5,
		        address_line = $6, landmark = $7, city = $8, state = $9,
		        postal_code = $10, country = $11, is_default = $12,
		        updated_at = $13
		  WHERE id = $1 AND account_id = $2
		  RETURNING `+addressColumns,
		addressID, accountID,
		rec.RecipientName, rec.PhoneNumber, rec.Label,
		rec.AddressLine, rec.Landmark, rec.City, rec.State, rec.PostalCode, rec.Country,
		rec.IsDefault, now,
	)
	return scanAddress(row)
}

// Delete removes the address row, scoped to the owning account.
func (s *PostgresStore) Delete(ctx context.Context, accountID, addressID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM `+s.table()+` WHERE id = $1 AND account_id = $2`,
		addressID, accountID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID loads one address, scoped to the owning account.
func (s *PostgresStore) GetByID(ctx context.Context, accountID, addressID string) (Address, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+addressColumns+` FROM `+s.table()+` WHERE id = $1 AND account_id = $2`,
		addressID, accountID,
	)
	return scanAddress(row)
}

// ListByAccount returns the account's addresses, newest first.
func (s *PostgresStore) ListByAccount(ctx context.Context, accountID string) ([]Address, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+addressColumns+` FROM `+s.table()+`
		  WHERE account_id = $1 ORDER BY created_at DESC, id DESC`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Address
	for rows.Next() {
		a, err := scanAddressRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAddress(row pgx.Row) (Address, error) {
	a, err := scanAddressRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Address{}, ErrNotFound
		}
		return Address{}, err
	}
	return a, nil
}

func scanAddressRow(row pgx.Row) (Address, error) {
	var a Address
	var landmark *string
	err := row.Scan(
		&a.ID,
		&a.AccountID,
		&a.RecipientName,
		&a.PhoneNumber,
		&a.Label,
		&a.AddressLine,
		&landmark,
		&a.City,
		&a.State,
		&a.PostalCode,
		&a.Country,
		&a.IsDefault,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return Address{}, err
	}
	if landmark != nil {
		a.Landmark = strings.TrimSpace(*landmark)
	}
	return a, nil
}
