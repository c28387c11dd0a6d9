package catalog

import (
	"context"
	"fmt"
	"time"

	"getset/cmd/identity"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements category persistence over PostgreSQL.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// NewPostgresStore constructs a PostgresStore (schema "getset").
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("catalog: nil pool")
	}
	return &PostgresStore{pool: pool, schema: "getset"}, nil
}

func (s *PostgresStore) table() string {
	return fmt.Sprintf("%q.%q", s.schema, "categories")
}

// Create inserts a new category row.
func (s *PostgresStore) Create(ctx context.Context, name, description string, now time.Time) (Category, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}

	categoryID, err := identity.NewULID(now)
	if err != nil {
		return Category{}, err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+s.table()+` (id, name, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)`,
		categoryID, name, description, now,
	)
	if err != nil {
		return Category{}, err
	}

	return Category{
		ID:          categoryID,
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// List returns all categories, newest first.
func (s *PostgresStore) List(ctx context.Context) ([]Category, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, description, created_at, updated_at
		   FROM `+s.table()+` ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
