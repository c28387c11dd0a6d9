// Package catalog manages product categories.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"getset/cmd/internal/validate"
)

var ErrInvalidInput = errors.New("invalid input")

// Category is a stored product category.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store abstracts category persistence.
type Store interface {
	Create(ctx context.Context, name, description string, now time.Time) (Category, error)
	List(ctx context.Context) ([]Category, error)
}

// ValidationError carries every field violation found, in check order.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "category validation failed: " + strings.Join(e.Violations, "; ")
}

// IsValidation reports whether err is a ValidationError, returning it.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// Service validates and persists categories.
type Service struct {
	log   *slog.Logger
	store Store
}

// NewService constructs a catalog Service.
func NewService(log *slog.Logger, store Store) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log, store: store}
}

// Create validates name and description and stores a new category.
func (s *Service) Create(ctx context.Context, name, description string, now time.Time) (Category, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return Category{}, ErrInvalidInput
	}

	res := validate.Run([]validate.Field{
		{Value: name, Name: "name", Valid: validate.CategoryName,
			Message: "Category name can only contain letters, spaces, hyphens and apostrophes"},
		{Value: description, Name: "description", Valid: validate.Description,
			Message: "Description must be at least 2 characters long"},
	})
	if !res.OK {
		return Category{}, &ValidationError{Violations: res.Errors}
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}
	cat, err := s.store.Create(ctx, strings.TrimSpace(name), strings.TrimSpace(description), now)
	if err != nil {
		return Category{}, err
	}
	s.log.Info("catalog.create.success", "category_id", cat.ID)
	return cat, nil
}

// List returns all categories, newest first.
func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.store.List(ctx)
}
