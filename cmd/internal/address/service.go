package address

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"getset/cmd/internal/validate"
)

const (
	defaultLabel   = "Home"
	defaultCountry = "Nepal"
)

// Input is an address create/update request before validation.
type Input struct {
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

// Service validates and persists addresses.
type Service struct {
	log   *slog.Logger
	store Store
}

// NewService constructs an address Service.
func NewService(log *slog.Logger, store Store) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{log: log, store: store}
}

// Create validates the input and stores a new address for the account.
func (s *Service) Create(ctx context.Context, accountID string, in Input, now time.Time) (Address, error) {
	if strings.TrimSpace(accountID) == "" {
		return Address{}, ErrInvalidInput
	}
	rec, err := normalizeInput(in)
	if err != nil {
		return Address{}, err
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	addr, err := s.store.Create(ctx, accountID, rec, now)
	if err != nil {
		return Address{}, err
	}
	s.log.Info("address.create.success", "account_id", accountID, "address_id", addr.ID)
	return addr, nil
}

// Update validates the input and replaces the account's address. The full
// record is written; there is no partial patch semantics.
func (s *Service) Update(ctx context.Context, accountID, addressID string, in Input, now time.Time) (Address, error) {
	if strings.TrimSpace(accountID) == "" || strings.TrimSpace(addressID) == "" {
		return Address{}, ErrInvalidInput
	}
	rec, err := normalizeInput(in)
	if err != nil {
		return Address{}, err
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	addr, err := s.store.Update(ctx, accountID, addressID, rec, now)
	if err != nil {
		return Address{}, err
	}
	s.log.Info("address.update.success", "account_id", accountID, "address_id", addr.ID)
	return addr, nil
}

// Delete removes the account's address.
func (s *Service) Delete(ctx context.Context, accountID, addressID string) error {
	if strings.TrimSpace(accountID) == "" || strings.TrimSpace(addressID) == "" {
		return ErrInvalidInput
	}
	if err := s.store.Delete(ctx, accountID, addressID); err != nil {
		return err
	}
	s.log.Info("address.delete.success", "account_id", accountID, "address_id", addressID)
	return nil
}

// Get loads one of the account's addresses.
func (s *Service) Get(ctx context.Context, accountID, addressID string) (Address, error) {
	if strings.TrimSpace(accountID) == "" || strings.TrimSpace(addressID) == "" {
		return Address{}, ErrInvalidInput
	}
	return s.store.GetByID(ctx, accountID, addressID)
}

// List returns the account's addresses, newest first.
func (s *Service) List(ctx context.Context, accountID string) ([]Address, error) {
	if strings.TrimSpace(accountID) == "" {
		return nil, ErrInvalidInput
	}
	return s.store.ListByAccount(ctx, accountID)
}

// normalizeInput runs the field checks (collecting every violation) and
// applies the label/country defaults.
func normalizeInput(in Input) (Record, error) {
	res := validate.Run([]validate.Field{
		{Value: in.RecipientName, Name: "recipientName", Valid: validate.Name,
			Message: "Recipient name can only contain letters, spaces, hyphens and apostrophes"},
		{Value: in.PhoneNumber, Name: "phoneNumber", Valid: validate.Phone,
			Message: "Phone number must be 10 digits starting with 98 or 97 (e.g., 9812345678)"},
		{Value: in.Label, Name: "label", Valid: validate.Label,
			Message: "Label must be either 'Home', 'Office', or 'Other'"},
		{Value: in.AddressLine, Name: "addressLine", Valid: validate.AddressLine,
			Message: "Address line must be 5-100 characters without special symbols"},
		{Value: in.Landmark, Name: "landmark", Valid: validate.Landmark,
			Message: "Landmark contains invalid characters"},
		{Value: in.City, Name: "city", Valid: validate.Place,
			Message: "City name can only contain letters, spaces, dots and hyphens"},
		{Value: in.State, Name: "state", Valid: validate.Place,
			Message: "State can only contain letters, spaces, dots and hyphens"},
		{Value: in.PostalCode, Name: "postalCode", Valid: validate.PostalCode,
			Message: "Please enter a valid postal code (e.g., 44200)"},
		{Value: in.Country, Name: "country", Valid: validate.OptionalPlace,
			Message: "Country can only contain letters, spaces, dots and hyphens"},
	})
	if !res.OK {
		return Record{}, &ValidationError{Violations: res.Errors}
	}

	label := strings.TrimSpace(in.Label)
	if label == "" {
		label = defaultLabel
	}
	country := strings.TrimSpace(in.Country)
	if country == "" {
		country = defaultCountry
	}

	return Record{
		RecipientName: strings.TrimSpace(in.RecipientName),
		PhoneNumber:   strings.TrimSpace(in.PhoneNumber),
		Label:         label,
		AddressLine:   strings.TrimSpace(in.AddressLine),
		Landmark:      strings.TrimSpace(in.Landmark),
		City:          strings.TrimSpace(in.City),
		State:         strings.TrimSpace(in.State),
		PostalCode:    strings.TrimSpace(in.PostalCode),
		Country:       country,
		IsDefault:     in.IsDefault,
	}, nil
}
