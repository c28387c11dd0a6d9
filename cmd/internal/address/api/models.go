package addressapi

import (
	"time"

	"getset/cmd/internal/address"
)

type addressResponse struct {
	ID            string    `json:"id"`
	RecipientName string    `json:"recipientName"`
	PhoneNumber   string    `json:"phoneNumber"`
	Label         string    `json:"label"`
	AddressLine   string    `json:"addressLine"`
	Landmark      string    `json:"landmark,omitempty"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	PostalCode    string    `json:"postalCode"`
	Country       string    `json:"country"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toAddressResponse(a address.Address) addressResponse {
	return addressResponse{
		ID:            a.ID,
		RecipientName: a.RecipientName,
		PhoneNumber:   a.PhoneNumber,
		Label:         a.Label,
		AddressLine:   a.AddressLine,
		Landmark:      a.Landmark,
		City:          a.City,
		State:         a.State,
		PostalCode:    a.PostalCode,
		Country:       a.Country,
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
