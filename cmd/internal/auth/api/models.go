package authapi

import (
	"time"

	"getset/cmd/identity"
)

// userResponse is the public account shape. Credential material and the
// stored refresh token never appear here.
type userResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toUserResponse(a identity.Account) userResponse {
	return userResponse{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
