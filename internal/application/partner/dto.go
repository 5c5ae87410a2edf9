package partner

import (
	"time"

	"github.com/okayo/invoicing/internal/domain/partner"
)

// CreateClientCommand carries the fields of a client to create
type CreateClientCommand = partner.ClientInput

// ClientResponse represents a client in API responses. Optional fields
// are null when unset.
type ClientResponse struct {
	ID         int64     `json:"id_client"`
	Code       string    `json:"code_client"`
	Name       string    `json:"nom"`
	Address    string    `json:"adresse"`
	City       string    `json:"ville"`
	PostalCode string    `json:"code_postal"`
	Phone      *string   `json:"telephone"`
	Email      *string   `json:"email"`
	LegalForm  *string   `json:"forme_juridique"`
	CreatedAt  time.Time `json:"date_creation"`
}

// ToClientResponse converts a domain Client to a response DTO
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:         c.ID,
		Code:       c.Code,
		Name:       c.Name,
		Address:    c.Address,
		City:       c.City,
		PostalCode: c.PostalCode,
		Phone:      optional(c.Phone),
		Email:      optional(c.Email),
		LegalForm:  optional(c.LegalForm),
		CreatedAt:  c.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
