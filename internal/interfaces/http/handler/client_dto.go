package handler

import (
	apppartner "github.com/okayo/invoicing/internal/application/partner"
)

// CreateClientRequest is the body of POST /api/clients
type CreateClientRequest struct {
	Code       string `json:"code_client" binding:"required"`
	Name       string `json:"nom" binding:"required"`
	Address    string `json:"adresse" binding:"required"`
	City       string `json:"ville" binding:"required"`
	PostalCode string `json:"code_postal" binding:"required"`
	Phone      string `json:"telephone"`
	Email      string `json:"email" binding:"omitempty,email"`
	LegalForm  string `json:"forme_juridique"`
}

func (r CreateClientRequest) toCommand() apppartner.CreateClientCommand {
	return apppartner.CreateClientCommand{
		Code:       r.Code,
		Name:       r.Name,
		Address:    r.Address,
		City:       r.City,
		PostalCode: r.PostalCode,
		Phone:      r.Phone,
		Email:      r.Email,
		LegalForm:  r.LegalForm,
	}
}
