package models

import (
	"github.com/okayo/invoicing/internal/domain/partner"
	"github.com/okayo/invoicing/internal/domain/shared"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	BaseModel
	Code       string  `gorm:"type:varchar(20);not null;uniqueIndex:uq_clients_code"`
	Name       string  `gorm:"type:varchar(100);not null"`
	Address    string  `gorm:"type:varchar(255);not null"`
	City       string  `gorm:"type:varchar(100);not null"`
	PostalCode string  `gorm:"type:varchar(10);not null"`
	Phone      *string `gorm:"type:varchar(20)"`
	Email      *string `gorm:"type:varchar(100)"`
	LegalForm  *string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		BaseEntity: shared.BaseEntity{ID: m.ID, CreatedAt: m.CreatedAt},
		Code:       m.Code,
		Name:       m.Name,
		Address:    m.Address,
		City:       m.City,
		PostalCode: m.PostalCode,
		Phone:      deref(m.Phone),
		Email:      deref(m.Email),
		LegalForm:  deref(m.LegalForm),
	}
}

// FromDomain populates the persistence model from a domain Client entity.
// Empty optional fields are stored as NULL.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Code = c.Code
	m.Name = c.Name
	m.Address = c.Address
	m.City = c.City
	m.PostalCode = c.PostalCode
	m.Phone = nullable(c.Phone)
	m.Email = nullable(c.Email)
	m.LegalForm = nullable(c.LegalForm)
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
