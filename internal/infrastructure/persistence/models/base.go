package models

import (
	"time"

	"github.com/okayo/invoicing/internal/domain/shared"
)

// BaseModel provides the identity columns shared by entity tables.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
}

// All returns every model, in dependency order, for AutoMigrate in tests.
// Production schemas come from the SQL migrations.
func All() []any {
	return []any{
		&IssuerModel{},
		&PaymentTermModel{},
		&BankAccountModel{},
		&TaxRateModel{},
		&ClientModel{},
		&ProductModel{},
		&CatalogEntryModel{},
		&InvoiceModel{},
		&InvoiceLineModel{},
	}
}
