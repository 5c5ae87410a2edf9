package models

import (
	"time"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name        string  `gorm:"type:varchar(100);not null;index"`
	Description *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: deref(m.Description),
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{
		Name:        p.Name,
		Description: nullable(p.Description),
	}
	m.FromDomainBaseEntity(p.BaseEntity)
	return m
}

// TaxRateModel is the persistence model for VAT rates.
type TaxRateModel struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Rate      decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	ValidFrom time.Time       `gorm:"type:date;not null"`
	ValidTo   *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (TaxRateModel) TableName() string {
	return "tax_rates"
}

// ToDomain converts the persistence model to a domain TaxRate.
func (m *TaxRateModel) ToDomain() *catalog.TaxRate {
	return &catalog.TaxRate{
		ID:       m.ID,
		Rate:     m.Rate,
		Validity: validity(m.ValidFrom, m.ValidTo),
	}
}

// CatalogEntryModel is the persistence model for catalog entries.
type CatalogEntryModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	ProductID        int64           `gorm:"not null;index:idx_catalog_product_from,priority:1"`
	UnitPriceExclTax decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TaxRateID        int64           `gorm:"not null"`
	ValidFrom        time.Time       `gorm:"type:date;not null;index:idx_catalog_product_from,priority:2"`
	ValidTo          *time.Time      `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (CatalogEntryModel) TableName() string {
	return "catalog_entries"
}

// ToDomain converts the persistence model to a domain CatalogEntry.
func (m *CatalogEntryModel) ToDomain() *catalog.CatalogEntry {
	return &catalog.CatalogEntry{
		BaseEntity:       shared.BaseEntity{ID: m.ID},
		ProductID:        m.ProductID,
		UnitPriceExclTax: m.UnitPriceExclTax,
		TaxRateID:        m.TaxRateID,
		Validity:         validity(m.ValidFrom, m.ValidTo),
	}
}

// CatalogEntryModelFromDomain creates a new persistence model from a domain CatalogEntry.
func CatalogEntryModelFromDomain(e *catalog.CatalogEntry) *CatalogEntryModel {
	return &CatalogEntryModel{
		ID:               e.ID,
		ProductID:        e.ProductID,
		UnitPriceExclTax: e.UnitPriceExclTax,
		TaxRateID:        e.TaxRateID,
		ValidFrom:        valueobject.DateOf(e.Validity.From),
		ValidTo:          dateOrNil(e.Validity.To),
	}
}

// PricedEntryRow is the scan target of catalog queries joining products
// and tax rates.
type PricedEntryRow struct {
	EntryID          int64
	ProductID        int64
	ProductName      string
	Description      *string
	UnitPriceExclTax decimal.Decimal
	TaxRate          decimal.Decimal
	ValidFrom        time.Time
	ValidTo          *time.Time
}

// ToDomain converts the row to a domain PricedEntry.
func (r *PricedEntryRow) ToDomain() catalog.PricedEntry {
	return catalog.PricedEntry{
		EntryID:          r.EntryID,
		ProductID:        r.ProductID,
		ProductName:      r.ProductName,
		Description:      deref(r.Description),
		UnitPriceExclTax: r.UnitPriceExclTax,
		TaxRate:          r.TaxRate,
		Validity:         validity(r.ValidFrom, r.ValidTo),
	}
}

func validity(from time.Time, to *time.Time) catalog.Validity {
	return catalog.Validity{From: valueobject.DateOf(from), To: dateOrNil(to)}
}

func dateOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := valueobject.DateOf(*t)
	return &d
}
