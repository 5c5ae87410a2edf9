package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindAll returns every product ordered by name
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID finds a product by its ID, shared.ErrNotFound when absent
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Create inserts a product and sets its ID
	Create(ctx context.Context, product *Product) error
}

// TaxRateRepository defines read access to VAT rates
type TaxRateRepository interface {
	// FindActiveByRate returns the rate with this value still valid on
	// today, shared.ErrNotFound when absent
	FindActiveByRate(ctx context.Context, rate decimal.Decimal, today time.Time) (*TaxRate, error)
}

// CatalogRepository defines the interface for catalog entries
type CatalogRepository interface {
	// FindCurrent returns entries whose end is null or today-or-later,
	// ordered by product name
	FindCurrent(ctx context.Context, today time.Time) ([]PricedEntry, error)

	// FindHistory returns every entry of a product, most recent start first
	FindHistory(ctx context.Context, productID int64) ([]PricedEntry, error)

	// FindCovering returns the entries of a product whose interval covers
	// date, most recent start first
	FindCovering(ctx context.Context, productID int64, date time.Time) ([]PricedEntry, error)

	// Create appends an entry
	Create(ctx context.Context, entry *CatalogEntry) error
}
