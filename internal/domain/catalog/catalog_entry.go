package catalog

import (
	"fmt"
	"time"

	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Validity is a closed date interval with an optional end.
type Validity struct {
	From time.Time
	To   *time.Time
}

// OpenFrom returns a validity starting on from with no end.
func OpenFrom(from time.Time) Validity {
	return Validity{From: valueobject.DateOf(from)}
}

// Covers reports whether date lies in [From, To], To being +inf when nil.
func (v Validity) Covers(date time.Time) bool {
	d := valueobject.DateOf(date)
	if d.Before(valueobject.DateOf(v.From)) {
		return false
	}
	return v.To == nil || !d.After(valueobject.DateOf(*v.To))
}

// IsCurrent reports whether the interval has not ended before today.
func (v Validity) IsCurrent(today time.Time) bool {
	return v.To == nil || !valueobject.DateOf(*v.To).Before(valueobject.DateOf(today))
}

// TaxRate is a VAT percentage with its own validity window.
type TaxRate struct {
	ID       int64
	Rate     decimal.Decimal
	Validity Validity
}

// CatalogEntry pairs a product with a price and tax rate over a validity
// window. Entries are append-only.
type CatalogEntry struct {
	shared.BaseEntity
	ProductID        int64
	UnitPriceExclTax decimal.Decimal
	TaxRateID        int64
	Validity         Validity
}

// NewOpeningEntry builds the first, open-ended entry of a freshly created
// product.
func NewOpeningEntry(productID int64, price decimal.Decimal, taxRateID int64, today time.Time) *CatalogEntry {
	return &CatalogEntry{
		ProductID:        productID,
		UnitPriceExclTax: valueobject.RoundAmount(price),
		TaxRateID:        taxRateID,
		Validity:         OpenFrom(today),
	}
}

// PricedEntry is a catalog entry resolved together with the product name
// and tax percentage it refers to.
type PricedEntry struct {
	EntryID          int64
	ProductID        int64
	ProductName      string
	Description      string
	UnitPriceExclTax decimal.Decimal
	TaxRate          decimal.Decimal
	Validity         Validity
}

// OverlapPolicy decides what happens when several entries cover a date.
type OverlapPolicy string

const (
	// OverlapLatest keeps the entry with the most recent start.
	OverlapLatest OverlapPolicy = "latest"
	// OverlapStrict rejects the lookup.
	OverlapStrict OverlapPolicy = "strict"
)

// IsValid reports whether the policy is known.
func (p OverlapPolicy) IsValid() bool {
	return p == OverlapLatest || p == OverlapStrict
}

// NewNotAvailableError reports that no catalog entry covers date.
func NewNotAvailableError(productID int64, date time.Time) *shared.DomainError {
	return shared.NewDomainError(shared.CodeProductNotAvailable,
		fmt.Sprintf("Product %d not available on %s", productID, valueobject.FormatDate(date)))
}

// SelectEffective picks the entry covering date among candidates, which
// must be ordered by start descending. It returns a not-available error
// when none covers the date.
func SelectEffective(productID int64, date time.Time, candidates []PricedEntry, policy OverlapPolicy) (*PricedEntry, error) {
	var matches []PricedEntry
	for _, c := range candidates {
		if c.Validity.Covers(date) {
			matches = append(matches, c)
		}
	}
	switch {
	case len(matches) == 0:
		return nil, NewNotAvailableError(productID, date)
	case len(matches) > 1 && policy == OverlapStrict:
		return nil, shared.NewDomainError(shared.CodeAmbiguousCatalog,
			fmt.Sprintf("Product %d has %d catalog entries on %s", productID, len(matches), valueobject.FormatDate(date)))
	}
	chosen := matches[0]
	return &chosen, nil
}
