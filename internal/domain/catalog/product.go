package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Its price lives in catalog entries.
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
}

// ProductInput carries the fields of a product to create together with its
// opening price.
type ProductInput struct {
	Name             string
	Description      string
	UnitPriceExclTax decimal.Decimal
	TaxRate          decimal.Decimal
}

// NewProduct validates input and returns an unsaved product.
func NewProduct(in ProductInput) (*Product, error) {
	p := &Product{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
	}

	var errs shared.ValidationErrors
	switch {
	case p.Name == "":
		errs.Add("nom_produit", "is required")
	case utf8.RuneCountInString(p.Name) > 100:
		errs.Add("nom_produit", "must not exceed 100 characters")
	}
	if in.UnitPriceExclTax.IsNegative() {
		errs.Add("prix_unitaire_ht", "must be greater than or equal to 0")
	}
	if err := valueobject.ValidateTaxRate(in.TaxRate); err != nil {
		errs.Add("taux_tva", "must be between 0 and 100")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	p.CreatedAt = time.Now()
	return p, nil
}
