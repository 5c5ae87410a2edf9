package handler

import (
	appcatalog "github.com/okayo/invoicing/internal/application/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the body of POST /api/produits. Amounts accept
// JSON numbers or strings.
type CreateProductRequest struct {
	Name             string           `json:"nom_produit" binding:"required"`
	Description      string           `json:"description"`
	UnitPriceExclTax *decimal.Decimal `json:"prix_unitaire_ht" binding:"required"`
	TaxRate          *decimal.Decimal `json:"taux_tva" binding:"required"`
}

func (r CreateProductRequest) toCommand() appcatalog.CreateProductCommand {
	return appcatalog.CreateProductCommand{
		Name:             r.Name,
		Description:      r.Description,
		UnitPriceExclTax: *r.UnitPriceExclTax,
		TaxRate:          *r.TaxRate,
	}
}
