package catalog

import (
	"time"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
)

// CreateProductCommand carries a new product and its opening price
type CreateProductCommand = catalog.ProductInput

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          int64     `json:"id_produit"`
	Name        string    `json:"nom_produit"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"date_creation"`
}

// ToProductResponse converts a domain Product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
	}
	if p.Description != "" {
		desc := p.Description
		resp.Description = &desc
	}
	return resp
}

// CatalogEntryResponse is one line of the current catalog
type CatalogEntryResponse struct {
	ID               int64   `json:"id_catalogue"`
	ProductID        int64   `json:"id_produit"`
	ProductName      string  `json:"nom_produit"`
	Description      *string `json:"description"`
	UnitPriceExclTax string  `json:"prix_unitaire_ht"`
	TaxRate          string  `json:"taux_tva"`
	ValidFrom        string  `json:"date_debut"`
	ValidTo          *string `json:"date_fin"`
}

// PriceHistoryResponse is one past or current price of a product
type PriceHistoryResponse struct {
	UnitPriceExclTax string  `json:"prix_unitaire_ht"`
	TaxRate          string  `json:"taux_tva"`
	ValidFrom        string  `json:"date_debut"`
	ValidTo          *string `json:"date_fin"`
}

// ToCatalogEntryResponse converts a priced entry to a response DTO
func ToCatalogEntryResponse(e catalog.PricedEntry) CatalogEntryResponse {
	resp := CatalogEntryResponse{
		ID:               e.EntryID,
		ProductID:        e.ProductID,
		ProductName:      e.ProductName,
		UnitPriceExclTax: valueobject.FormatAmount(e.UnitPriceExclTax),
		TaxRate:          valueobject.FormatAmount(e.TaxRate),
		ValidFrom:        valueobject.FormatDate(e.Validity.From),
		ValidTo:          formatOptionalDate(e.Validity.To),
	}
	if e.Description != "" {
		desc := e.Description
		resp.Description = &desc
	}
	return resp
}

// ToPriceHistoryResponse converts a priced entry to a history line
func ToPriceHistoryResponse(e catalog.PricedEntry) PriceHistoryResponse {
	return PriceHistoryResponse{
		UnitPriceExclTax: valueobject.FormatAmount(e.UnitPriceExclTax),
		TaxRate:          valueobject.FormatAmount(e.TaxRate),
		ValidFrom:        valueobject.FormatDate(e.Validity.From),
		ValidTo:          formatOptionalDate(e.Validity.To),
	}
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := valueobject.FormatDate(*t)
	return &s
}
