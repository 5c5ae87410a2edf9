package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/okayo/invoicing/internal/application/catalog"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
)

// ProductService is the product use-case surface the handler needs
type ProductService interface {
	List(ctx context.Context) ([]appcatalog.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*appcatalog.ProductResponse, error)
	Create(ctx context.Context, cmd appcatalog.CreateProductCommand) (*appcatalog.ProductResponse, error)
}

// CatalogService exposes the priced catalog
type CatalogService interface {
	Current(ctx context.Context) ([]appcatalog.CatalogEntryResponse, error)
	History(ctx context.Context, productID int64) ([]appcatalog.PriceHistoryResponse, error)
}

// ProductHandler handles product and catalog API endpoints
type ProductHandler struct {
	BaseHandler
	productService ProductService
	catalogService CatalogService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService ProductService, catalogService CatalogService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		catalogService: catalogService,
	}
}

// List handles GET /api/produits
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetByID handles GET /api/produits/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create handles POST /api/produits. The product and its first catalog
// entry, valid from today, are stored together.
func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req.toCommand())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ProductCreatedResponse{
		Message:   "Produit créé avec succès",
		ProductID: product.ID,
	})
}

// Catalog handles GET /api/catalogue: the entries in force today
func (h *ProductHandler) Catalog(c *gin.Context) {
	entries, err := h.catalogService.Current(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// PriceHistory handles GET /api/catalogue/produit/:id/historique
func (h *ProductHandler) PriceHistory(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	history, err := h.catalogService.History(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
