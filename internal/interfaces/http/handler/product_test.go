package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/okayo/invoicing/internal/application/catalog"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupProductRouter(products *MockProductService, catalog *MockCatalogService) *gin.Engine {
	h := NewProductHandler(products, catalog)
	router := newTestRouter()
	router.GET("/api/produits", h.List)
	router.GET("/api/produits/:id", h.GetByID)
	router.POST("/api/produits", h.Create)
	router.GET("/api/catalogue", h.Catalog)
	router.GET("/api/catalogue/produit/:id/historique", h.PriceHistory)
	return router
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("numbers and strings are accepted", func(t *testing.T) {
		products := new(MockProductService)
		products.On("Create", mock.Anything, mock.MatchedBy(func(cmd appcatalog.CreateProductCommand) bool {
			return cmd.Name == "Audit sécurité" &&
				cmd.UnitPriceExclTax.Equal(decimal.RequireFromString("1200.50")) &&
				cmd.TaxRate.Equal(decimal.NewFromInt(20))
		})).Return(&appcatalog.ProductResponse{ID: 7, Name: "Audit sécurité"}, nil)

		w := doRequest(setupProductRouter(products, nil), http.MethodPost, "/api/produits",
			`{"nom_produit":"Audit sécurité","prix_unitaire_ht":"1200.50","taux_tva":20}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var resp dto.ProductCreatedResponse
		decodeJSON(t, w, &resp)
		assert.Equal(t, "Produit créé avec succès", resp.Message)
		assert.Equal(t, int64(7), resp.ProductID)
		products.AssertExpectations(t)
	})

	t.Run("price and rate are required", func(t *testing.T) {
		products := new(MockProductService)

		w := doRequest(setupProductRouter(products, nil), http.MethodPost, "/api/produits", `{"nom_produit":"Audit"}`)

		require.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeError(t, w)
		assert.Contains(t, string(body.Details), `"field":"prix_unitaire_ht"`)
		assert.Contains(t, string(body.Details), `"field":"taux_tva"`)
		products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("domain rules come back as validation errors", func(t *testing.T) {
		products := new(MockProductService)
		products.On("Create", mock.Anything, mock.Anything).Return(nil,
			shared.NewValidationError([]shared.FieldError{{Field: "taux_tva", Message: "must be between 0 and 100"}}))

		w := doRequest(setupProductRouter(products, nil), http.MethodPost, "/api/produits",
			`{"nom_produit":"Audit","prix_unitaire_ht":10,"taux_tva":150}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "must be between 0 and 100")
	})

	t.Run("unknown tax rate", func(t *testing.T) {
		products := new(MockProductService)
		products.On("Create", mock.Anything, mock.Anything).Return(nil,
			shared.NewDomainError(shared.CodeTaxRateNotFound, "No tax rate 7.00 is in force"))

		w := doRequest(setupProductRouter(products, nil), http.MethodPost, "/api/produits",
			`{"nom_produit":"Audit","prix_unitaire_ht":10,"taux_tva":7}`)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, shared.CodeTaxRateNotFound, decodeError(t, w).Code)
	})
}

func TestProductHandler_GetByID(t *testing.T) {
	products := new(MockProductService)
	products.On("GetByID", mock.Anything, int64(3)).Return(&appcatalog.ProductResponse{ID: 3, Name: "Formation"}, nil)
	products.On("GetByID", mock.Anything, int64(4)).Return(nil, shared.NewNotFoundError("Product", 4))
	router := setupProductRouter(products, nil)

	w := doRequest(router, http.MethodGet, "/api/produits/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"nom_produit":"Formation"`)

	w = doRequest(router, http.MethodGet, "/api/produits/4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/api/produits/0", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductHandler_List(t *testing.T) {
	products := new(MockProductService)
	products.On("List", mock.Anything).Return([]appcatalog.ProductResponse{{ID: 1, Name: "Audit"}}, nil)

	w := doRequest(setupProductRouter(products, nil), http.MethodGet, "/api/produits", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var list []appcatalog.ProductResponse
	decodeJSON(t, w, &list)
	assert.Len(t, list, 1)
}

func TestProductHandler_Catalog(t *testing.T) {
	catalog := new(MockCatalogService)
	catalog.On("Current", mock.Anything).Return([]appcatalog.CatalogEntryResponse{
		{ID: 1, ProductID: 1, ProductName: "Audit", UnitPriceExclTax: "1000.00", TaxRate: "20.00", ValidFrom: "2024-01-01"},
	}, nil)

	w := doRequest(setupProductRouter(nil, catalog), http.MethodGet, "/api/catalogue", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"prix_unitaire_ht":"1000.00"`)
	assert.Contains(t, w.Body.String(), `"date_fin":null`)
}

func TestProductHandler_PriceHistory(t *testing.T) {
	end := "2024-06-30"
	catalog := new(MockCatalogService)
	catalog.On("History", mock.Anything, int64(1)).Return([]appcatalog.PriceHistoryResponse{
		{UnitPriceExclTax: "1100.00", TaxRate: "20.00", ValidFrom: "2024-07-01"},
		{UnitPriceExclTax: "1000.00", TaxRate: "20.00", ValidFrom: "2024-01-01", ValidTo: &end},
	}, nil)
	catalog.On("History", mock.Anything, int64(2)).Return([]appcatalog.PriceHistoryResponse{}, nil)
	router := setupProductRouter(nil, catalog)

	w := doRequest(router, http.MethodGet, "/api/catalogue/produit/1/historique", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []appcatalog.PriceHistoryResponse
	decodeJSON(t, w, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "2024-07-01", history[0].ValidFrom)

	w = doRequest(router, http.MethodGet, "/api/catalogue/produit/2/historique", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = doRequest(router, http.MethodGet, "/api/catalogue/produit/x/historique", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
