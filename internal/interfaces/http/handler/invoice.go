package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	appinvoicing "github.com/okayo/invoicing/internal/application/invoicing"
	"github.com/okayo/invoicing/internal/interfaces/http/dto"
)

// InvoiceService is the invoice use-case surface the handler needs
type InvoiceService interface {
	List(ctx context.Context, q appinvoicing.ListInvoicesQuery) ([]appinvoicing.InvoiceSummaryResponse, error)
	GetByID(ctx context.Context, id int64) (*appinvoicing.InvoiceDetailResponse, error)
	Create(ctx context.Context, cmd appinvoicing.CreateInvoiceCommand) (*appinvoicing.CreateInvoiceResult, error)
}

// InvoiceHandler handles invoice-related API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles GET /api/factures?page=&limit=&client_id=
func (h *InvoiceHandler) List(c *gin.Context) {
	var req ListInvoicesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	invoices, err := h.invoiceService.List(c.Request.Context(), req.toQuery())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

// GetByID handles GET /api/factures/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// Create handles POST /api/factures
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindError(c, err)
		return
	}

	cmd := req.toCommand()
	if !cmd.Malformed.Empty() {
		h.HandleError(c, cmd.Validate())
		return
	}

	result, err := h.invoiceService.Create(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.InvoiceCreatedResponse{
		Message:   "Facture créée avec succès",
		InvoiceID: result.ID,
		Reference: result.Reference,
	})
}
