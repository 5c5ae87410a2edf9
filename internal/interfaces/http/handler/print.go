package handler

import (
	"context"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	appprinting "github.com/okayo/invoicing/internal/application/printing"
)

// PrintService renders and archives invoice documents
type PrintService interface {
	RenderInvoiceHTML(ctx context.Context, id int64) ([]byte, error)
	RenderInvoicePDF(ctx context.Context, id int64) (*appprinting.PDFDocument, error)
	ArchiveInvoice(ctx context.Context, id int64) (*appprinting.ArchiveResponse, error)
}

// PrintHandler serves printable invoices
type PrintHandler struct {
	BaseHandler
	printService PrintService
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(printService PrintService) *PrintHandler {
	return &PrintHandler{printService: printService}
}

// HTML handles GET /api/factures/:id/html
func (h *PrintHandler) HTML(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	page, err := h.printService.RenderInvoiceHTML(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// PDF handles GET /api/factures/:id/pdf. ?download=1 asks the browser to
// save the file instead of displaying it.
func (h *PrintHandler) PDF(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	doc, err := h.printService.RenderInvoicePDF(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	disposition := "inline"
	if c.Query("download") == "1" {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": doc.Filename}))
	c.Data(http.StatusOK, "application/pdf", doc.Data)
}

// Archive handles POST /api/factures/:id/archive
func (h *PrintHandler) Archive(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	archived, err := h.printService.ArchiveInvoice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, archived)
}
