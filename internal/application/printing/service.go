// Package printing turns persisted invoices into printable documents and
// archives them in object storage.
package printing

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	appinvoicing "github.com/okayo/invoicing/internal/application/invoicing"
	"github.com/okayo/invoicing/internal/domain/shared"
	infra "github.com/okayo/invoicing/internal/infrastructure/printing"
	"go.uber.org/zap"
)

//go:embed templates/*
var templateFS embed.FS

var invoiceTemplate = template.Must(template.ParseFS(templateFS, "templates/invoice.html", "templates/styles.css"))

const pdfContentType = "application/pdf"

// InvoiceReader loads the detail view of an invoice
type InvoiceReader interface {
	GetByID(ctx context.Context, id int64) (*appinvoicing.InvoiceDetailResponse, error)
}

// ObjectStore is the archive backend
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)
}

// PrintService renders invoices to HTML and PDF
type PrintService struct {
	invoices InvoiceReader
	renderer infra.PDFRenderer
	store    ObjectStore
	logger   *zap.Logger
}

// NewPrintService creates a new PrintService. A nil renderer disables PDF
// output and a nil store disables archiving.
func NewPrintService(invoices InvoiceReader, renderer infra.PDFRenderer, store ObjectStore, logger *zap.Logger) *PrintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrintService{
		invoices: invoices,
		renderer: renderer,
		store:    store,
		logger:   logger,
	}
}

// RenderInvoiceHTML returns the invoice as a standalone HTML document
func (s *PrintService) RenderInvoiceHTML(ctx context.Context, id int64) ([]byte, error) {
	detail, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return renderHTML(detail)
}

// RenderInvoicePDF renders the invoice to an A4 PDF
func (s *PrintService) RenderInvoicePDF(ctx context.Context, id int64) (*PDFDocument, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError(shared.CodePrintingDisabled, "PDF rendering is disabled")
	}

	detail, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.renderPDF(ctx, detail)
}

// ArchiveInvoice renders the invoice PDF, stores it under
// invoices/<year>/<reference>.pdf and returns a presigned download URL.
func (s *PrintService) ArchiveInvoice(ctx context.Context, id int64) (*ArchiveResponse, error) {
	if s.store == nil {
		return nil, shared.NewDomainError(shared.CodeStorageDisabled, "Invoice archiving is disabled")
	}
	if s.renderer == nil {
		return nil, shared.NewDomainError(shared.CodePrintingDisabled, "PDF rendering is disabled")
	}

	detail, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := s.renderPDF(ctx, detail)
	if err != nil {
		return nil, err
	}

	key := ArchiveKey(detail.InvoiceDate, detail.Reference)
	if err := s.store.Upload(ctx, key, doc.Data, pdfContentType); err != nil {
		s.logger.Error("Failed to archive invoice",
			zap.Int64("invoice_id", id),
			zap.String("key", key),
			zap.Error(err))
		return nil, shared.NewInternalError("Failed to archive invoice", err)
	}

	url, expiresAt, err := s.store.GenerateDownloadURL(ctx, key, 0)
	if err != nil {
		return nil, shared.NewInternalError("Failed to generate download URL", err)
	}

	s.logger.Info("Invoice archived",
		zap.Int64("invoice_id", id),
		zap.String("reference", detail.Reference),
		zap.String("key", key),
		zap.Int("bytes", len(doc.Data)))

	return &ArchiveResponse{
		InvoiceID:   detail.ID,
		Reference:   detail.Reference,
		Key:         key,
		DownloadURL: url,
		ExpiresAt:   expiresAt,
		Size:        len(doc.Data),
	}, nil
}

func (s *PrintService) renderPDF(ctx context.Context, detail *appinvoicing.InvoiceDetailResponse) (*PDFDocument, error) {
	html, err := renderHTML(detail)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:       string(html),
		Title:      "Facture " + detail.Reference,
		Margins:    infra.DefaultMargins(),
		FooterHTML: footerHTML(detail),
	})
	if err != nil {
		s.logger.Error("Failed to render invoice PDF",
			zap.Int64("invoice_id", detail.ID),
			zap.Error(err))
		return nil, shared.NewInternalError("Failed to render invoice PDF", err)
	}

	s.logger.Debug("Invoice PDF rendered",
		zap.Int64("invoice_id", detail.ID),
		zap.Int("pages", result.PageCount),
		zap.Duration("duration", result.RenderDuration))

	return &PDFDocument{
		Filename:  "facture-" + safeName(detail.Reference) + ".pdf",
		Data:      result.PDFData,
		PageCount: result.PageCount,
	}, nil
}

func renderHTML(detail *appinvoicing.InvoiceDetailResponse) ([]byte, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.ExecuteTemplate(&buf, "invoice.html", detail); err != nil {
		return nil, shared.NewInternalError("Failed to render invoice", err)
	}
	return buf.Bytes(), nil
}

func footerHTML(detail *appinvoicing.InvoiceDetailResponse) string {
	parts := []string{template.HTMLEscapeString(detail.Issuer.Name)}
	if detail.Issuer.Siret != "" {
		parts = append(parts, "SIRET "+template.HTMLEscapeString(detail.Issuer.Siret))
	}
	if detail.Issuer.VATNumber != "" {
		parts = append(parts, "TVA "+template.HTMLEscapeString(detail.Issuer.VATNumber))
	}
	return fmt.Sprintf(`<div style="font-size:8px;width:100%%;text-align:center;color:#777">%s · page <span class="pageNumber"></span>/<span class="totalPages"></span></div>`,
		strings.Join(parts, " · "))
}

// ArchiveKey is the object key of an invoice PDF. invoiceDate is YYYY-MM-DD.
func ArchiveKey(invoiceDate, reference string) string {
	year := invoiceDate
	if len(year) >= 4 {
		year = year[:4]
	}
	return fmt.Sprintf("invoices/%s/%s.pdf", year, safeName(reference))
}

// safeName keeps a reference usable as a file or key segment
func safeName(reference string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(reference))
}
