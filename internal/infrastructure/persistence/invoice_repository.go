package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/okayo/invoicing/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const invoiceSummaryColumns = "i.id, i.reference, i.invoice_date, i.due_date, i.client_id, " +
	"c.name AS client_name, c.code AS client_code, i.total_excl_tax, i.total_incl_tax"

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create inserts the invoice header. The unique index on reference is the
// only guard against concurrent duplicates.
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *invoicing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if err = translateError(err); errors.Is(err, shared.ErrConflict) {
			return shared.NewConflictError(fmt.Sprintf("Invoice reference %s already exists", invoice.Reference))
		}
		return err
	}
	invoice.ID = model.ID
	invoice.CreatedAt = model.CreatedAt
	return nil
}

// CreateLine inserts one invoice line
func (r *GormInvoiceRepository) CreateLine(ctx context.Context, line *invoicing.InvoiceLine) error {
	model := models.InvoiceLineModelFromDomain(line)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return translateError(err)
	}
	line.ID = model.ID
	return nil
}

// FindLines returns the lines of an invoice ordered by line number
func (r *GormInvoiceRepository) FindLines(ctx context.Context, invoiceID int64) ([]invoicing.InvoiceLine, error) {
	var rows []models.InvoiceLineModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("line_number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	lines := make([]invoicing.InvoiceLine, len(rows))
	for i := range rows {
		lines[i] = rows[i].ToDomain()
	}
	return lines, nil
}

// UpdateTotals stores the header totals
func (r *GormInvoiceRepository) UpdateTotals(ctx context.Context, invoiceID int64, totalExclTax, totalInclTax decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"total_excl_tax": totalExclTax,
			"total_incl_tax": totalInclTax,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID loads the invoice with its client, defaults and lines
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id int64) (*invoicing.InvoiceDetail, error) {
	db := r.db.WithContext(ctx)

	var header models.InvoiceModel
	if err := db.First(&header, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}

	var (
		client  models.ClientModel
		issuer  models.IssuerModel
		term    models.PaymentTermModel
		account models.BankAccountModel
	)
	if err := db.First(&client, "id = ?", header.ClientID).Error; err != nil {
		return nil, fmt.Errorf("load client of invoice %d: %w", id, err)
	}
	if err := db.First(&issuer, "id = ?", header.IssuerID).Error; err != nil {
		return nil, fmt.Errorf("load issuer of invoice %d: %w", id, err)
	}
	if err := db.First(&term, "id = ?", header.PaymentTermID).Error; err != nil {
		return nil, fmt.Errorf("load payment term of invoice %d: %w", id, err)
	}
	if err := db.First(&account, "id = ?", header.BankAccountID).Error; err != nil {
		return nil, fmt.Errorf("load bank account of invoice %d: %w", id, err)
	}

	lines, err := r.FindLines(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &invoicing.InvoiceDetail{
		Invoice:     *header.ToDomain(),
		Client:      client.ClientBlock(),
		Issuer:      issuer.ToDomain(),
		PaymentTerm: term.ToDomain(),
		BankAccount: account.ToDomain(),
	}
	detail.Lines = lines
	return detail, nil
}

func (r *GormInvoiceRepository) summaries(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("invoices AS i").
		Select(invoiceSummaryColumns).
		Joins("JOIN clients c ON c.id = i.client_id")
}

func scanSummaries(query *gorm.DB) ([]invoicing.InvoiceSummary, error) {
	var rows []models.InvoiceSummaryRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]invoicing.InvoiceSummary, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// FindPage returns one page of invoices, newest invoice date first
func (r *GormInvoiceRepository) FindPage(ctx context.Context, filter invoicing.InvoiceFilter) ([]invoicing.InvoiceSummary, error) {
	page := filter.Pagination
	page.Normalize()

	query := r.summaries(ctx)
	if filter.ClientID != nil {
		query = query.Where("i.client_id = ?", *filter.ClientID)
	}

	return scanSummaries(query.
		Order("i.invoice_date DESC, i.id DESC").
		Offset(page.Offset()).
		Limit(page.Limit()))
}

// FindInPeriod returns every invoice dated in [from, to), oldest first
func (r *GormInvoiceRepository) FindInPeriod(ctx context.Context, from, to time.Time) ([]invoicing.InvoiceSummary, error) {
	return scanSummaries(r.summaries(ctx).
		Where("i.invoice_date >= ? AND i.invoice_date < ?", valueobject.DateOf(from), valueobject.DateOf(to)).
		Order("i.invoice_date ASC, i.id ASC"))
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
