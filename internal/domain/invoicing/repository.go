package invoicing

import (
	"context"
	"time"

	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceSummary is the list projection of an invoice.
type InvoiceSummary struct {
	ID           int64
	Reference    string
	InvoiceDate  time.Time
	DueDate      time.Time
	ClientID     int64
	ClientName   string
	ClientCode   string
	TotalExclTax decimal.Decimal
	TotalInclTax decimal.Decimal
}

// InvoiceClient is the client block of an invoice detail.
type InvoiceClient struct {
	ID         int64
	Code       string
	Name       string
	Address    string
	City       string
	PostalCode string
}

// InvoiceDetail is the full read model of one invoice.
type InvoiceDetail struct {
	Invoice
	Client      InvoiceClient
	Issuer      Issuer
	PaymentTerm PaymentTerm
	BankAccount BankAccount
}

// InvoiceFilter selects a page of invoices.
type InvoiceFilter struct {
	ClientID   *int64
	Pagination shared.Pagination
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// Create inserts the header and sets its ID; a duplicate reference
	// yields shared.ErrConflict
	Create(ctx context.Context, invoice *Invoice) error

	// CreateLine inserts one line of an existing invoice and sets its ID
	CreateLine(ctx context.Context, line *InvoiceLine) error

	// FindLines returns the persisted lines of an invoice ordered by number
	FindLines(ctx context.Context, invoiceID int64) ([]InvoiceLine, error)

	// UpdateTotals stores the header totals
	UpdateTotals(ctx context.Context, invoiceID int64, totalExclTax, totalInclTax decimal.Decimal) error

	// FindByID returns the detail view, shared.ErrNotFound when absent
	FindByID(ctx context.Context, id int64) (*InvoiceDetail, error)

	// FindPage returns invoices ordered by invoice date descending
	FindPage(ctx context.Context, filter InvoiceFilter) ([]InvoiceSummary, error)

	// FindInPeriod returns every invoice dated within the period, oldest first
	FindInPeriod(ctx context.Context, from, to time.Time) ([]InvoiceSummary, error)
}

// DefaultsRepository reads the reference entities used as defaults. Each
// finder returns at most limit rows ordered by id.
type DefaultsRepository interface {
	FindIssuers(ctx context.Context, limit int) ([]Issuer, error)
	FindPaymentTerms(ctx context.Context, limit int) ([]PaymentTerm, error)
	FindOpenBankAccounts(ctx context.Context, limit int) ([]BankAccount, error)
}
