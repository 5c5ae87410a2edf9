package invoicing

import (
	"context"
	"time"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/partner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockClientRepository is a mock implementation of ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindAll(ctx context.Context) ([]partner.Client, error) {
	args := m.Called(ctx)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id int64) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, client *partner.Client) error {
	return m.Called(ctx, client).Error(0)
}

// MockDefaultsRepository is a mock implementation of DefaultsRepository
type MockDefaultsRepository struct {
	mock.Mock
}

func (m *MockDefaultsRepository) FindIssuers(ctx context.Context, limit int) ([]invoicing.Issuer, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]invoicing.Issuer), args.Error(1)
}

func (m *MockDefaultsRepository) FindPaymentTerms(ctx context.Context, limit int) ([]invoicing.PaymentTerm, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]invoicing.PaymentTerm), args.Error(1)
}

func (m *MockDefaultsRepository) FindOpenBankAccounts(ctx context.Context, limit int) ([]invoicing.BankAccount, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]invoicing.BankAccount), args.Error(1)
}

// MockCatalogRepository is a mock implementation of CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindCurrent(ctx context.Context, today time.Time) ([]catalog.PricedEntry, error) {
	args := m.Called(ctx, today)
	return args.Get(0).([]catalog.PricedEntry), args.Error(1)
}

func (m *MockCatalogRepository) FindHistory(ctx context.Context, productID int64) ([]catalog.PricedEntry, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]catalog.PricedEntry), args.Error(1)
}

func (m *MockCatalogRepository) FindCovering(ctx context.Context, productID int64, date time.Time) ([]catalog.PricedEntry, error) {
	args := m.Called(ctx, productID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.PricedEntry), args.Error(1)
}

func (m *MockCatalogRepository) Create(ctx context.Context, entry *catalog.CatalogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *invoicing.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) CreateLine(ctx context.Context, line *invoicing.InvoiceLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *MockInvoiceRepository) FindLines(ctx context.Context, invoiceID int64) ([]invoicing.InvoiceLine, error) {
	args := m.Called(ctx, invoiceID)
	switch v := args.Get(0).(type) {
	case nil:
		return nil, args.Error(1)
	case func(context.Context, int64) []invoicing.InvoiceLine:
		return v(ctx, invoiceID), args.Error(1)
	default:
		return v.([]invoicing.InvoiceLine), args.Error(1)
	}
}

func (m *MockInvoiceRepository) UpdateTotals(ctx context.Context, invoiceID int64, totalExclTax, totalInclTax decimal.Decimal) error {
	return m.Called(ctx, invoiceID, totalExclTax, totalInclTax).Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id int64) (*invoicing.InvoiceDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*invoicing.InvoiceDetail), args.Error(1)
}

func (m *MockInvoiceRepository) FindPage(ctx context.Context, filter invoicing.InvoiceFilter) ([]invoicing.InvoiceSummary, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]invoicing.InvoiceSummary), args.Error(1)
}

func (m *MockInvoiceRepository) FindInPeriod(ctx context.Context, from, to time.Time) ([]invoicing.InvoiceSummary, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]invoicing.InvoiceSummary), args.Error(1)
}
