package persistence

import (
	"context"

	appcatalog "github.com/okayo/invoicing/internal/application/catalog"
	appinvoicing "github.com/okayo/invoicing/internal/application/invoicing"
	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/partner"
	"gorm.io/gorm"
)

// GormInvoicingTransactionScope runs the invoice creation workflow inside one
// database transaction. Any error returned by the callback rolls back the
// header and every line written so far.
type GormInvoicingTransactionScope struct {
	db *gorm.DB
}

// NewGormInvoicingTransactionScope creates a new GormInvoicingTransactionScope.
func NewGormInvoicingTransactionScope(db *gorm.DB) *GormInvoicingTransactionScope {
	return &GormInvoicingTransactionScope{db: db}
}

// Execute runs fn within a transaction, committing when it returns nil.
func (s *GormInvoicingTransactionScope) Execute(ctx context.Context, fn func(repos appinvoicing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInvoicingRepositories{tx: tx})
	})
}

type gormInvoicingRepositories struct {
	tx *gorm.DB
}

func (r *gormInvoicingRepositories) ClientRepo() partner.ClientRepository {
	return NewGormClientRepository(r.tx)
}

func (r *gormInvoicingRepositories) DefaultsRepo() invoicing.DefaultsRepository {
	return NewGormDefaultsRepository(r.tx)
}

func (r *gormInvoicingRepositories) CatalogRepo() catalog.CatalogRepository {
	return NewGormCatalogRepository(r.tx)
}

func (r *gormInvoicingRepositories) InvoiceRepo() invoicing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// GormCatalogTransactionScope groups a product insert with its opening
// catalog entry.
type GormCatalogTransactionScope struct {
	db *gorm.DB
}

// NewGormCatalogTransactionScope creates a new GormCatalogTransactionScope.
func NewGormCatalogTransactionScope(db *gorm.DB) *GormCatalogTransactionScope {
	return &GormCatalogTransactionScope{db: db}
}

// Execute runs fn within a transaction, committing when it returns nil.
func (s *GormCatalogTransactionScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormCatalogRepositories{tx: tx})
	})
}

type gormCatalogRepositories struct {
	tx *gorm.DB
}

func (r *gormCatalogRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

func (r *gormCatalogRepositories) TaxRateRepo() catalog.TaxRateRepository {
	return NewGormTaxRateRepository(r.tx)
}

func (r *gormCatalogRepositories) CatalogRepo() catalog.CatalogRepository {
	return NewGormCatalogRepository(r.tx)
}

var (
	_ appinvoicing.TransactionScope          = (*GormInvoicingTransactionScope)(nil)
	_ appinvoicing.TransactionalRepositories = (*gormInvoicingRepositories)(nil)
	_ appcatalog.TransactionScope            = (*GormCatalogTransactionScope)(nil)
	_ appcatalog.TransactionalRepositories   = (*gormCatalogRepositories)(nil)
)
