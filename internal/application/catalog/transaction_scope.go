package catalog

import (
	"context"

	"github.com/okayo/invoicing/internal/domain/catalog"
)

// TransactionScope provides transactional access to catalog repositories.
// Everything done through the repositories passed to fn commits or rolls
// back together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories exposes the repositories bound to one transaction
type TransactionalRepositories interface {
	ProductRepo() catalog.ProductRepository
	TaxRateRepo() catalog.TaxRateRepository
	CatalogRepo() catalog.CatalogRepository
}

// NoOpTransactionScope runs fn against plain repositories, without a
// transaction. Useful in tests.
type NoOpTransactionScope struct {
	productRepo catalog.ProductRepository
	taxRateRepo catalog.TaxRateRepository
	catalogRepo catalog.CatalogRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	taxRateRepo catalog.TaxRateRepository,
	catalogRepo catalog.CatalogRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo: productRepo,
		taxRateRepo: taxRateRepo,
		catalogRepo: catalogRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// TaxRateRepo returns the tax rate repository.
func (s *NoOpTransactionScope) TaxRateRepo() catalog.TaxRateRepository {
	return s.taxRateRepo
}

// CatalogRepo returns the catalog repository.
func (s *NoOpTransactionScope) CatalogRepo() catalog.CatalogRepository {
	return s.catalogRepo
}

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
