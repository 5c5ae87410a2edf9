package invoicing

import (
	"context"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/partner"
)

// TransactionScope runs the invoice creation workflow atomically: if fn
// returns an error nothing it wrote is kept.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories the workflow needs,
// all bound to the same transaction.
type TransactionalRepositories interface {
	ClientRepo() partner.ClientRepository
	DefaultsRepo() invoicing.DefaultsRepository
	CatalogRepo() catalog.CatalogRepository
	InvoiceRepo() invoicing.InvoiceRepository
}

// NoOpTransactionScope hands out plain repositories without a transaction.
type NoOpTransactionScope struct {
	clientRepo   partner.ClientRepository
	defaultsRepo invoicing.DefaultsRepository
	catalogRepo  catalog.CatalogRepository
	invoiceRepo  invoicing.InvoiceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	clientRepo partner.ClientRepository,
	defaultsRepo invoicing.DefaultsRepository,
	catalogRepo catalog.CatalogRepository,
	invoiceRepo invoicing.InvoiceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		clientRepo:   clientRepo,
		defaultsRepo: defaultsRepo,
		catalogRepo:  catalogRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Execute runs fn directly.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ClientRepo() partner.ClientRepository       { return s.clientRepo }
func (s *NoOpTransactionScope) DefaultsRepo() invoicing.DefaultsRepository { return s.defaultsRepo }
func (s *NoOpTransactionScope) CatalogRepo() catalog.CatalogRepository     { return s.catalogRepo }
func (s *NoOpTransactionScope) InvoiceRepo() invoicing.InvoiceRepository   { return s.invoiceRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
