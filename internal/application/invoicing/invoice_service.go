package invoicing

import (
	"context"
	"errors"
	"fmt"

	"github.com/okayo/invoicing/internal/domain/catalog"
	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/okayo/invoicing/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// defaultsProbe is how many candidates are read per default so that an
// ambiguous configuration can be told apart from a single row.
const defaultsProbe = 2

// Policies decide how ambiguous reference data is handled.
type Policies struct {
	Defaults       invoicing.DefaultsPolicy
	CatalogOverlap catalog.OverlapPolicy
}

// InvoiceService creates and reads invoices
type InvoiceService struct {
	invoiceRepo invoicing.InvoiceRepository
	txScope     TransactionScope
	policies    Policies
	logger      *zap.Logger
	metrics     *telemetry.InvoiceMetrics
}

// NewInvoiceService creates a new InvoiceService. Unknown policies fall
// back to strict defaults and latest-start catalog resolution.
func NewInvoiceService(
	invoiceRepo invoicing.InvoiceRepository,
	txScope TransactionScope,
	policies Policies,
	logger *zap.Logger,
) *InvoiceService {
	if !policies.Defaults.IsValid() {
		policies.Defaults = invoicing.DefaultsStrict
	}
	if !policies.CatalogOverlap.IsValid() {
		policies.CatalogOverlap = catalog.OverlapLatest
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		txScope:     txScope,
		policies:    policies,
		logger:      logger,
	}
}

// SetBusinessMetrics sets the business metrics instance
func (s *InvoiceService) SetBusinessMetrics(m *telemetry.InvoiceMetrics) {
	s.metrics = m
}

// Create runs the invoice creation workflow: the client is checked, the
// defaults resolved, the header and every catalog-priced line inserted and
// the totals stored, all in one transaction.
func (s *InvoiceService) Create(ctx context.Context, cmd CreateInvoiceCommand) (*CreateInvoiceResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "create",
		attribute.String("invoice.reference", cmd.Reference),
		attribute.Int("invoice.lines", len(cmd.Lines)),
	)
	defer span.End()

	if err := cmd.Validate(); err != nil {
		s.recordFailure(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}

	var invoice *invoicing.Invoice
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = s.createInTx(ctx, repos, cmd)
		return err
	})
	if err != nil {
		s.recordFailure(ctx, err)
		telemetry.RecordError(span, err)
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.RecordCreated(ctx, invoice.TotalInclTax)
	}
	span.SetAttributes(attribute.Int64("invoice.id", invoice.ID))
	telemetry.SetOK(span)

	s.logger.Info("Invoice created",
		zap.Int64("invoice_id", invoice.ID),
		zap.String("reference", invoice.Reference),
		zap.Int64("client_id", invoice.ClientID),
		zap.Int("lines", len(invoice.Lines)),
		zap.String("total_incl_tax", valueobject.FormatAmount(invoice.TotalInclTax)))

	return &CreateInvoiceResult{ID: invoice.ID, Reference: invoice.Reference}, nil
}

func (s *InvoiceService) createInTx(ctx context.Context, repos TransactionalRepositories, cmd CreateInvoiceCommand) (*invoicing.Invoice, error) {
	exists, err := repos.ClientRepo().ExistsByID(ctx, cmd.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check client: %w", err)
	}
	if !exists {
		return nil, shared.NewNotFoundError("Client", cmd.ClientID)
	}

	defaults, err := s.resolveDefaults(ctx, repos.DefaultsRepo())
	if err != nil {
		return nil, err
	}

	invoice := invoicing.NewInvoice(cmd.Reference, cmd.InvoiceDate, cmd.DueDate, cmd.ClientID, *defaults)
	if err := repos.InvoiceRepo().Create(ctx, invoice); err != nil {
		return nil, err
	}

	for _, requested := range cmd.Lines {
		entry, err := s.effectiveEntry(ctx, repos.CatalogRepo(), requested.ProductID, invoice)
		if err != nil {
			return nil, err
		}

		invoice.AddLine(entry.ProductName, requested.Quantity, entry.UnitPriceExclTax, entry.TaxRate)
		line := &invoice.Lines[len(invoice.Lines)-1]
		if err := repos.InvoiceRepo().CreateLine(ctx, line); err != nil {
			return nil, fmt.Errorf("failed to insert line %d: %w", line.LineNumber, err)
		}
	}

	persisted, err := repos.InvoiceRepo().FindLines(ctx, invoice.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lines: %w", err)
	}
	invoice.Lines = persisted
	invoice.ComputeTotals()
	if err := repos.InvoiceRepo().UpdateTotals(ctx, invoice.ID, invoice.TotalExclTax, invoice.TotalInclTax); err != nil {
		return nil, fmt.Errorf("failed to store totals: %w", err)
	}
	return invoice, nil
}

func (s *InvoiceService) resolveDefaults(ctx context.Context, repo invoicing.DefaultsRepository) (*invoicing.Defaults, error) {
	issuers, err := repo.FindIssuers(ctx, defaultsProbe)
	if err != nil {
		return nil, fmt.Errorf("failed to load issuers: %w", err)
	}
	issuer, err := invoicing.PickDefault("issuer", issuers, s.policies.Defaults)
	if err != nil {
		return nil, err
	}

	terms, err := repo.FindPaymentTerms(ctx, defaultsProbe)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment terms: %w", err)
	}
	term, err := invoicing.PickDefault("payment term", terms, s.policies.Defaults)
	if err != nil {
		return nil, err
	}

	accounts, err := repo.FindOpenBankAccounts(ctx, defaultsProbe)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank accounts: %w", err)
	}
	account, err := invoicing.PickDefault("bank account", accounts, s.policies.Defaults)
	if err != nil {
		return nil, err
	}

	return &invoicing.Defaults{Issuer: issuer, PaymentTerm: term, BankAccount: account}, nil
}

func (s *InvoiceService) effectiveEntry(ctx context.Context, repo catalog.CatalogRepository, productID int64, invoice *invoicing.Invoice) (*catalog.PricedEntry, error) {
	candidates, err := repo.FindCovering(ctx, productID, invoice.InvoiceDate)
	if err != nil {
		return nil, fmt.Errorf("failed to look up catalog for product %d: %w", productID, err)
	}

	entry, err := catalog.SelectEffective(productID, invoice.InvoiceDate, candidates, s.policies.CatalogOverlap)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 1 {
		s.logger.Warn("Overlapping catalog entries",
			zap.Int64("product_id", productID),
			zap.String("policy", string(s.policies.CatalogOverlap)),
			zap.String("date", valueobject.FormatDate(invoice.InvoiceDate)),
			zap.Int("candidates", len(candidates)),
			zap.Int64("catalog_entry_id", entry.EntryID))
	}
	return entry, nil
}

func (s *InvoiceService) recordFailure(ctx context.Context, err error) {
	reason := failureReason(err)
	if reason == telemetry.ReasonInternal || reason == telemetry.ReasonDefaults {
		s.logger.Error("Invoice creation failed", zap.String("reason", reason), zap.Error(err))
	} else {
		s.logger.Warn("Invoice creation rejected", zap.String("reason", reason), zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.RecordFailure(ctx, reason)
	}
}

var (
	errDefaultsMissing   = shared.NewDomainError(shared.CodeDefaultsNotConfigured, "")
	errDefaultsAmbiguous = shared.NewDomainError(shared.CodeAmbiguousDefaults, "")
	errNotAvailable      = shared.NewDomainError(shared.CodeProductNotAvailable, "")
)

func failureReason(err error) string {
	switch {
	case errors.Is(err, shared.ErrValidation):
		return telemetry.ReasonValidation
	case errors.Is(err, shared.ErrNotFound):
		return telemetry.ReasonClientMissing
	case errors.Is(err, shared.ErrConflict):
		return telemetry.ReasonDuplicate
	case errors.Is(err, errNotAvailable):
		return telemetry.ReasonNotAvailable
	case errors.Is(err, errDefaultsMissing), errors.Is(err, errDefaultsAmbiguous):
		return telemetry.ReasonDefaults
	default:
		return telemetry.ReasonInternal
	}
}

// List returns a page of invoices, most recent first. A page past the end
// is empty.
func (s *InvoiceService) List(ctx context.Context, q ListInvoicesQuery) ([]InvoiceSummaryResponse, error) {
	filter := invoicing.InvoiceFilter{
		ClientID:   q.ClientID,
		Pagination: shared.NewPagination(q.Page, q.Limit),
	}

	rows, err := s.invoiceRepo.FindPage(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]InvoiceSummaryResponse, len(rows))
	for i, r := range rows {
		out[i] = ToInvoiceSummaryResponse(r)
	}
	return out, nil
}

// GetByID returns the detail of one invoice
func (s *InvoiceService) GetByID(ctx context.Context, id int64) (*InvoiceDetailResponse, error) {
	detail, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("Invoice", id)
		}
		return nil, err
	}
	resp := ToInvoiceDetailResponse(detail)
	return &resp, nil
}
