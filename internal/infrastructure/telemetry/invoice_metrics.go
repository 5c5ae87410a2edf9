package telemetry

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ErrMeterNil is returned when no meter is supplied.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Failure reasons attached to invoice_creation_failures_total.
const (
	ReasonValidation    = "validation"
	ReasonClientMissing = "client_not_found"
	ReasonDuplicate     = "duplicate_reference"
	ReasonNotAvailable  = "product_not_available"
	ReasonDefaults      = "defaults"
	ReasonInternal      = "internal"
)

// InvoiceMetrics records the business outcome of invoice creation.
type InvoiceMetrics struct {
	created  *Counter
	amount   *Histogram
	failures *Counter
	logger   *zap.Logger
}

// NewInvoiceMetrics registers the invoice instruments on meter.
func NewInvoiceMetrics(meter metric.Meter, logger *zap.Logger) (*InvoiceMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	created, err := NewCounter(meter, "invoices_created_total", "Number of invoices created", "{invoice}")
	if err != nil {
		return nil, err
	}
	amount, err := NewHistogram(meter, HistogramOpts{
		Name:        "invoice_total_incl_tax",
		Description: "Distribution of invoice totals including tax",
		Unit:        "EUR",
		Boundaries:  InvoiceAmountBuckets,
	})
	if err != nil {
		return nil, err
	}
	failures, err := NewCounter(meter, "invoice_creation_failures_total", "Number of rejected invoice creations", "{invoice}")
	if err != nil {
		return nil, err
	}

	return &InvoiceMetrics{
		created:  created,
		amount:   amount,
		failures: failures,
		logger:   logger,
	}, nil
}

// RecordCreated counts a committed invoice and its total.
func (m *InvoiceMetrics) RecordCreated(ctx context.Context, totalInclTax decimal.Decimal) {
	m.created.Inc(ctx)
	m.amount.Record(ctx, totalInclTax.InexactFloat64())
}

// RecordFailure counts a rolled back creation.
func (m *InvoiceMetrics) RecordFailure(ctx context.Context, reason string) {
	m.failures.Inc(ctx, AttrFailureReason.String(reason))
	m.logger.Debug("Invoice creation failure recorded", zap.String("reason", reason))
}
