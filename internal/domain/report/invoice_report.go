package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatistics is a read model aggregating invoices over a period
type InvoiceStatistics struct {
	Year         int
	Month        *int
	InvoiceCount int64
	TotalExclTax decimal.Decimal
	TotalInclTax decimal.Decimal
	AverageTotal decimal.Decimal
}

// TopClient ranks a client by the revenue of its invoices
type TopClient struct {
	ClientID     int64
	Name         string
	Code         string
	InvoiceCount int64
	Revenue      decimal.Decimal
}

// PeriodTotals is the raw aggregate returned by the store
type PeriodTotals struct {
	InvoiceCount int64
	TotalExclTax decimal.Decimal
	TotalInclTax decimal.Decimal
}

// Average returns the mean total incl. tax, zero when there is no invoice
func (p PeriodTotals) Average() decimal.Decimal {
	if p.InvoiceCount == 0 {
		return decimal.Zero
	}
	return p.TotalInclTax.Div(decimal.NewFromInt(p.InvoiceCount)).Round(2)
}

// InvoiceReportRepository runs the reporting aggregates
type InvoiceReportRepository interface {
	// SumPeriod aggregates invoices dated in [from, to)
	SumPeriod(ctx context.Context, from, to time.Time) (*PeriodTotals, error)

	// TopClients ranks clients by Σ total incl. tax, highest first
	TopClients(ctx context.Context, limit int) ([]TopClient, error)
}
