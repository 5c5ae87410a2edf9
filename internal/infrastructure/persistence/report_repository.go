package persistence

import (
	"context"
	"time"

	"github.com/okayo/invoicing/internal/domain/report"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormInvoiceReportRepository implements InvoiceReportRepository using GORM
type GormInvoiceReportRepository struct {
	db *gorm.DB
}

// NewGormInvoiceReportRepository creates a new GormInvoiceReportRepository
func NewGormInvoiceReportRepository(db *gorm.DB) *GormInvoiceReportRepository {
	return &GormInvoiceReportRepository{db: db}
}

type periodTotalsRow struct {
	InvoiceCount int64
	TotalExclTax decimal.NullDecimal
	TotalInclTax decimal.NullDecimal
}

// SumPeriod aggregates invoices dated in [from, to)
func (r *GormInvoiceReportRepository) SumPeriod(ctx context.Context, from, to time.Time) (*report.PeriodTotals, error) {
	var row periodTotalsRow
	err := r.db.WithContext(ctx).
		Table("invoices").
		Select("COUNT(*) AS invoice_count, SUM(total_excl_tax) AS total_excl_tax, SUM(total_incl_tax) AS total_incl_tax").
		Where("invoice_date >= ? AND invoice_date < ?", valueobject.DateOf(from), valueobject.DateOf(to)).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &report.PeriodTotals{
		InvoiceCount: row.InvoiceCount,
		TotalExclTax: orZero(row.TotalExclTax),
		TotalInclTax: orZero(row.TotalInclTax),
	}, nil
}

type topClientRow struct {
	ClientID     int64
	Name         string
	Code         string
	InvoiceCount int64
	Revenue      decimal.NullDecimal
}

// TopClients ranks clients having invoices by revenue incl. tax
func (r *GormInvoiceReportRepository) TopClients(ctx context.Context, limit int) ([]report.TopClient, error) {
	var rows []topClientRow
	err := r.db.WithContext(ctx).
		Table("invoices AS i").
		Select("c.id AS client_id, c.name, c.code, COUNT(i.id) AS invoice_count, SUM(i.total_incl_tax) AS revenue").
		Joins("JOIN clients c ON c.id = i.client_id").
		Group("c.id, c.name, c.code").
		Order("revenue DESC, c.id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]report.TopClient, len(rows))
	for i, row := range rows {
		out[i] = report.TopClient{
			ClientID:     row.ClientID,
			Name:         row.Name,
			Code:         row.Code,
			InvoiceCount: row.InvoiceCount,
			Revenue:      orZero(row.Revenue),
		}
	}
	return out, nil
}

// orZero rounds SQL sums back to cents; SQLite returns them as REAL.
func orZero(d decimal.NullDecimal) decimal.Decimal {
	if !d.Valid {
		return decimal.Zero
	}
	return valueobject.RoundAmount(d.Decimal)
}

// Ensure GormInvoiceReportRepository implements InvoiceReportRepository
var _ report.InvoiceReportRepository = (*GormInvoiceReportRepository)(nil)
