package report

import (
	"context"
	"fmt"

	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/report"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

const (
	defaultTopClients = 10
	maxTopClients     = 100
	maxYear           = 9999
)

// ReportService provides the invoice statistics and exports
type ReportService struct {
	reportRepo  report.InvoiceReportRepository
	invoiceRepo invoicing.InvoiceRepository
	clock       shared.Clock
	logger      *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo report.InvoiceReportRepository,
	invoiceRepo invoicing.InvoiceRepository,
	clock shared.Clock,
	logger *zap.Logger,
) *ReportService {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reportRepo:  reportRepo,
		invoiceRepo: invoiceRepo,
		clock:       clock,
		logger:      logger,
	}
}

// resolve applies the current-year default and checks the bounds
func (s *ReportService) resolve(q StatisticsQuery) (StatisticsQuery, valueobject.Period, error) {
	if q.Year == 0 {
		q.Year = s.clock.Now().Year()
	}

	var errs shared.ValidationErrors
	if q.Year < 1 || q.Year > maxYear {
		errs.Addf("annee", "must be between 1 and %d", maxYear)
	}
	month := 0
	if q.Month != nil {
		month = *q.Month
		if month < 1 || month > 12 {
			errs.Add("mois", "must be between 1 and 12")
		}
	}
	if err := errs.Err(); err != nil {
		return q, valueobject.Period{}, err
	}
	return q, valueobject.YearPeriod(q.Year, month), nil
}

func (s *ReportService) statistics(ctx context.Context, q StatisticsQuery, period valueobject.Period) (report.InvoiceStatistics, error) {
	totals, err := s.reportRepo.SumPeriod(ctx, period.From, period.To)
	if err != nil {
		return report.InvoiceStatistics{}, fmt.Errorf("failed to aggregate invoices: %w", err)
	}
	return report.InvoiceStatistics{
		Year:         q.Year,
		Month:        q.Month,
		InvoiceCount: totals.InvoiceCount,
		TotalExclTax: totals.TotalExclTax,
		TotalInclTax: totals.TotalInclTax,
		AverageTotal: totals.Average(),
	}, nil
}

// Statistics aggregates the invoices of a year or of one of its months.
// An empty period yields zeros.
func (s *ReportService) Statistics(ctx context.Context, q StatisticsQuery) (*StatisticsResponse, error) {
	q, period, err := s.resolve(q)
	if err != nil {
		return nil, err
	}

	stats, err := s.statistics(ctx, q, period)
	if err != nil {
		return nil, err
	}
	resp := ToStatisticsResponse(stats)
	return &resp, nil
}

// TopClients ranks clients by revenue incl. tax. The limit defaults to 10
// and is capped at 100.
func (s *ReportService) TopClients(ctx context.Context, limit int) ([]TopClientResponse, error) {
	switch {
	case limit <= 0:
		limit = defaultTopClients
	case limit > maxTopClients:
		limit = maxTopClients
	}

	ranked, err := s.reportRepo.TopClients(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to rank clients: %w", err)
	}

	out := make([]TopClientResponse, len(ranked))
	for i, c := range ranked {
		out[i] = ToTopClientResponse(c)
	}
	return out, nil
}

// ExportInvoices builds a workbook listing the invoices of the period
// together with its statistics.
func (s *ReportService) ExportInvoices(ctx context.Context, q StatisticsQuery) (*Export, error) {
	q, period, err := s.resolve(q)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindInPeriod(ctx, period.From, period.To)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	stats, err := s.statistics(ctx, q, period)
	if err != nil {
		return nil, err
	}

	data, err := buildWorkbook(invoices, stats)
	if err != nil {
		s.logger.Error("Failed to build invoice export", zap.Int("year", q.Year), zap.Error(err))
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	s.logger.Info("Invoice export generated",
		zap.Int("year", q.Year),
		zap.Int("invoices", len(invoices)),
		zap.Int("bytes", len(data)))

	return &Export{Filename: exportFilename(q), Data: data}, nil
}

func exportFilename(q StatisticsQuery) string {
	if q.Month != nil {
		return fmt.Sprintf("factures-%04d-%02d.xlsx", q.Year, *q.Month)
	}
	return fmt.Sprintf("factures-%04d.xlsx", q.Year)
}
