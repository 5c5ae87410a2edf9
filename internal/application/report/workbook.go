package report

import (
	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/report"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/xuri/excelize/v2"
)

const (
	invoicesSheet = "Invoices"
	summarySheet  = "Summary"

	// amountFormat is the built-in "#,##0.00" number format.
	amountFormat = 4
)

var invoiceHeaders = []any{
	"Référence", "Date facturation", "Date échéance", "Code client", "Client", "Total HT", "Total TTC",
}

// buildWorkbook writes one row per invoice on the first sheet and the
// period statistics on the second.
func buildWorkbook(invoices []invoicing.InvoiceSummary, stats report.InvoiceStatistics) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), invoicesSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: amountFormat})
	if err != nil {
		return nil, err
	}

	if err := writeInvoices(f, invoices, header, amount); err != nil {
		return nil, err
	}
	if err := writeSummary(f, stats, header, amount); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeInvoices(f *excelize.File, invoices []invoicing.InvoiceSummary, header, amount int) error {
	if err := f.SetSheetRow(invoicesSheet, "A1", &invoiceHeaders); err != nil {
		return err
	}
	if err := f.SetCellStyle(invoicesSheet, "A1", "G1", header); err != nil {
		return err
	}

	for i, inv := range invoices {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			inv.Reference,
			valueobject.FormatDate(inv.InvoiceDate),
			valueobject.FormatDate(inv.DueDate),
			inv.ClientCode,
			inv.ClientName,
			inv.TotalExclTax.InexactFloat64(),
			inv.TotalInclTax.InexactFloat64(),
		}
		if err := f.SetSheetRow(invoicesSheet, cell, &row); err != nil {
			return err
		}
	}

	if len(invoices) > 0 {
		last, err := excelize.CoordinatesToCellName(7, len(invoices)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(invoicesSheet, "F2", last, amount); err != nil {
			return err
		}
	}
	return f.SetColWidth(invoicesSheet, "A", "G", 18)
}

func writeSummary(f *excelize.File, stats report.InvoiceStatistics, header, amount int) error {
	month := any("")
	if stats.Month != nil {
		month = *stats.Month
	}

	rows := [][]any{
		{"Année", stats.Year},
		{"Mois", month},
		{"Nombre de factures", stats.InvoiceCount},
		{"Total HT", stats.TotalExclTax.InexactFloat64()},
		{"Total TTC", stats.TotalInclTax.InexactFloat64()},
		{"Moyenne TTC", stats.AverageTotal.InexactFloat64()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(summarySheet, "A1", "A6", header); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "B4", "B6", amount); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "A", "A", 22)
}
