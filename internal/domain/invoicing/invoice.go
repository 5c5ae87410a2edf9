package invoicing

import (
	"strings"
	"time"

	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Invoice is the aggregate root of the invoicing context. Lines and totals
// are fixed at creation and never recalculated afterwards.
type Invoice struct {
	shared.BaseEntity
	Reference     string
	InvoiceDate   time.Time
	DueDate       time.Time
	ClientID      int64
	IssuerID      int64
	PaymentTermID int64
	BankAccountID int64
	TotalExclTax  decimal.Decimal
	TotalInclTax  decimal.Decimal
	Lines         []InvoiceLine
}

// InvoiceLine is one billed item. Designation, price and rate are copied
// from the catalog at creation time.
type InvoiceLine struct {
	ID               int64
	InvoiceID        int64
	LineNumber       int
	Designation      string
	Quantity         decimal.Decimal
	UnitPriceExclTax decimal.Decimal
	TaxRate          decimal.Decimal
	LineTotalExclTax decimal.Decimal
	LineTaxAmount    decimal.Decimal
}

// NewInvoice builds an invoice header bound to the resolved defaults.
func NewInvoice(reference string, invoiceDate, dueDate time.Time, clientID int64, defaults Defaults) *Invoice {
	return &Invoice{
		BaseEntity:    shared.BaseEntity{CreatedAt: time.Now()},
		Reference:     strings.TrimSpace(reference),
		InvoiceDate:   valueobject.DateOf(invoiceDate),
		DueDate:       valueobject.DateOf(dueDate),
		ClientID:      clientID,
		IssuerID:      defaults.Issuer.ID,
		PaymentTermID: defaults.PaymentTerm.ID,
		BankAccountID: defaults.BankAccount.ID,
		TotalExclTax:  decimal.Zero,
		TotalInclTax:  decimal.Zero,
	}
}

// NewInvoiceLine computes the line amounts:
// total = round2(quantity × price), tax = round2(total × rate / 100).
func NewInvoiceLine(lineNumber int, designation string, quantity, unitPrice, taxRate decimal.Decimal) InvoiceLine {
	total := valueobject.RoundAmount(quantity.Mul(unitPrice))
	return InvoiceLine{
		LineNumber:       lineNumber,
		Designation:      designation,
		Quantity:         quantity,
		UnitPriceExclTax: unitPrice,
		TaxRate:          taxRate,
		LineTotalExclTax: total,
		LineTaxAmount:    valueobject.PercentOf(total, taxRate),
	}
}

// AddLine appends a line numbered after the existing ones, starting at 1.
func (inv *Invoice) AddLine(designation string, quantity, unitPrice, taxRate decimal.Decimal) InvoiceLine {
	line := NewInvoiceLine(len(inv.Lines)+1, designation, quantity, unitPrice, taxRate)
	line.InvoiceID = inv.ID
	inv.Lines = append(inv.Lines, line)
	return line
}

// ComputeTotals sets the header totals from the lines.
func (inv *Invoice) ComputeTotals() {
	inv.TotalExclTax, inv.TotalInclTax = SumLines(inv.Lines)
}

// SumLines returns Σ line totals and Σ (line total + line tax).
func SumLines(lines []InvoiceLine) (exclTax, inclTax decimal.Decimal) {
	exclTax, tax := decimal.Zero, decimal.Zero
	for _, l := range lines {
		exclTax = exclTax.Add(l.LineTotalExclTax)
		tax = tax.Add(l.LineTaxAmount)
	}
	return exclTax, exclTax.Add(tax)
}

// TaxTotal returns the VAT amount of the invoice.
func (inv *Invoice) TaxTotal() decimal.Decimal {
	return inv.TotalInclTax.Sub(inv.TotalExclTax)
}
