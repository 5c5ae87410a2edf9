package models

import (
	"time"

	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// IssuerModel is the persistence model for the invoicing organization.
type IssuerModel struct {
	ID         int64   `gorm:"primaryKey;autoIncrement"`
	Name       string  `gorm:"type:varchar(100);not null"`
	Address    string  `gorm:"type:varchar(255);not null"`
	City       string  `gorm:"type:varchar(100);not null"`
	PostalCode string  `gorm:"type:varchar(10);not null"`
	Phone      *string `gorm:"type:varchar(20)"`
	Website    *string `gorm:"type:varchar(100)"`
	Siret      *string `gorm:"type:varchar(14)"`
	VATNumber  *string `gorm:"column:vat_number;type:varchar(20)"`
}

// TableName returns the table name for GORM
func (IssuerModel) TableName() string {
	return "issuers"
}

// ToDomain converts the persistence model to a domain Issuer.
func (m *IssuerModel) ToDomain() invoicing.Issuer {
	return invoicing.Issuer{
		ID:         m.ID,
		Name:       m.Name,
		Address:    m.Address,
		City:       m.City,
		PostalCode: m.PostalCode,
		Phone:      deref(m.Phone),
		Website:    deref(m.Website),
		Siret:      deref(m.Siret),
		VATNumber:  deref(m.VATNumber),
	}
}

// PaymentTermModel is the persistence model for payment conditions.
type PaymentTermModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Label string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (PaymentTermModel) TableName() string {
	return "payment_terms"
}

// ToDomain converts the persistence model to a domain PaymentTerm.
func (m *PaymentTermModel) ToDomain() invoicing.PaymentTerm {
	return invoicing.PaymentTerm{ID: m.ID, Label: m.Label}
}

// BankAccountModel is the persistence model for bank accounts.
type BankAccountModel struct {
	ID         int64      `gorm:"primaryKey;autoIncrement"`
	BankName   string     `gorm:"type:varchar(100);not null"`
	HolderName string     `gorm:"type:varchar(100);not null"`
	IBAN       string     `gorm:"column:iban;type:varchar(34);not null"`
	BIC        string     `gorm:"column:bic;type:varchar(11);not null"`
	ValidFrom  time.Time  `gorm:"type:date;not null"`
	ValidTo    *time.Time `gorm:"type:date"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount.
func (m *BankAccountModel) ToDomain() invoicing.BankAccount {
	return invoicing.BankAccount{
		ID:         m.ID,
		BankName:   m.BankName,
		HolderName: m.HolderName,
		IBAN:       m.IBAN,
		BIC:        m.BIC,
		ValidFrom:  valueobject.DateOf(m.ValidFrom),
		ValidTo:    dateOrNil(m.ValidTo),
	}
}

// InvoiceModel is the persistence model for the Invoice aggregate header.
type InvoiceModel struct {
	BaseModel
	Reference     string          `gorm:"type:varchar(50);not null;uniqueIndex:uq_invoices_reference"`
	InvoiceDate   time.Time       `gorm:"type:date;not null;index"`
	DueDate       time.Time       `gorm:"type:date;not null"`
	ClientID      int64           `gorm:"not null;index"`
	IssuerID      int64           `gorm:"not null"`
	PaymentTermID int64           `gorm:"not null"`
	BankAccountID int64           `gorm:"not null"`
	TotalExclTax  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	TotalInclTax  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice without lines.
func (m *InvoiceModel) ToDomain() *invoicing.Invoice {
	return &invoicing.Invoice{
		BaseEntity:    m.BaseModel.ToDomain(),
		Reference:     m.Reference,
		InvoiceDate:   valueobject.DateOf(m.InvoiceDate),
		DueDate:       valueobject.DateOf(m.DueDate),
		ClientID:      m.ClientID,
		IssuerID:      m.IssuerID,
		PaymentTermID: m.PaymentTermID,
		BankAccountID: m.BankAccountID,
		TotalExclTax:  m.TotalExclTax,
		TotalInclTax:  m.TotalInclTax,
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *invoicing.Invoice) *InvoiceModel {
	m := &InvoiceModel{
		Reference:     inv.Reference,
		InvoiceDate:   valueobject.DateOf(inv.InvoiceDate),
		DueDate:       valueobject.DateOf(inv.DueDate),
		ClientID:      inv.ClientID,
		IssuerID:      inv.IssuerID,
		PaymentTermID: inv.PaymentTermID,
		BankAccountID: inv.BankAccountID,
		TotalExclTax:  inv.TotalExclTax,
		TotalInclTax:  inv.TotalInclTax,
	}
	m.FromDomainBaseEntity(inv.BaseEntity)
	return m
}

// InvoiceLineModel is the persistence model for invoice lines.
type InvoiceLineModel struct {
	ID               int64           `gorm:"primaryKey;autoIncrement"`
	InvoiceID        int64           `gorm:"not null;uniqueIndex:uq_invoice_lines_number,priority:1"`
	LineNumber       int             `gorm:"not null;uniqueIndex:uq_invoice_lines_number,priority:2"`
	Designation      string          `gorm:"type:varchar(100);not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPriceExclTax decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TaxRate          decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	LineTotalExclTax decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LineTaxAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "invoice_lines"
}

// ToDomain converts the persistence model to a domain InvoiceLine.
func (m *InvoiceLineModel) ToDomain() invoicing.InvoiceLine {
	return invoicing.InvoiceLine{
		ID:               m.ID,
		InvoiceID:        m.InvoiceID,
		LineNumber:       m.LineNumber,
		Designation:      m.Designation,
		Quantity:         m.Quantity,
		UnitPriceExclTax: m.UnitPriceExclTax,
		TaxRate:          m.TaxRate,
		LineTotalExclTax: m.LineTotalExclTax,
		LineTaxAmount:    m.LineTaxAmount,
	}
}

// InvoiceLineModelFromDomain creates a new persistence model from a domain InvoiceLine.
func InvoiceLineModelFromDomain(l *invoicing.InvoiceLine) *InvoiceLineModel {
	return &InvoiceLineModel{
		ID:               l.ID,
		InvoiceID:        l.InvoiceID,
		LineNumber:       l.LineNumber,
		Designation:      l.Designation,
		Quantity:         l.Quantity,
		UnitPriceExclTax: l.UnitPriceExclTax,
		TaxRate:          l.TaxRate,
		LineTotalExclTax: l.LineTotalExclTax,
		LineTaxAmount:    l.LineTaxAmount,
	}
}

// InvoiceSummaryRow is the scan target of invoice list queries.
type InvoiceSummaryRow struct {
	ID           int64
	Reference    string
	InvoiceDate  time.Time
	DueDate      time.Time
	ClientID     int64
	ClientName   string
	ClientCode   string
	TotalExclTax decimal.Decimal
	TotalInclTax decimal.Decimal
}

// ToDomain converts the row to a domain InvoiceSummary.
func (r *InvoiceSummaryRow) ToDomain() invoicing.InvoiceSummary {
	return invoicing.InvoiceSummary{
		ID:           r.ID,
		Reference:    r.Reference,
		InvoiceDate:  valueobject.DateOf(r.InvoiceDate),
		DueDate:      valueobject.DateOf(r.DueDate),
		ClientID:     r.ClientID,
		ClientName:   r.ClientName,
		ClientCode:   r.ClientCode,
		TotalExclTax: r.TotalExclTax,
		TotalInclTax: r.TotalInclTax,
	}
}

// ClientBlock converts a client model to the client block of an invoice detail.
func (m *ClientModel) ClientBlock() invoicing.InvoiceClient {
	return invoicing.InvoiceClient{
		ID:         m.ID,
		Code:       m.Code,
		Name:       m.Name,
		Address:    m.Address,
		City:       m.City,
		PostalCode: m.PostalCode,
	}
}

