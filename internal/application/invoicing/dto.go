package invoicing

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/okayo/invoicing/internal/domain/invoicing"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

const (
	maxReferenceLength = 50
	quantityScale      = 3
)

// maxQuantity is the first value a DECIMAL(12,3) column cannot hold.
var maxQuantity = decimal.New(1, 9)

// CreateInvoiceCommand is a decoded invoice creation request
type CreateInvoiceCommand struct {
	Reference   string
	InvoiceDate time.Time
	DueDate     time.Time
	ClientID    int64
	Lines       []CreateInvoiceLine

	// Malformed holds fields the request carried with the wrong JSON type.
	// They replace the regular checks for those fields in Validate.
	Malformed shared.ValidationErrors
}

// CreateInvoiceLine is one requested line, priced from the catalog
type CreateInvoiceLine struct {
	ProductID int64
	Quantity  decimal.Decimal
}

// Validate reports every invalid field at once, using the request field
// names.
func (c CreateInvoiceCommand) Validate() error {
	var errs shared.ValidationErrors
	check := func(field, problem string) {
		if msg, ok := c.Malformed.Lookup(field); ok {
			errs.Add(field, msg)
			return
		}
		if problem != "" {
			errs.Add(field, problem)
		}
	}

	check("reference", referenceProblem(c.Reference))
	check("date_facturation", dateProblem(c.InvoiceDate))
	check("date_echeance", dateProblem(c.DueDate))
	check("id_client", idProblem(c.ClientID))
	linesProblem := ""
	if len(c.Lines) == 0 {
		linesProblem = "must contain at least one line"
	}
	check("lignes", linesProblem)
	for i, l := range c.Lines {
		prefix := fmt.Sprintf("lignes[%d].", i)
		check(prefix+"id_produit", idProblem(l.ProductID))
		check(prefix+"quantite", quantityProblem(l.Quantity))
	}
	return errs.Err()
}

func referenceProblem(ref string) string {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return "is required"
	case utf8.RuneCountInString(ref) > maxReferenceLength:
		return fmt.Sprintf("must not exceed %d characters", maxReferenceLength)
	}
	return ""
}

func dateProblem(d time.Time) string {
	if d.IsZero() {
		return "must be a valid date (YYYY-MM-DD)"
	}
	return ""
}

func idProblem(id int64) string {
	if id <= 0 {
		return "must be a positive integer"
	}
	return ""
}

// quantityProblem keeps quantities inside the invoice_lines column:
// strictly positive, DECIMAL(12,3).
func quantityProblem(q decimal.Decimal) string {
	switch {
	case !q.IsPositive():
		return "must be greater than 0"
	case q.GreaterThanOrEqual(maxQuantity):
		return fmt.Sprintf("must be less than %s", maxQuantity.String())
	case !q.Equal(q.Round(quantityScale)):
		return fmt.Sprintf("must have at most %d decimal places", quantityScale)
	}
	return ""
}

// CreateInvoiceResult identifies a created invoice
type CreateInvoiceResult struct {
	ID        int64
	Reference string
}

// ListInvoicesQuery selects a page of invoices
type ListInvoicesQuery struct {
	Page     int
	Limit    int
	ClientID *int64
}

// InvoiceSummaryResponse is one row of the invoice list
type InvoiceSummaryResponse struct {
	ID           int64  `json:"id_facture"`
	Reference    string `json:"reference"`
	InvoiceDate  string `json:"date_facturation"`
	DueDate      string `json:"date_echeance"`
	ClientID     int64  `json:"id_client"`
	ClientName   string `json:"nom_client"`
	ClientCode   string `json:"code_client"`
	TotalExclTax string `json:"total_ht"`
	TotalInclTax string `json:"total_ttc"`
}

// ToInvoiceSummaryResponse converts a list projection to a response DTO
func ToInvoiceSummaryResponse(s invoicing.InvoiceSummary) InvoiceSummaryResponse {
	return InvoiceSummaryResponse{
		ID:           s.ID,
		Reference:    s.Reference,
		InvoiceDate:  valueobject.FormatDate(s.InvoiceDate),
		DueDate:      valueobject.FormatDate(s.DueDate),
		ClientID:     s.ClientID,
		ClientName:   s.ClientName,
		ClientCode:   s.ClientCode,
		TotalExclTax: valueobject.FormatAmount(s.TotalExclTax),
		TotalInclTax: valueobject.FormatAmount(s.TotalInclTax),
	}
}

// InvoiceDetailResponse is the full view of one invoice
type InvoiceDetailResponse struct {
	ID           int64                 `json:"id_facture"`
	Reference    string                `json:"reference"`
	InvoiceDate  string                `json:"date_facturation"`
	DueDate      string                `json:"date_echeance"`
	TotalExclTax string                `json:"total_ht"`
	TotalTax     string                `json:"total_tva"`
	TotalInclTax string                `json:"total_ttc"`
	Client       InvoiceClientResponse `json:"client"`
	Issuer       IssuerResponse        `json:"emetteur"`
	PaymentTerm  PaymentTermResponse   `json:"condition_reglement"`
	BankAccount  BankAccountResponse   `json:"information_bancaire"`
	Lines        []InvoiceLineResponse `json:"lignes"`
}

// InvoiceClientResponse is the client block of an invoice
type InvoiceClientResponse struct {
	ID         int64  `json:"id_client"`
	Code       string `json:"code_client"`
	Name       string `json:"nom"`
	Address    string `json:"adresse"`
	City       string `json:"ville"`
	PostalCode string `json:"code_postal"`
}

// IssuerResponse is the issuer block of an invoice
type IssuerResponse struct {
	Name       string `json:"nom"`
	Address    string `json:"adresse"`
	City       string `json:"ville"`
	PostalCode string `json:"code_postal"`
	Phone      string `json:"telephone,omitempty"`
	Website    string `json:"site_web,omitempty"`
	Siret      string `json:"siret,omitempty"`
	VATNumber  string `json:"numero_tva,omitempty"`
}

// PaymentTermResponse is the payment condition of an invoice
type PaymentTermResponse struct {
	ID    int64  `json:"id_condition"`
	Label string `json:"libelle"`
}

// BankAccountResponse is the bank block of an invoice
type BankAccountResponse struct {
	BankName   string `json:"banque"`
	HolderName string `json:"titulaire"`
	IBAN       string `json:"iban"`
	BIC        string `json:"bic"`
}

// InvoiceLineResponse is one persisted line
type InvoiceLineResponse struct {
	LineNumber       int    `json:"numero_ligne"`
	Designation      string `json:"designation"`
	Quantity         string `json:"quantite"`
	UnitPriceExclTax string `json:"prix_unitaire_ht"`
	TaxRate          string `json:"taux_tva"`
	LineTotalExclTax string `json:"total_ligne_ht"`
	LineTaxAmount    string `json:"montant_tva"`
}

// ToInvoiceDetailResponse converts the detail read model to a response DTO
func ToInvoiceDetailResponse(d *invoicing.InvoiceDetail) InvoiceDetailResponse {
	lines := make([]InvoiceLineResponse, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = InvoiceLineResponse{
			LineNumber:       l.LineNumber,
			Designation:      l.Designation,
			Quantity:         l.Quantity.String(),
			UnitPriceExclTax: valueobject.FormatAmount(l.UnitPriceExclTax),
			TaxRate:          valueobject.FormatAmount(l.TaxRate),
			LineTotalExclTax: valueobject.FormatAmount(l.LineTotalExclTax),
			LineTaxAmount:    valueobject.FormatAmount(l.LineTaxAmount),
		}
	}

	return InvoiceDetailResponse{
		ID:           d.ID,
		Reference:    d.Reference,
		InvoiceDate:  valueobject.FormatDate(d.InvoiceDate),
		DueDate:      valueobject.FormatDate(d.DueDate),
		TotalExclTax: valueobject.FormatAmount(d.TotalExclTax),
		TotalTax:     valueobject.FormatAmount(d.TaxTotal()),
		TotalInclTax: valueobject.FormatAmount(d.TotalInclTax),
		Client: InvoiceClientResponse{
			ID:         d.Client.ID,
			Code:       d.Client.Code,
			Name:       d.Client.Name,
			Address:    d.Client.Address,
			City:       d.Client.City,
			PostalCode: d.Client.PostalCode,
		},
		Issuer: IssuerResponse{
			Name:       d.Issuer.Name,
			Address:    d.Issuer.Address,
			City:       d.Issuer.City,
			PostalCode: d.Issuer.PostalCode,
			Phone:      d.Issuer.Phone,
			Website:    d.Issuer.Website,
			Siret:      d.Issuer.Siret,
			VATNumber:  d.Issuer.VATNumber,
		},
		PaymentTerm: PaymentTermResponse{ID: d.PaymentTerm.ID, Label: d.PaymentTerm.Label},
		BankAccount: BankAccountResponse{
			BankName:   d.BankAccount.BankName,
			HolderName: d.BankAccount.HolderName,
			IBAN:       d.BankAccount.IBAN,
			BIC:        d.BankAccount.BIC,
		},
		Lines: lines,
	}
}
