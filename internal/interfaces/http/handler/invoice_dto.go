package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	appinvoicing "github.com/okayo/invoicing/internal/application/invoicing"
	"github.com/okayo/invoicing/internal/domain/shared"
	"github.com/okayo/invoicing/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the body of POST /api/factures. Fields are kept
// raw so a value of the wrong JSON type is reported against its field
// together with every other problem, instead of failing the whole decode.
type CreateInvoiceRequest struct {
	Reference   json.RawMessage `json:"reference"`
	InvoiceDate json.RawMessage `json:"date_facturation"`
	DueDate     json.RawMessage `json:"date_echeance"`
	ClientID    json.RawMessage `json:"id_client"`
	Lines       json.RawMessage `json:"lignes"`
}

// CreateInvoiceLineRequest is one requested line
type CreateInvoiceLineRequest struct {
	ProductID json.RawMessage `json:"id_produit"`
	Quantity  json.RawMessage `json:"quantite"`
}

// toCommand leaves unparsable dates zero; the command rejects them. Type
// mismatches are collected in the command's Malformed list.
func (r CreateInvoiceRequest) toCommand() appinvoicing.CreateInvoiceCommand {
	var cmd appinvoicing.CreateInvoiceCommand
	bad := &cmd.Malformed

	if !absent(r.Reference) {
		if err := json.Unmarshal(r.Reference, &cmd.Reference); err != nil {
			bad.Add("reference", "must be a string")
		}
	}
	cmd.InvoiceDate = rawDateOrZero(r.InvoiceDate)
	cmd.DueDate = rawDateOrZero(r.DueDate)
	cmd.ClientID = rawID(r.ClientID, "id_client", bad)

	if absent(r.Lines) {
		return cmd
	}
	var lines []json.RawMessage
	if err := json.Unmarshal(r.Lines, &lines); err != nil {
		bad.Add("lignes", "must be a list of lines")
		return cmd
	}
	cmd.Lines = make([]appinvoicing.CreateInvoiceLine, len(lines))
	for i, raw := range lines {
		prefix := fmt.Sprintf("lignes[%d].", i)
		var l CreateInvoiceLineRequest
		// A line that is not an object is checked as an empty one.
		_ = json.Unmarshal(raw, &l)
		cmd.Lines[i] = appinvoicing.CreateInvoiceLine{
			ProductID: rawID(l.ProductID, prefix+"id_produit", bad),
			Quantity:  rawQuantity(l.Quantity, prefix+"quantite", bad),
		}
	}
	return cmd
}

func absent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// rawID accepts integers written as numbers or numeric strings.
func rawID(raw json.RawMessage, field string, bad *shared.ValidationErrors) int64 {
	if absent(raw) {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		bad.Add(field, "must be an integer")
		return 0
	}
	id, err := n.Int64()
	if err != nil {
		bad.Add(field, "must be an integer")
		return 0
	}
	return id
}

func rawQuantity(raw json.RawMessage, field string, bad *shared.ValidationErrors) decimal.Decimal {
	if absent(raw) {
		bad.Add(field, "is required")
		return decimal.Zero
	}
	var q decimal.Decimal
	if err := q.UnmarshalJSON(raw); err != nil {
		bad.Add(field, "must be a number")
		return decimal.Zero
	}
	return q
}

func rawDateOrZero(raw json.RawMessage) time.Time {
	var s string
	if absent(raw) || json.Unmarshal(raw, &s) != nil {
		return time.Time{}
	}
	return parseDateOrZero(s)
}

func parseDateOrZero(s string) time.Time {
	t, err := valueobject.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ListInvoicesRequest holds the query of GET /api/factures
type ListInvoicesRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1"`
	ClientID *int64 `form:"client_id" binding:"omitempty,gt=0"`
}

func (r ListInvoicesRequest) toQuery() appinvoicing.ListInvoicesQuery {
	return appinvoicing.ListInvoicesQuery{
		Page:     r.Page,
		Limit:    r.Limit,
		ClientID: r.ClientID,
	}
}
