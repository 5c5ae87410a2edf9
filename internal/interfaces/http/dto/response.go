package dto

import "time"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   any    `json:"details"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// NewErrorResponse creates an error response. Details default to the
// message so clients can always read them.
func NewErrorResponse(message, code, requestID string) ErrorResponse {
	return ErrorResponse{
		Error:     message,
		Details:   message,
		Code:      code,
		RequestID: requestID,
	}
}

// WithDetails replaces the details with a field list for validation errors
// or a short explanation otherwise.
func (r ErrorResponse) WithDetails(details any) ErrorResponse {
	r.Details = details
	return r
}

// ClientCreatedResponse acknowledges a client creation
type ClientCreatedResponse struct {
	Message  string `json:"message"`
	ClientID int64  `json:"id_client"`
}

// ProductCreatedResponse acknowledges a product creation
type ProductCreatedResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"id_produit"`
}

// InvoiceCreatedResponse acknowledges an invoice creation
type InvoiceCreatedResponse struct {
	Message   string `json:"message"`
	InvoiceID int64  `json:"id_facture"`
	Reference string `json:"reference"`
}

// HealthResponse reports service liveness and database reachability
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Database  string    `json:"database"`
}

// DocsResponse is the static description served at /api/docs
type DocsResponse struct {
	Title       string                       `json:"title"`
	Version     string                       `json:"version"`
	Description string                       `json:"description"`
	Endpoints   map[string]map[string]string `json:"endpoints"`
}
