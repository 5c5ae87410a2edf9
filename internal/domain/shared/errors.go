package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes shared by every bounded context.
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeConflict              = "CONFLICT"
	CodeProductNotAvailable   = "PRODUCT_NOT_AVAILABLE"
	CodeTaxRateNotFound       = "TAX_RATE_NOT_FOUND"
	CodeDefaultsNotConfigured = "DEFAULTS_NOT_CONFIGURED"
	CodeAmbiguousDefaults     = "AMBIGUOUS_DEFAULTS"
	CodeAmbiguousCatalog      = "AMBIGUOUS_CATALOG_ENTRY"
	CodePrintingDisabled      = "PRINTING_DISABLED"
	CodeStorageDisabled       = "STORAGE_DISABLED"
	CodeInternal              = "INTERNAL_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Details carries the per-field list for validation errors.
	Details []FieldError `json:"details,omitempty"`
	Err     error        `json:"-"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code, so wrapped instances
// satisfy errors.Is against the package sentinels.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrValidation = NewDomainError(CodeValidation, "Invalid data")
	ErrNotFound   = NewDomainError(CodeNotFound, "Resource not found")
	ErrConflict   = NewDomainError(CodeConflict, "Resource already exists")
	ErrInternal   = NewDomainError(CodeInternal, "Internal server error")
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors accumulates field errors before they are turned into a
// single DomainError.
type ValidationErrors []FieldError

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Addf appends a field error with a formatted message.
func (v *ValidationErrors) Addf(field, format string, args ...any) {
	v.Add(field, fmt.Sprintf(format, args...))
}

// Empty reports whether no error was recorded.
func (v ValidationErrors) Empty() bool {
	return len(v) == 0
}

// Lookup returns the message recorded for field, if any.
func (v ValidationErrors) Lookup(field string) (string, bool) {
	for _, f := range v {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// Err returns nil when empty, otherwise a validation DomainError listing
// every recorded field.
func (v ValidationErrors) Err() error {
	if v.Empty() {
		return nil
	}
	return NewValidationError(v)
}

// NewValidationError builds a validation error from a field list.
func NewValidationError(fields []FieldError) *DomainError {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "Invalid data: " + strings.Join(names, ", "),
		Details: fields,
	}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity string, id any) *DomainError {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s %v not found", entity, id))
}

// NewConflictError reports a natural-key uniqueness violation.
func NewConflictError(message string) *DomainError {
	return NewDomainError(CodeConflict, message)
}

// NewInternalError wraps an unexpected failure.
func NewInternalError(message string, err error) *DomainError {
	return &DomainError{Code: CodeInternal, Message: message, Err: err}
}

// IsNotFound reports whether err is (or wraps) a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is (or wraps) a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// AsDomainError extracts the outermost DomainError from err.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
