package dto

import (
	"net/http"

	"github.com/okayo/invoicing/internal/domain/shared"
)

// Error codes raised by the HTTP layer itself, before a request reaches a
// service.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeRequestTooLarge = "REQUEST_TOO_LARGE"
	CodeRouteNotFound   = "ROUTE_NOT_FOUND"
	CodeRateLimited     = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Input errors -> 400 Bad Request
	shared.CodeValidation: http.StatusBadRequest,
	CodeBadRequest:        http.StatusBadRequest,

	CodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	CodeRateLimited:     http.StatusTooManyRequests,

	// Resource errors
	shared.CodeNotFound: http.StatusNotFound,
	CodeRouteNotFound:   http.StatusNotFound,
	shared.CodeConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	shared.CodeProductNotAvailable: http.StatusUnprocessableEntity,
	shared.CodeTaxRateNotFound:     http.StatusUnprocessableEntity,

	// Optional features switched off -> 503 Service Unavailable
	shared.CodePrintingDisabled: http.StatusServiceUnavailable,
	shared.CodeStorageDisabled:  http.StatusServiceUnavailable,

	// Misconfigured reference data is a server fault
	shared.CodeDefaultsNotConfigured: http.StatusInternalServerError,
	shared.CodeAmbiguousDefaults:     http.StatusInternalServerError,
	shared.CodeAmbiguousCatalog:      http.StatusInternalServerError,
	shared.CodeInternal:              http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
