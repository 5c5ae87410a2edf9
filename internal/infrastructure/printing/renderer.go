package printing

import (
	"context"
	"time"
)

// A4 page size in millimeters.
const (
	a4WidthMM  = 210
	a4HeightMM = 297
)

// Margins are page margins in millimeters.
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns the margins used for invoices.
func DefaultMargins() Margins {
	return Margins{Top: 15, Right: 12, Bottom: 18, Left: 12}
}

// RenderRequest contains the parameters for rendering HTML to an A4 PDF
type RenderRequest struct {
	// HTML is a complete document or a body fragment
	HTML string
	// Title is used when HTML is a fragment
	Title   string
	Margins Margins
	// FooterHTML is repeated at the bottom of every page; Chrome fills the
	// pageNumber and totalPages classes
	FooterHTML string
	// Timeout overrides the renderer default
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer renders HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
	ErrCodeInvalidHTML   = "INVALID_HTML"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
