package shared

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination holds 1-based page selection.
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination returns a normalized pagination.
func NewPagination(page, pageSize int) Pagination {
	p := Pagination{Page: page, PageSize: pageSize}
	p.Normalize()
	return p
}

// Normalize applies defaults and bounds.
func (p *Pagination) Normalize() {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size.
func (p Pagination) Limit() int {
	return p.PageSize
}
