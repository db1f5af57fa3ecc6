package pagination

// DefaultPageSize is the standard page size when config does not override it.
const DefaultPageSize = 12

// MaxPageSize caps how many rows any page query can request.
const MaxPageSize = 100

// Params holds page pagination inputs from controllers or services. Page is
// 1-based; out-of-range pages yield an empty page rather than an error.
type Params struct {
	Page     int
	PageSize int
}

// Page wraps one page of results with the totals needed to render pagers.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Normalize enforces a 1-based page and the configured size bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Offset returns the row offset for the normalized params.
func (p Params) Offset() int {
	norm := p.Normalize()
	return (norm.Page - 1) * norm.PageSize
}

// NewPage assembles a Page from the query results and the total row count.
func NewPage[T any](items []T, params Params, total int64) Page[T] {
	norm := params.Normalize()
	totalPages := int((total + int64(norm.PageSize) - 1) / int64(norm.PageSize))
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:      items,
		Page:       norm.Page,
		PageSize:   norm.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
