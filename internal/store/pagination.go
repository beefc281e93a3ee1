package store

// Pagination limits.
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// PageParams contains pagination and sorting request parameters.
type PageParams struct {
	Page  int    // 1-based page number (minimum 1)
	Limit int    // Items per page (defaults to 20 with a maximum of 100)
	Sort  string // Sort field, optionally prefixed with '-' for descending
}

// Page contains one page of results and pagination metadata.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Normalize clamps pagination parameters into their valid ranges.
func (p *PageParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
}

// Offset returns the SQL offset for the page. Params must be normalized.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewPage assembles a result page. A request past the last page yields an
// empty item list with the correct totals.
func NewPage[T any](items []T, total int, params PageParams) *Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + params.Limit - 1) / params.Limit
	}
	return &Page[T]{
		Items:      items,
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
