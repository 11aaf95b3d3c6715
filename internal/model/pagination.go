package model

// Pagination defaults. Invalid query input silently falls back to these.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Pagination is the page/pageSize pair shared by all list operations.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset converts the page pair into a SQL offset.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}
