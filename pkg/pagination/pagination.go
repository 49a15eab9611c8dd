package pagination

import (
	"math"
	"slices"
)

// AllowedLimits are the page sizes offered by every list page.
var AllowedLimits = []int{20, 50, 100, 200}

// DefaultLimit is used when a request carries no or an unsupported limit.
const DefaultLimit = 20

// ListQuery represents the page, page size and search keyword of a list page
type ListQuery struct {
	Page   int    `form:"page" json:"page"`
	Limit  int    `form:"limit" json:"limit"`
	Search string `form:"search" json:"search"`
}

// DefaultQuery returns the first page with the default limit and no keyword
func DefaultQuery() ListQuery {
	return ListQuery{Page: 1, Limit: DefaultLimit}
}

// Normalize ensures the query is within valid ranges
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if !slices.Contains(AllowedLimits, q.Limit) {
		q.Limit = DefaultLimit
	}
	return q
}

// Offset calculates the index of the first item of the page
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// PageResult is one page of records plus the server-reported collection size.
type PageResult[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// Pagination represents derived pagination values for the controls
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := 0
	if perPage > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(perPage)))
	}

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult represents a paginated result with items and pagination info
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult creates a new paginated result
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PaginatedResult[T]{
		Items:      items,
		Pagination: pagination,
	}
}

// Truncate drops items beyond limit; some backends ignore the page size.
func Truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
