package pagination

import (
	"math"
	"strconv"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// Pagination describes the page that was returned to the caller
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams represents input parameters for pagination
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns default pagination values
func DefaultPagination() *PaginationParams {
	return &PaginationParams{
		Page:    1,
		PerPage: defaultPerPage,
	}
}

// FromQuery builds params from raw query values. The dashboard sends
// "limit" while older clients send "per_page"; both are accepted.
func FromQuery(page, perPage, limit string) *PaginationParams {
	p := DefaultPagination()
	if v, err := strconv.Atoi(page); err == nil {
		p.Page = v
	}
	if v, err := strconv.Atoi(perPage); err == nil {
		p.PerPage = v
	} else if v, err := strconv.Atoi(limit); err == nil {
		p.PerPage = v
	}
	p.Validate()
	return p
}

// Validate ensures pagination parameters are within valid ranges
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
	if p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
}

// Offset calculates the offset for SQL queries
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination creates a new Pagination response
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

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

// Map converts the items of a page while keeping its pagination info
func Map[T, R any](in *PaginatedResult[T], fn func(T) R) *PaginatedResult[R] {
	out := make([]R, 0, len(in.Items))
	for _, item := range in.Items {
		out = append(out, fn(item))
	}
	return &PaginatedResult[R]{Items: out, Pagination: in.Pagination}
}
