// Package query turns request-level filter/sort/page parameters into an
// explicit specification the repository applies in one place, instead of
// chaining ad-hoc conditions per handler.
package query

import "strconv"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	SortRecent   = "recent"
	SortUpcoming = "upcoming"
)

// Spec is a composable description of one list query: filters, ordering and
// page window. The zero value lists the first default-sized page of active
// records.
type Spec struct {
	// Category filters by category name, case-insensitive exact match.
	// Empty means no filtering.
	Category string
	// Sorting is SortRecent, SortUpcoming or anything else for the default
	// creation-descending order. Unknown values fall through, never error.
	Sorting string
	// IncludeDeleted widens the scope to soft-deleted rows for history
	// queries. List endpoints never set it.
	IncludeDeleted bool
	Page           int
	PageSize       int
}

// FromParams builds a Spec from raw query-string values, applying defaults
// and the page-size cap. Malformed numbers fall back to defaults.
func FromParams(category, sorting, page, pageSize string) Spec {
	s := Spec{
		Category: category,
		Sorting:  sorting,
		Page:     1,
		PageSize: DefaultPageSize,
	}
	if n, err := strconv.Atoi(page); err == nil && n > 0 {
		s.Page = n
	}
	if n, err := strconv.Atoi(pageSize); err == nil && n > 0 {
		s.PageSize = n
	}
	if s.PageSize > MaxPageSize {
		s.PageSize = MaxPageSize
	}
	return s
}

func (s Spec) Offset() int {
	return (s.Page - 1) * s.PageSize
}

// TotalPages is the ceiling of count/pageSize; 25 items at page size 10 are 3
// pages, not 2.
func TotalPages(count int64, pageSize int) int64 {
	if pageSize <= 0 {
		return 0
	}
	return (count + int64(pageSize) - 1) / int64(pageSize)
}

// Page is the uniform envelope for list responses.
type Page struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	PageNumber int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int64 `json:"total_pages"`
}

// NewPage wraps items in the list-response envelope for the given spec.
func NewPage(items any, total int64, s Spec) Page {
	return Page{
		Items:      items,
		Total:      total,
		PageNumber: s.Page,
		PageSize:   s.PageSize,
		TotalPages: TotalPages(total, s.PageSize),
	}
}
