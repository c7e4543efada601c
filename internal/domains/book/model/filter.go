package model

import "strings"

type SortField string

const (
	SortByTitle  SortField = "title"
	SortByAuthor SortField = "author"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListFilter holds the listing query parameters.
type ListFilter struct {
	Search    string
	SortBy    SortField
	Direction SortDirection
}

// NewListFilter builds a filter from raw query values.
// Unknown sort keys fall back to title; anything but "desc" sorts ascending.
func NewListFilter(search, sortBy, direction string) ListFilter {
	f := ListFilter{
		Search:    strings.TrimSpace(search),
		SortBy:    SortByTitle,
		Direction: SortAsc,
	}

	if SortField(strings.ToLower(strings.TrimSpace(sortBy))) == SortByAuthor {
		f.SortBy = SortByAuthor
	}
	if SortDirection(strings.ToLower(strings.TrimSpace(direction))) == SortDesc {
		f.Direction = SortDesc
	}

	return f
}

// Normalize re-applies the defaults of NewListFilter to a hand-built filter.
func (f ListFilter) Normalize() ListFilter {
	return NewListFilter(f.Search, string(f.SortBy), string(f.Direction))
}
