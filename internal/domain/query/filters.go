package query

import "math"

const (
	// DefaultLimit is the page size used when a request does not supply one.
	DefaultLimit = 10
	// MaxLimit is the largest page size a request may ask for.
	MaxLimit = 100
	// DefaultPage is the page used when a request does not supply one.
	DefaultPage = 1
	// MaxPage is the largest page whose offset fits in an int at MaxLimit.
	MaxPage = math.MaxInt / MaxLimit
)

// Filters describes a list query: equality constraints, pagination and ordering.
// Zero-valued fields of Filters.Filters place no constraint on that field.
type Filters[T any] struct {
	Filters T         `json:"filters"`
	Limit   int       `json:"limit"`
	Page    int       `json:"page"`
	OrderBy []OrderBy `json:"orderBy"`
}

// Params is a possibly incomplete Filters, as assembled from a request.
// A nil field means the value was missing or could not be parsed.
type Params[T any] struct {
	Filters *T
	Limit   *int
	Page    *int
	OrderBy []OrderBy
}

// NormalizeFilters fills the defaults for every missing field of p.
func NormalizeFilters[T any](p Params[T]) Filters[T] {
	var f Filters[T]

	if p.Filters != nil {
		f.Filters = *p.Filters
	}

	if p.Limit != nil {
		f.Limit = *p.Limit
	} else {
		f.Limit = DefaultLimit
	}

	if p.Page != nil {
		f.Page = *p.Page
	} else {
		f.Page = DefaultPage
	}

	if p.OrderBy != nil {
		f.OrderBy = p.OrderBy
	} else {
		f.OrderBy = []OrderBy{}
	}

	return f
}

// Params returns f as a fully populated Params.
func (f Filters[T]) Params() Params[T] {
	filters := f.Filters
	limit := f.Limit
	page := f.Page
	return Params[T]{
		Filters: &filters,
		Limit:   &limit,
		Page:    &page,
		OrderBy: f.OrderBy,
	}
}

// Offset returns the number of records to skip for the current page.
func (f Filters[T]) Offset() int {
	if f.Page <= 1 || f.Limit <= 0 {
		return 0
	}
	// Saturate rather than wrap; a huge offset yields an empty page.
	if f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}
