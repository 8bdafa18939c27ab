package query

// Results is one page of a list query.
type Results[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// NewResults builds a page of results, computing the total number of pages
// from the number of records matching the query.
func NewResults[T any](data []T, page, limit int, total int64) Results[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return Results[T]{
		Data:        data,
		CurrentPage: page,
		TotalPages:  totalPages,
	}
}
