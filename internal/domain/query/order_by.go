package query

import "strings"

// Direction is the sort direction of an OrderBy entry.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// OrderBy sorts results by a single entity field.
type OrderBy struct {
	Field     string    `json:"field"`
	Direction Direction `json:"direction"`
}

// ParseOrderBy parses a comma separated list of field_direction tokens,
// e.g. "name_asc,age_desc". Tokens that do not split into exactly two parts,
// or whose direction is neither asc nor desc, are dropped. The result is
// never nil.
func ParseOrderBy(raw string) []OrderBy {
	orders := []OrderBy{}
	if raw == "" {
		return orders
	}

	for _, token := range strings.Split(raw, ",") {
		parts := strings.Split(token, "_")
		if len(parts) != 2 {
			continue
		}
		switch dir := Direction(parts[1]); dir {
		case Ascending, Descending:
			orders = append(orders, OrderBy{Field: parts[0], Direction: dir})
		}
	}
	return orders
}

// FormatOrderBy renders orders back into the form accepted by ParseOrderBy.
func FormatOrderBy(orders []OrderBy) string {
	tokens := make([]string, len(orders))
	for i, o := range orders {
		tokens[i] = o.Field + "_" + string(o.Direction)
	}
	return strings.Join(tokens, ",")
}
