package crud

import (
	"fmt"
	"slices"

	"portfolio-service/internal/domain/query"
	"portfolio-service/pkg/structs"
)

// FieldRules holds the entity-specific checks run on create and update.
// Implementations start from ValidateEmptyFields and append their own errors
// to the same list. They may return a normalized copy of the item.
type FieldRules[T any] interface {
	ValidateCreate(item T) (T, []FieldError)
	ValidateUpdate(item T) (T, []FieldError)
}

// Validator turns raw input into typed request outcomes for entity T.
type Validator[T Entity] struct {
	rules FieldRules[T]
}

// NewValidator creates a validator backed by the given entity rules.
func NewValidator[T Entity](rules FieldRules[T]) Validator[T] {
	return Validator[T]{rules: rules}
}

// ValidateEmptyFields reports one "<field> empty" error for every string
// field of item whose value is empty and whose name is not in exceptions.
// Non-string fields are never reported.
func ValidateEmptyFields(item any, exceptions ...string) []FieldError {
	var errs []FieldError
	for _, f := range structs.Fields(item) {
		if !f.IsString() || slices.Contains(exceptions, f.Name) {
			continue
		}
		if f.Value.Len() == 0 {
			errs = append(errs, FieldError{Field: f.Name, Message: f.Name + " empty"})
		}
	}
	return errs
}

// ValidateEmptyFields is ValidateEmptyFields bound to T.
func (v Validator[T]) ValidateEmptyFields(item T, exceptions ...string) []FieldError {
	return ValidateEmptyFields(item, exceptions...)
}

// Create validates an item about to be stored.
func (v Validator[T]) Create(item T) Request[CreateCommand[T]] {
	item, errs := v.rules.ValidateCreate(item)
	if len(errs) > 0 {
		return Invalid[CreateCommand[T]](errs)
	}
	return Valid(CreateCommand[T]{Item: item})
}

// Update validates a replacement for a stored item. The resulting command
// always carries a non-empty id.
func (v Validator[T]) Update(item T) Request[UpdateCommand[T]] {
	item, errs := v.rules.ValidateUpdate(item)
	if item.GetID() == "" && !hasField(errs, "id") {
		errs = append(errs, idEmpty())
	}
	if len(errs) > 0 {
		return Invalid[UpdateCommand[T]](errs)
	}
	return Valid(UpdateCommand[T]{Item: item})
}

// Delete validates the id of an item to remove.
func (v Validator[T]) Delete(id string) Request[DeleteCommand] {
	if id == "" {
		return Invalid[DeleteCommand]([]FieldError{idEmpty()})
	}
	return Valid(DeleteCommand{ID: id})
}

// GetByID validates the id of an item to fetch.
func (v Validator[T]) GetByID(id string) Request[GetByIDCommand] {
	if id == "" {
		return Invalid[GetByIDCommand]([]FieldError{idEmpty()})
	}
	return Valid(GetByIDCommand{ID: id})
}

// Get validates a list query. A nil limit or page means the value was not
// supplied. Every violation is reported, not only the first.
func (v Validator[T]) Get(filters T, limit, page *int, orderBy string) Request[GetCommand[T]] {
	var errs []FieldError

	if limit != nil && (*limit <= 0 || *limit > query.MaxLimit) {
		errs = append(errs, FieldError{
			Field:   "limit",
			Message: fmt.Sprintf("limit out of range, limit has to be more than 0 and at most %d", query.MaxLimit),
		})
	}
	if page != nil && *page < 0 {
		errs = append(errs, FieldError{Field: "page", Message: "page can not be less than 0"})
	}
	if page != nil && *page > query.MaxPage {
		errs = append(errs, FieldError{Field: "page", Message: fmt.Sprintf("page can not be more than %d", query.MaxPage)})
	}

	orders := query.ParseOrderBy(orderBy)
	for _, o := range orders {
		if !structs.Has(filters, o.Field) {
			errs = append(errs, FieldError{Field: o.Field, Message: o.Field + " is not an accepted value"})
		}
	}

	if len(errs) > 0 {
		return Invalid[GetCommand[T]](errs)
	}

	return Valid(GetCommand[T]{Filters: query.NormalizeFilters(query.Params[T]{
		Filters: &filters,
		Limit:   limit,
		Page:    page,
		OrderBy: orders,
	})})
}

func idEmpty() FieldError {
	return FieldError{Field: "id", Message: "id empty"}
}

func hasField(errs []FieldError, field string) bool {
	return slices.ContainsFunc(errs, func(e FieldError) bool { return e.Field == field })
}
