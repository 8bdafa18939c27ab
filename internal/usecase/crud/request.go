package crud

import "portfolio-service/internal/domain/query"

// Entity is implemented by every type managed through the CRUD pipeline.
type Entity interface {
	GetID() string
}

// FieldError describes a single rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"error"`
}

// InvalidRequest carries every field error found while validating a request.
// A returned InvalidRequest always holds at least one error.
type InvalidRequest struct {
	Errors []FieldError `json:"errors"`
}

// CreateCommand is a validated item ready to be stored.
type CreateCommand[T any] struct {
	Item T
}

// UpdateCommand is a validated item ready to replace a stored one.
// Item always carries a non-empty id.
type UpdateCommand[T any] struct {
	Item T
}

// DeleteCommand identifies the item to remove.
type DeleteCommand struct {
	ID string
}

// GetByIDCommand identifies the item to fetch.
type GetByIDCommand struct {
	ID string
}

// GetCommand is a validated, normalized list query.
type GetCommand[T any] struct {
	Filters query.Filters[T]
}

// Request is the outcome of validating raw input: either a command C ready to
// execute or an InvalidRequest, never both. The zero value is invalid.
type Request[C any] struct {
	command C
	invalid *InvalidRequest
	valid   bool
}

// Valid wraps a command that passed validation.
func Valid[C any](command C) Request[C] {
	return Request[C]{command: command, valid: true}
}

// Invalid wraps the errors found during validation. An empty error list is
// still reported as invalid.
func Invalid[C any](errs []FieldError) Request[C] {
	if len(errs) == 0 {
		errs = []FieldError{{Field: "request", Message: "request empty"}}
	}
	return Request[C]{invalid: &InvalidRequest{Errors: errs}}
}

// Resolve returns the command, or the InvalidRequest when validation failed.
func (r Request[C]) Resolve() (C, *InvalidRequest) {
	if r.valid {
		return r.command, nil
	}
	var zero C
	if r.invalid == nil {
		return zero, &InvalidRequest{Errors: []FieldError{{Field: "request", Message: "request empty"}}}
	}
	return zero, r.invalid
}

// IsValid reports whether r holds a command.
func (r Request[C]) IsValid() bool {
	return r.valid
}

// Match calls exactly one of onValid or onInvalid and returns its response.
func (r Request[C]) Match(onValid func(C) Response, onInvalid func(*InvalidRequest) Response) Response {
	command, invalid := r.Resolve()
	if invalid != nil {
		return onInvalid(invalid)
	}
	return onValid(command)
}
