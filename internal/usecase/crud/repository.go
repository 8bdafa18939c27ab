package crud

import (
	"context"

	"portfolio-service/internal/domain/query"
)

// Repository defines the storage operations the generic use case relies on.
// Implementations are free to pick the backing store; the contract only fixes
// the shapes going in and out.
type Repository[T any] interface {
	Create(ctx context.Context, item T) (T, error)                            // Store a new item and return it with its id
	Get(ctx context.Context, filters query.Filters[T]) (query.Results[T], error) // List one page of items matching filters
	GetByID(ctx context.Context, id string) (*T, error)                       // Fetch an item; nil, nil when absent
	Update(ctx context.Context, item T) (T, error)                            // Replace an item and return the stored version
	Delete(ctx context.Context, id string) (*T, error)                        // Remove an item; nil when nothing was removed
}
