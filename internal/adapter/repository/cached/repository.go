package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"portfolio-service/internal/adapter/cache"
	"portfolio-service/internal/domain/query"
	"portfolio-service/internal/usecase/crud"
)

// Repository implements crud.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
// Lists always go to the database.
type Repository[T crud.Entity] struct {
	dbRepo crud.Repository[T]
	cache  cache.Cache[T]
	name   string
	log    *zap.Logger
	group  singleflight.Group
}

// New creates a cached repository. A nil cache disables caching.
func New[T crud.Entity](dbRepo crud.Repository[T], c cache.Cache[T], name string, log *zap.Logger) *Repository[T] {
	return &Repository[T]{
		dbRepo: dbRepo,
		cache:  c,
		name:   name,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *Repository[T]) Create(ctx context.Context, item T) (T, error) {
	return r.dbRepo.Create(ctx, item)
}

// Get delegates to the DB repository.
func (r *Repository[T]) Get(ctx context.Context, filters query.Filters[T]) (query.Results[T], error) {
	return r.dbRepo.Get(ctx, filters)
}

// GetByID retrieves an item using the cache-aside pattern.
func (r *Repository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.String("item", r.name), zap.String("id", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	// One database read per id while a miss is in flight.
	result, err, _ := r.group.Do(r.name+":"+id, func() (any, error) {
		if r.cache != nil {
			if cached, err := r.cache.Get(ctx, id); err == nil && cached != nil {
				return cached, nil
			}
		}

		item, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if item != nil && r.cache != nil {
			if err := r.cache.Set(ctx, *item); err != nil {
				r.log.Warn("failed to cache item", zap.String("item", r.name), zap.String("id", id), zap.Error(err))
			}
		}
		return item, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*T), nil
}

// Update updates the item in DB and invalidates the cache.
func (r *Repository[T]) Update(ctx context.Context, item T) (T, error) {
	updated, err := r.dbRepo.Update(ctx, item)
	if err != nil {
		return updated, err
	}
	r.invalidate(ctx, "update", item.GetID())
	return updated, nil
}

// Delete deletes the item from DB and invalidates the cache.
func (r *Repository[T]) Delete(ctx context.Context, id string) (*T, error) {
	deleted, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, "delete", id)
	return deleted, nil
}

func (r *Repository[T]) invalidate(ctx context.Context, op, id string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache after "+op, zap.String("item", r.name), zap.String("id", id), zap.Error(err))
	}
}
