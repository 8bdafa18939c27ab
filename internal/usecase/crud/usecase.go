package crud

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "portfolio-service/pkg/errors"
	"portfolio-service/pkg/logger"
)

// Check is a precondition run before a mutation. existing is the stored item
// for updates and nil for creates. A returned pkg/errors value selects the
// failure status; any other error is reported as a system error.
type Check[T any] func(ctx context.Context, item T, existing *T) error

// Option configures a UseCase.
type Option[T Entity] func(*UseCase[T])

// WithCreateCheck adds a precondition run before every create.
func WithCreateCheck[T Entity](check Check[T]) Option[T] {
	return func(uc *UseCase[T]) {
		uc.createChecks = append(uc.createChecks, check)
	}
}

// WithUpdateCheck adds a precondition run before every update, after the
// item has been found.
func WithUpdateCheck[T Entity](check Check[T]) Option[T] {
	return func(uc *UseCase[T]) {
		uc.updateChecks = append(uc.updateChecks, check)
	}
}

// UseCase executes the five CRUD operations for T against a Repository and
// reports every outcome as a Response.
type UseCase[T Entity] struct {
	repo         Repository[T]
	itemName     string
	log          *zap.Logger
	createChecks []Check[T]
	updateChecks []Check[T]
}

// New creates a use case. itemName is used in messages such as
// "category does not exist".
func New[T Entity](repo Repository[T], itemName string, log *zap.Logger, opts ...Option[T]) *UseCase[T] {
	uc := &UseCase[T]{repo: repo, itemName: itemName, log: log}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// ItemName returns the name used in messages about T.
func (uc *UseCase[T]) ItemName() string {
	return uc.itemName
}

// Create stores a validated item.
func (uc *UseCase[T]) Create(ctx context.Context, req Request[CreateCommand[T]]) Response {
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return badRequest(invalid)
	}

	for _, check := range uc.createChecks {
		if err := check(ctx, cmd.Item, nil); err != nil {
			return uc.fail(ctx, "create", err)
		}
	}

	created, err := uc.repo.Create(ctx, cmd.Item)
	if err != nil {
		return uc.fail(ctx, "create", err)
	}

	uc.log.Info(uc.itemName+" created", zap.String("id", created.GetID()))
	return NewSuccess(StatusCreated, created)
}

// Get lists one page of items.
func (uc *UseCase[T]) Get(ctx context.Context, req Request[GetCommand[T]]) Response {
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return badRequest(invalid)
	}

	results, err := uc.repo.Get(ctx, cmd.Filters)
	if err != nil {
		return uc.fail(ctx, "get", err)
	}
	return NewSuccess(StatusOK, results)
}

// GetByID fetches a single item.
func (uc *UseCase[T]) GetByID(ctx context.Context, req Request[GetByIDCommand]) Response {
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return badRequest(invalid)
	}

	item, err := uc.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return uc.fail(ctx, "get by id", err)
	}
	if item == nil {
		return uc.notFound()
	}
	return NewSuccess(StatusOK, *item)
}

// Update replaces a stored item. The item must exist.
func (uc *UseCase[T]) Update(ctx context.Context, req Request[UpdateCommand[T]]) Response {
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return badRequest(invalid)
	}

	existing, err := uc.repo.GetByID(ctx, cmd.Item.GetID())
	if err != nil {
		return uc.fail(ctx, "update", err)
	}
	if existing == nil {
		return uc.notFound()
	}

	for _, check := range uc.updateChecks {
		if err := check(ctx, cmd.Item, existing); err != nil {
			return uc.fail(ctx, "update", err)
		}
	}

	updated, err := uc.repo.Update(ctx, cmd.Item)
	if err != nil {
		return uc.fail(ctx, "update", err)
	}

	uc.log.Info(uc.itemName+" updated", zap.String("id", updated.GetID()))
	return NewSuccess(StatusOK, updated)
}

// Delete removes a stored item. The item must exist.
func (uc *UseCase[T]) Delete(ctx context.Context, req Request[DeleteCommand]) Response {
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return badRequest(invalid)
	}

	existing, err := uc.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return uc.fail(ctx, "delete", err)
	}
	if existing == nil {
		return uc.notFound()
	}

	deleted, err := uc.repo.Delete(ctx, cmd.ID)
	if err != nil {
		return uc.fail(ctx, "delete", err)
	}
	if deleted == nil {
		return uc.fail(ctx, "delete", fmt.Errorf("%s %s vanished before delete", uc.itemName, cmd.ID))
	}

	uc.log.Info(uc.itemName+" deleted", zap.String("id", cmd.ID))
	return NewSuccess(StatusOK, *deleted)
}

func (uc *UseCase[T]) notFound() Response {
	return NewFailure(StatusResourceError, uc.itemName+" does not exist")
}

// fail converts err into a Failure. Client errors keep their message; anything
// else is logged and reported as a system error.
func (uc *UseCase[T]) fail(ctx context.Context, op string, err error) Response {
	return Fail(ctx, uc.log, uc.itemName+" "+op, err)
}

// Fail converts err into a Failure for callers outside the generic use case
// that follow the same error policy.
func Fail(ctx context.Context, log *zap.Logger, op string, err error) Response {
	if apperrors.IsClientError(err) {
		logger.WithContext(ctx, log).Warn(op+" rejected", zap.Error(err))
		return NewFailure(apperrors.StatusOf(err), err.Error())
	}
	logger.WithContext(ctx, log).Error(op+" failed", zap.Error(err))
	return NewFailure(StatusSystemError, "system error")
}

func badRequest(invalid *InvalidRequest) Response {
	return NewFailure(StatusBadRequest, invalid.Errors)
}
