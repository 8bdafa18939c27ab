// Package crudtest provides testify mocks for the storage contracts used by
// the use-case packages.
package crudtest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio-service/internal/domain/query"
)

// MockRepository is a testify mock satisfying crud.Repository[T].
type MockRepository[T any] struct {
	mock.Mock
}

func (m *MockRepository[T]) Create(ctx context.Context, item T) (T, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockRepository[T]) Get(ctx context.Context, filters query.Filters[T]) (query.Results[T], error) {
	args := m.Called(ctx, filters)
	return args.Get(0).(query.Results[T]), args.Error(1)
}

func (m *MockRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockRepository[T]) Update(ctx context.Context, item T) (T, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(T), args.Error(1)
}

func (m *MockRepository[T]) Delete(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}
