package cached

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"portfolio-service/internal/adapter/cache"
	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/crud/crudtest"
)

func setupTestRepo(t *testing.T) (*Repository[portfolio.Category], *crudtest.MockRepository[portfolio.Category], *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := zaptest.NewLogger(t)
	db := new(crudtest.MockRepository[portfolio.Category])
	c := cache.NewRedisCache[portfolio.Category](client, "category", time.Minute, log)
	return New[portfolio.Category](db, c, "category", log), db, mr
}

func TestGetByID_CacheAside(t *testing.T) {
	repo, db, mr := setupTestRepo(t)
	ctx := context.Background()
	item := &portfolio.Category{ID: "c-1", Name: "Backend", Color: "#000000"}

	db.On("GetByID", ctx, "c-1").Return(item, nil).Once()

	first, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, item, first)
	assert.True(t, mr.Exists("category:c-1"))

	second, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, item, second)

	db.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestGetByID_MissIsNotCached(t *testing.T) {
	repo, db, mr := setupTestRepo(t)
	ctx := context.Background()

	db.On("GetByID", ctx, "ghost").Return(nil, nil)

	found, err := repo.GetByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.False(t, mr.Exists("category:ghost"))
}

func TestGetByID_CacheDown(t *testing.T) {
	repo, db, mr := setupTestRepo(t)
	ctx := context.Background()
	item := &portfolio.Category{ID: "c-1", Name: "Backend"}
	mr.Close()

	db.On("GetByID", ctx, "c-1").Return(item, nil)

	found, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, item, found)
}

func TestGetByID_DatabaseError(t *testing.T) {
	repo, db, _ := setupTestRepo(t)
	ctx := context.Background()

	db.On("GetByID", ctx, "c-1").Return(nil, errors.New("db down"))

	_, err := repo.GetByID(ctx, "c-1")
	assert.EqualError(t, err, "db down")
}

func TestUpdateAndDelete_Invalidate(t *testing.T) {
	repo, db, mr := setupTestRepo(t)
	ctx := context.Background()
	item := portfolio.Category{ID: "c-1", Name: "Backend", Color: "#000000"}

	require.NoError(t, mr.Set("category:c-1", `{"id":"c-1","name":"stale","color":"#ffffff"}`))
	db.On("Update", ctx, item).Return(item, nil)

	_, err := repo.Update(ctx, item)
	require.NoError(t, err)
	assert.False(t, mr.Exists("category:c-1"))

	require.NoError(t, mr.Set("category:c-1", `{"id":"c-1","name":"Backend","color":"#000000"}`))
	db.On("Delete", ctx, "c-1").Return(&item, nil)

	deleted, err := repo.Delete(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, &item, deleted)
	assert.False(t, mr.Exists("category:c-1"))
}

func TestUpdate_FailureKeepsCache(t *testing.T) {
	repo, db, mr := setupTestRepo(t)
	ctx := context.Background()
	item := portfolio.Category{ID: "c-1", Name: "Backend"}

	require.NoError(t, mr.Set("category:c-1", `{"id":"c-1","name":"Backend","color":""}`))
	db.On("Update", ctx, item).Return(portfolio.Category{}, errors.New("db down"))

	_, err := repo.Update(ctx, item)
	assert.Error(t, err)
	assert.True(t, mr.Exists("category:c-1"))
}

func TestNilCache_PassesThrough(t *testing.T) {
	db := new(crudtest.MockRepository[portfolio.Category])
	repo := New[portfolio.Category](db, nil, "category", zaptest.NewLogger(t))
	ctx := context.Background()
	item := &portfolio.Category{ID: "c-1"}

	db.On("GetByID", ctx, "c-1").Return(item, nil)
	db.On("Delete", ctx, "c-1").Return(item, nil)
	db.On("Create", ctx, mock.Anything).Return(*item, nil)

	found, err := repo.GetByID(ctx, "c-1")
	require.NoError(t, err)
	assert.Equal(t, item, found)

	_, err = repo.Create(ctx, portfolio.Category{Name: "x"})
	require.NoError(t, err)

	_, err = repo.Delete(ctx, "c-1")
	require.NoError(t, err)
	db.AssertExpectations(t)
}
