package skill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/crud"
	"portfolio-service/internal/usecase/crud/crudtest"
)

// MockRepository adds SkillsByCategory to the generic repository mock
type MockRepository struct {
	crudtest.MockRepository[portfolio.Skill]
}

func (m *MockRepository) SkillsByCategory(ctx context.Context) ([]portfolio.SkillsByCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portfolio.SkillsByCategory), args.Error(1)
}

func setupTestUsecase(t *testing.T) (*Usecase, *MockRepository, *crudtest.MockRepository[portfolio.Category]) {
	skills := new(MockRepository)
	categories := new(crudtest.MockRepository[portfolio.Category])
	return New(skills, categories, zaptest.NewLogger(t)), skills, categories
}

func TestValidator_Rules(t *testing.T) {
	_, invalid := NewValidator().Create(portfolio.Skill{Name: "Go"}).Resolve()
	require.NotNil(t, invalid)
	assert.Equal(t, []crud.FieldError{{Field: "idCategory", Message: "idCategory empty"}}, invalid.Errors)

	_, invalid = NewValidator().Update(portfolio.Skill{Name: "Go", IDCategory: "c-1"}).Resolve()
	require.NotNil(t, invalid)
	assert.Equal(t, []crud.FieldError{{Field: "id", Message: "id empty"}}, invalid.Errors)
}

func TestCreate_CategoryMustExist(t *testing.T) {
	uc, skills, categories := setupTestUsecase(t)
	ctx := context.Background()
	item := portfolio.Skill{Name: "Go", IDCategory: "c-404"}

	categories.On("GetByID", ctx, "c-404").Return(nil, nil)

	resp := uc.Create(ctx, NewValidator().Create(item))

	assert.Equal(t, crud.StatusResourceError, resp.StatusCode())
	assert.Equal(t, crud.ErrorPayload{Message: "category does not exist"}, resp.Body())
	skills.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Success(t *testing.T) {
	uc, skills, categories := setupTestUsecase(t)
	ctx := context.Background()
	item := portfolio.Skill{Name: "Go", IDCategory: "c-1"}

	categories.On("GetByID", ctx, "c-1").Return(&portfolio.Category{ID: "c-1"}, nil)
	skills.On("Create", ctx, item).Return(item.WithID("s-1"), nil)

	resp := uc.Create(ctx, NewValidator().Create(item))

	assert.Equal(t, crud.StatusCreated, resp.StatusCode())
	assert.Equal(t, item.WithID("s-1"), resp.Body())
}

func TestGetSkillsByCategory(t *testing.T) {
	uc, skills, _ := setupTestUsecase(t)
	ctx := context.Background()
	groups := []portfolio.SkillsByCategory{
		{Name: "backend", Color: "#000", Skills: []portfolio.SkillSummary{{ID: "s-1", Name: "Go"}}},
	}

	skills.On("SkillsByCategory", ctx).Return(groups, nil)

	resp := uc.GetSkillsByCategory(ctx)

	assert.Equal(t, crud.StatusOK, resp.StatusCode())
	assert.Equal(t, groups, resp.Body())
}

func TestGetSkillsByCategory_Empty(t *testing.T) {
	uc, skills, _ := setupTestUsecase(t)
	ctx := context.Background()

	skills.On("SkillsByCategory", ctx).Return(nil, nil)

	resp := uc.GetSkillsByCategory(ctx)

	assert.Equal(t, crud.StatusOK, resp.StatusCode())
	assert.Equal(t, []portfolio.SkillsByCategory{}, resp.Body())
}

func TestGetSkillsByCategory_Error(t *testing.T) {
	uc, skills, _ := setupTestUsecase(t)
	ctx := context.Background()

	skills.On("SkillsByCategory", ctx).Return(nil, errors.New("aggregate failed"))

	resp := uc.GetSkillsByCategory(ctx)

	assert.Equal(t, crud.StatusSystemError, resp.StatusCode())
	assert.Equal(t, crud.ErrorPayload{Message: "system error"}, resp.Body())
}
