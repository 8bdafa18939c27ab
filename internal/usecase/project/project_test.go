package project

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

func setupTestUsecase(t *testing.T) (*crud.UseCase[portfolio.Project], *crudtest.MockRepository[portfolio.Project], *crudtest.MockRepository[portfolio.Category]) {
	projects := new(crudtest.MockRepository[portfolio.Project])
	categories := new(crudtest.MockRepository[portfolio.Category])
	return New(projects, categories, zaptest.NewLogger(t)), projects, categories
}

func validProject() portfolio.Project {
	return portfolio.Project{
		Name:        "portfolio",
		Description: "personal site",
		GithubURL:   "https://github.com/octocat/portfolio",
		IDCategory:  "c-1",
	}
}

// ==================== VALIDATION TESTS ====================

func TestCreate_GithubURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		message string
	}{
		{"valid", "https://github.com/octocat/hello-world", ""},
		{"empty", "", "githubUrl empty"},
		{"other host", "https://gitlab.com/octocat/hello-world", "the url provided is not a valid github url"},
		{"owner only", "https://github.com/octocat", "the url provided is not a valid github url"},
		{"not a url", "github.com/octocat/hello", "the url provided is not a valid github url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			p.GithubURL = tt.url

			_, invalid := NewValidator().Create(p).Resolve()
			if tt.message == "" {
				assert.Nil(t, invalid)
				return
			}
			require.NotNil(t, invalid)
			assert.Equal(t, []crud.FieldError{{Field: "githubUrl", Message: tt.message}}, invalid.Errors)
		})
	}
}

func TestCreate_AccumulatesEmptyFields(t *testing.T) {
	_, invalid := NewValidator().Create(portfolio.Project{GithubURL: "nope"}).Resolve()

	require.NotNil(t, invalid)
	require.Len(t, invalid.Errors, 4)
	assert.Equal(t, "name", invalid.Errors[0].Field)
	assert.Equal(t, "description", invalid.Errors[1].Field)
	assert.Equal(t, "idCategory", invalid.Errors[2].Field)
	assert.Equal(t, "githubUrl", invalid.Errors[3].Field)
}

// ==================== USE CASE TESTS ====================

func TestCreate_CategoryMissing(t *testing.T) {
	uc, projects, categories := setupTestUsecase(t)
	ctx := context.Background()

	categories.On("GetByID", ctx, "c-1").Return(nil, nil)

	resp := uc.Create(ctx, NewValidator().Create(validProject()))

	assert.Equal(t, crud.StatusResourceError, resp.StatusCode())
	assert.Equal(t, crud.ErrorPayload{Message: "category does not exist"}, resp.Body())
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_CategoryLookupFails(t *testing.T) {
	uc, projects, categories := setupTestUsecase(t)
	ctx := context.Background()

	categories.On("GetByID", ctx, "c-1").Return(nil, errors.New("db down"))

	resp := uc.Create(ctx, NewValidator().Create(validProject()))

	assert.Equal(t, crud.StatusSystemError, resp.StatusCode())
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Success(t *testing.T) {
	uc, projects, categories := setupTestUsecase(t)
	ctx := context.Background()
	created := validProject().WithID("p-1")

	categories.On("GetByID", ctx, "c-1").Return(&portfolio.Category{ID: "c-1"}, nil)
	projects.On("Create", ctx, validProject()).Return(created, nil)

	resp := uc.Create(ctx, NewValidator().Create(validProject()))

	assert.Equal(t, crud.StatusCreated, resp.StatusCode())
	assert.Equal(t, created, resp.Body())
	projects.AssertExpectations(t)
}

func TestUpdate_CategoryMissing(t *testing.T) {
	uc, projects, categories := setupTestUsecase(t)
	ctx := context.Background()
	item := validProject().WithID("p-1")

	projects.On("GetByID", ctx, "p-1").Return(&item, nil)
	categories.On("GetByID", ctx, "c-1").Return(nil, nil)

	resp := uc.Update(ctx, NewValidator().Update(item))

	assert.Equal(t, crud.StatusResourceError, resp.StatusCode())
	projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
