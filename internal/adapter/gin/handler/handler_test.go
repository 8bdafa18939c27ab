package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/domain/query"
	"portfolio-service/internal/usecase/category"
	"portfolio-service/internal/usecase/crud"
	"portfolio-service/internal/usecase/crud/crudtest"
	"portfolio-service/internal/usecase/post"
	"portfolio-service/internal/usecase/user"
)

func setupTest(t *testing.T) (*gin.Engine, *crudtest.MockRepository[portfolio.Category]) {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)
	repo := new(crudtest.MockRepository[portfolio.Category])
	h := NewCRUDHandler[portfolio.Category](category.New(repo, log), category.NewValidator(), log)

	r := gin.New()
	h.Register(r.Group("/categories"), func(c *gin.Context) { c.Next() })
	return r, repo
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// ==================== CREATE TESTS ====================

func TestCreate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, repo := setupTest(t)
		in := portfolio.Category{Name: "Backend", Color: "#1f6feb"}
		repo.On("Create", mock.Anything, in).Return(in.WithID("c-1"), nil)

		w := do(r, http.MethodPost, "/categories", `{"name":"Backend","color":"#1f6feb"}`)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":"c-1","name":"Backend","color":"#1f6feb"}`, w.Body.String())
	})

	t.Run("Validation errors", func(t *testing.T) {
		r, repo := setupTest(t)

		w := do(r, http.MethodPost, "/categories", `{"color":"blue"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":[
			{"field":"name","error":"name empty"},
			{"field":"color","error":"color format is incorrect"}
		]}`, w.Body.String())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		r, _ := setupTest(t)

		w := do(r, http.MethodPost, "/categories", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "request body is not valid json")
	})
}

// ==================== LIST TESTS ====================

func TestGet(t *testing.T) {
	t.Run("Filters and paging from query", func(t *testing.T) {
		r, repo := setupTest(t)
		repo.On("Get", mock.Anything, mock.MatchedBy(func(f query.Filters[portfolio.Category]) bool {
			return f.Filters.Name == "Backend" && f.Limit == 5 && f.Page == 2 &&
				len(f.OrderBy) == 1 && f.OrderBy[0] == query.OrderBy{Field: "name", Direction: query.Descending}
		})).Return(query.NewResults([]portfolio.Category{{ID: "c-1", Name: "Backend"}}, 2, 5, 6), nil)

		w := do(r, http.MethodGet, "/categories?name=Backend&limit=5&page=2&orderBy=name_desc", "")

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(2), body["currentPage"])
		assert.Equal(t, float64(2), body["totalPages"])
		assert.Len(t, body["data"], 1)
		repo.AssertExpectations(t)
	})

	t.Run("currentPage is accepted", func(t *testing.T) {
		r, repo := setupTest(t)
		repo.On("Get", mock.Anything, mock.MatchedBy(func(f query.Filters[portfolio.Category]) bool {
			return f.Page == 3 && f.Limit == query.DefaultLimit
		})).Return(query.NewResults[portfolio.Category](nil, 3, 10, 0), nil)

		w := do(r, http.MethodGet, "/categories?currentPage=3", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":[],"currentPage":3,"totalPages":0}`, w.Body.String())
	})

	t.Run("Every violation is reported", func(t *testing.T) {
		r, repo := setupTest(t)

		w := do(r, http.MethodGet, "/categories?limit=0&page=-1&orderBy=bogus_asc", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"message":[
			{"field":"limit","error":"limit out of range, limit has to be more than 0 and at most 100"},
			{"field":"page","error":"page can not be less than 0"},
			{"field":"bogus","error":"bogus is not an accepted value"}
		]}`, w.Body.String())
		repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}

// ==================== GET BY ID / UPDATE / DELETE TESTS ====================

func TestGetByID_NotFound(t *testing.T) {
	r, repo := setupTest(t)
	repo.On("GetByID", mock.Anything, "c-9").Return(nil, nil)

	w := do(r, http.MethodGet, "/categories/c-9", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"category does not exist"}`, w.Body.String())
}

func TestUpdate_IDComesFromPath(t *testing.T) {
	r, repo := setupTest(t)
	existing := portfolio.Category{ID: "c-1", Name: "Old", Color: "#000"}
	want := portfolio.Category{ID: "c-1", Name: "New", Color: "#fff"}

	repo.On("GetByID", mock.Anything, "c-1").Return(&existing, nil)
	repo.On("Update", mock.Anything, want).Return(want, nil)

	w := do(r, http.MethodPut, "/categories/c-1", `{"id":"other","name":"New","color":"#fff"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"c-1","name":"New","color":"#fff"}`, w.Body.String())
	repo.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	r, repo := setupTest(t)
	item := portfolio.Category{ID: "c-1", Name: "Backend", Color: "#000"}

	repo.On("GetByID", mock.Anything, "c-1").Return(&item, nil)
	repo.On("Delete", mock.Anything, "c-1").Return(&item, nil)

	w := do(r, http.MethodDelete, "/categories/c-1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"c-1","name":"Backend","color":"#000"}`, w.Body.String())
}

func TestRegister_GuardOnlyOnMutations(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := zaptest.NewLogger(t)
	repo := new(crudtest.MockRepository[portfolio.Category])
	h := NewCRUDHandler[portfolio.Category](category.New(repo, log), category.NewValidator(), log)

	r := gin.New()
	h.Register(r.Group("/categories"), func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, crud.ErrorPayload{Message: "unauthorized"})
	})
	repo.On("Get", mock.Anything, mock.Anything).Return(query.NewResults[portfolio.Category](nil, 1, 10, 0), nil)

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/categories", "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/categories", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPut, "/categories/c-1", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodDelete, "/categories/c-1", "").Code)
}

// ==================== EXTRA ROUTE TESTS ====================

type stubSkills struct{ resp crud.Response }

func (s stubSkills) GetSkillsByCategory(context.Context) crud.Response { return s.resp }

func TestSkillHandler_ByCategory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	groups := []portfolio.SkillsByCategory{{Name: "Languages", Color: "#000", Skills: []portfolio.SkillSummary{{ID: "s-1", Name: "Go"}}}}
	r.GET("/skills/by-category", NewSkillHandler(stubSkills{resp: crud.NewSuccess(crud.StatusOK, groups)}).ByCategory)

	w := do(r, http.MethodGet, "/skills/by-category", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"name":"Languages","color":"#000","skills":[{"id":"s-1","name":"Go"}]}]`, w.Body.String())
}

type stubContents struct{ got *crud.Request[post.ContentBySlugCommand] }

func (s stubContents) GetContentBySlug(_ context.Context, req crud.Request[post.ContentBySlugCommand]) crud.Response {
	*s.got = req
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return crud.NewFailure(crud.StatusBadRequest, invalid.Errors)
	}
	return crud.NewSuccess(crud.StatusOK, cmd.Slug)
}

func TestPostHandler_Content(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var got crud.Request[post.ContentBySlugCommand]
	r := gin.New()
	r.GET("/posts/:id/content", NewPostHandler(stubContents{got: &got}).Content)

	w := do(r, http.MethodGet, "/posts/hello-world/content", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `"hello-world"`, w.Body.String())
	assert.True(t, got.IsValid())
}

type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Register(ctx context.Context, req crud.Request[crud.CreateCommand[portfolio.User]]) crud.Response {
	return m.Called(ctx, req).Get(0).(crud.Response)
}

func (m *MockAccounts) Login(ctx context.Context, req crud.Request[user.LoginCommand]) crud.Response {
	return m.Called(ctx, req).Get(0).(crud.Response)
}

func TestUserHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	accounts := new(MockAccounts)
	h := NewUserHandler(accounts, user.NewValidator(), zaptest.NewLogger(t))
	r := gin.New()
	r.POST("/users", h.Register)
	r.POST("/users/auth", h.Login)

	accounts.On("Register", mock.Anything, mock.MatchedBy(func(req crud.Request[crud.CreateCommand[portfolio.User]]) bool {
		cmd, invalid := req.Resolve()
		return invalid == nil && cmd.Item.Email == "grace@example.com"
	})).Return(crud.NewSuccess(crud.StatusCreated, portfolio.UserView{ID: "u-1", Name: "Grace", Email: "grace@example.com"}))

	w := do(r, http.MethodPost, "/users", `{"name":"Grace","email":"Grace@Example.com","password":"longenough"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"u-1","name":"Grace","email":"grace@example.com"}`, w.Body.String())

	accounts.On("Login", mock.Anything, mock.MatchedBy(func(req crud.Request[user.LoginCommand]) bool {
		cmd, invalid := req.Resolve()
		return invalid == nil && cmd.Password == "longenough"
	})).Return(crud.NewFailure(crud.StatusInvalidCredentials, "invalid credentials"))

	w = do(r, http.MethodPost, "/users/auth", `{"email":"grace@example.com","password":"longenough"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"invalid credentials"}`, w.Body.String())
}
