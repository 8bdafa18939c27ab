package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-service/internal/usecase/crud"
	"portfolio-service/pkg/logger"
)

// Item is an entity served by CRUDHandler.
type Item[T any] interface {
	crud.Entity
	WithID(id string) T
}

// CRUDUsecase is the use case behind CRUDHandler.
type CRUDUsecase[T crud.Entity] interface {
	Create(ctx context.Context, req crud.Request[crud.CreateCommand[T]]) crud.Response
	Get(ctx context.Context, req crud.Request[crud.GetCommand[T]]) crud.Response
	GetByID(ctx context.Context, req crud.Request[crud.GetByIDCommand]) crud.Response
	Update(ctx context.Context, req crud.Request[crud.UpdateCommand[T]]) crud.Response
	Delete(ctx context.Context, req crud.Request[crud.DeleteCommand]) crud.Response
}

// CRUDHandler handles the five CRUD routes of one entity.
type CRUDHandler[T Item[T]] struct {
	uc        CRUDUsecase[T]
	validator crud.Validator[T]
	log       *zap.Logger
}

// NewCRUDHandler creates a new CRUDHandler instance
func NewCRUDHandler[T Item[T]](uc CRUDUsecase[T], validator crud.Validator[T], log *zap.Logger) *CRUDHandler[T] {
	return &CRUDHandler[T]{uc: uc, validator: validator, log: log}
}

// Register mounts the routes on g. Mutating routes run behind guard.
func (h *CRUDHandler[T]) Register(g *gin.RouterGroup, guard gin.HandlerFunc) {
	g.GET("", h.Get)
	g.GET("/:id", h.GetByID)
	g.POST("", guard, h.Create)
	g.PUT("/:id", guard, h.Update)
	g.DELETE("/:id", guard, h.Delete)
}

// Create handles POST /
func (h *CRUDHandler[T]) Create(c *gin.Context) {
	var item T
	if !bindBody(c, &item) {
		return
	}
	respond(c, h.uc.Create(c.Request.Context(), h.validator.Create(item)))
}

// Get handles GET / with entity fields as equality filters plus limit, page
// and orderBy.
func (h *CRUDHandler[T]) Get(c *gin.Context) {
	var filters T
	if err := c.ShouldBindQuery(&filters); err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid list query", zap.Error(err))
		respond(c, crud.NewFailure(crud.StatusBadRequest, []crud.FieldError{{Field: "request", Message: "query is not valid"}}))
		return
	}

	page := queryInt(c, "page")
	if page == nil {
		page = queryInt(c, "currentPage")
	}

	req := h.validator.Get(filters, queryInt(c, "limit"), page, c.Query("orderBy"))
	respond(c, h.uc.Get(c.Request.Context(), req))
}

// GetByID handles GET /:id
func (h *CRUDHandler[T]) GetByID(c *gin.Context) {
	respond(c, h.uc.GetByID(c.Request.Context(), h.validator.GetByID(c.Param("id"))))
}

// Update handles PUT /:id. The id in the path wins over any id in the body.
func (h *CRUDHandler[T]) Update(c *gin.Context) {
	var item T
	if !bindBody(c, &item) {
		return
	}
	item = item.WithID(c.Param("id"))
	respond(c, h.uc.Update(c.Request.Context(), h.validator.Update(item)))
}

// Delete handles DELETE /:id
func (h *CRUDHandler[T]) Delete(c *gin.Context) {
	respond(c, h.uc.Delete(c.Request.Context(), h.validator.Delete(c.Param("id"))))
}

// respond writes the envelope as is.
func respond(c *gin.Context, resp crud.Response) {
	c.JSON(resp.StatusCode(), resp.Body())
}

// bindBody decodes the JSON body into dst and writes a 400 envelope when it
// cannot.
func bindBody(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respond(c, crud.NewFailure(crud.StatusBadRequest, []crud.FieldError{{Field: "request", Message: "request body is not valid json"}}))
		return false
	}
	return true
}

// queryInt returns nil when the parameter is absent or not a number.
func queryInt(c *gin.Context, key string) *int {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
