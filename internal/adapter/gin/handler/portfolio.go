package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/crud"
	"portfolio-service/internal/usecase/post"
	"portfolio-service/internal/usecase/user"
)

// SkillGrouper lists skills grouped by category.
type SkillGrouper interface {
	GetSkillsByCategory(ctx context.Context) crud.Response
}

// SkillHandler handles the skill routes outside plain CRUD.
type SkillHandler struct {
	uc SkillGrouper
}

// NewSkillHandler creates a new SkillHandler instance
func NewSkillHandler(uc SkillGrouper) *SkillHandler {
	return &SkillHandler{uc: uc}
}

// ByCategory handles GET /v1/skills/by-category
func (h *SkillHandler) ByCategory(c *gin.Context) {
	respond(c, h.uc.GetSkillsByCategory(c.Request.Context()))
}

// ContentReader reads the contents of a post by slug.
type ContentReader interface {
	GetContentBySlug(ctx context.Context, req crud.Request[post.ContentBySlugCommand]) crud.Response
}

// PostHandler handles the post routes outside plain CRUD.
type PostHandler struct {
	uc ContentReader
}

// NewPostHandler creates a new PostHandler instance
func NewPostHandler(uc ContentReader) *PostHandler {
	return &PostHandler{uc: uc}
}

// Content handles GET /v1/posts/:id/content where :id is the post slug.
func (h *PostHandler) Content(c *gin.Context) {
	respond(c, h.uc.GetContentBySlug(c.Request.Context(), post.ValidateContentBySlug(c.Param("id"))))
}

// Accounts registers users and logs them in.
type Accounts interface {
	Register(ctx context.Context, req crud.Request[crud.CreateCommand[portfolio.User]]) crud.Response
	Login(ctx context.Context, req crud.Request[user.LoginCommand]) crud.Response
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc        Accounts
	validator user.Validator
	log       *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc Accounts, validator user.Validator, log *zap.Logger) *UserHandler {
	return &UserHandler{uc: uc, validator: validator, log: log}
}

// LoginRequest represents the HTTP request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /v1/users
func (h *UserHandler) Register(c *gin.Context) {
	var u portfolio.User
	if !bindBody(c, &u) {
		return
	}
	h.log.Info("Gin Register request", zap.String("email", u.Email))
	respond(c, h.uc.Register(c.Request.Context(), h.validator.Register(u)))
}

// Login handles POST /v1/users/auth
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindBody(c, &req) {
		return
	}
	h.log.Info("Gin Login request", zap.String("email", req.Email))
	respond(c, h.uc.Login(c.Request.Context(), h.validator.Login(req.Email, req.Password)))
}
