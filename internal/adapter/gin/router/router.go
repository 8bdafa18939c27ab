package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"portfolio-service/internal/adapter/gin/handler"
	"portfolio-service/internal/adapter/gin/middleware"
	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/pkg/logger"
)

// Handlers groups every HTTP handler served by the router.
type Handlers struct {
	Categories   *handler.CRUDHandler[portfolio.Category]
	Projects     *handler.CRUDHandler[portfolio.Project]
	Skills       *handler.CRUDHandler[portfolio.Skill]
	Posts        *handler.CRUDHandler[portfolio.Post]
	PostContents *handler.CRUDHandler[portfolio.PostContent]
	SkillExtras  *handler.SkillHandler
	PostExtras   *handler.PostHandler
	Users        *handler.UserHandler
}

// Options configures the cross-cutting parts of the router.
type Options struct {
	AllowedOrigins []string
	SwaggerFile    string // path of the OpenAPI document, empty to disable /swagger
	ServiceName    string
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	h Handlers,
	rateLimiter *middleware.RateLimiter,
	verifier middleware.TokenVerifier,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestID())
	router.Use(logger.AccessLog(log))
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	router.Use(rateLimiter.Middleware())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	if opts.SwaggerFile != "" {
		router.GET("/swagger/*any", swagger(opts.SwaggerFile))
	}

	guard := middleware.Auth(verifier, log)

	// API v1 routes
	v1 := router.Group("/v1")
	{
		h.Categories.Register(v1.Group("/categories"), guard)
		h.Projects.Register(v1.Group("/projects"), guard)

		skills := v1.Group("/skills")
		skills.GET("/by-category", h.SkillExtras.ByCategory)
		h.Skills.Register(skills, guard)

		posts := v1.Group("/posts")
		posts.GET("/:id/content", h.PostExtras.Content)
		h.Posts.Register(posts, guard)

		h.PostContents.Register(v1.Group("/post-contents"), guard)

		users := v1.Group("/users")
		{
			users.POST("", h.Users.Register)
			users.POST("/auth", h.Users.Login)
		}
	}

	return router
}

// swagger serves the OpenAPI document at /swagger/doc.json and the UI under
// the rest of /swagger.
func swagger(file string) gin.HandlerFunc {
	ui := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))
	return func(c *gin.Context) {
		if c.Param("any") == "/doc.json" {
			c.File(file)
			return
		}
		ui.ServeHTTP(c.Writer, c.Request)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposeHeaders: []string{logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
