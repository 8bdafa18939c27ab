package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portfolio-service/cmd/api/infrastructure"
	"portfolio-service/internal/adapter/auth"
	"portfolio-service/internal/adapter/cache"
	"portfolio-service/internal/adapter/db/postgres"
	"portfolio-service/internal/adapter/gin/handler"
	"portfolio-service/internal/adapter/gin/middleware"
	"portfolio-service/internal/adapter/gin/router"
	"portfolio-service/internal/adapter/repository/cached"
	"portfolio-service/internal/config"
	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/category"
	"portfolio-service/internal/usecase/crud"
	"portfolio-service/internal/usecase/post"
	"portfolio-service/internal/usecase/postcontent"
	"portfolio-service/internal/usecase/project"
	"portfolio-service/internal/usecase/skill"
	"portfolio-service/internal/usecase/user"
	redisclient "portfolio-service/pkg/redis"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Router      *gin.Engine
}

// Repositories are the storage adapters behind the use cases.
type Repositories struct {
	Categories   crud.Repository[portfolio.Category]
	Projects     crud.Repository[portfolio.Project]
	Skills       skill.Repository
	Posts        post.Repository
	PostContents crud.Repository[portfolio.PostContent]
	Users        user.Repository
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		_ = infrastructure.CloseDatabase(db)
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	var client redis.UniversalClient
	if rdb != nil {
		client = rdb.Client
	}

	repos := NewRepositories(db, client, time.Duration(cfg.Redis.CacheTTL)*time.Second, l)
	tokens := auth.NewJWT(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	var limiter *middleware.RateLimiter
	if client != nil {
		limiter = middleware.NewRateLimiter(client, middleware.RateLimiterConfig{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.BurstCapacity,
		}, l)
	}

	r := router.SetupRouter(NewHandlers(repos, tokens, l), limiter, tokens, router.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SwaggerFile:    cfg.App.SwaggerFile,
		ServiceName:    cfg.Logger.ServiceName,
	}, l)

	return &Container{
		Config:      cfg,
		Logger:      l,
		DB:          db,
		RedisClient: rdb,
		Router:      r,
	}, nil
}

// NewRepositories builds the PostgreSQL repositories. When client is not nil,
// every repository except users is fronted by a Redis cache with the given TTL.
func NewRepositories(db *gorm.DB, client redis.UniversalClient, ttl time.Duration, l *zap.Logger) Repositories {
	return Repositories{
		Categories:   cached.New[portfolio.Category](postgres.NewCategoryRepo(db, l), newCache[portfolio.Category](client, category.ItemName, ttl, l), category.ItemName, l),
		Projects:     cached.New[portfolio.Project](postgres.NewProjectRepo(db, l), newCache[portfolio.Project](client, project.ItemName, ttl, l), project.ItemName, l),
		Skills:       cached.NewSkillRepository(postgres.NewSkillRepo(db, l), newCache[portfolio.Skill](client, skill.ItemName, ttl, l), l),
		Posts:        cached.NewPostRepository(postgres.NewPostRepo(db, l), newCache[portfolio.Post](client, post.ItemName, ttl, l), l),
		PostContents: cached.New[portfolio.PostContent](postgres.NewPostContentRepo(db, l), newCache[portfolio.PostContent](client, "post_content", ttl, l), postcontent.ItemName, l),
		Users:        postgres.NewUserRepo(db, l),
	}
}

// newCache returns a nil interface when Redis is off so the cached
// repositories skip caching.
func newCache[T crud.Entity](client redis.UniversalClient, prefix string, ttl time.Duration, l *zap.Logger) cache.Cache[T] {
	if client == nil {
		return nil
	}
	return cache.NewRedisCache[T](client, prefix, ttl, l)
}

// NewHandlers wires the use cases and their HTTP handlers.
func NewHandlers(repos Repositories, tokens *auth.JWT, l *zap.Logger) router.Handlers {
	categories := category.New(repos.Categories, l)
	projects := project.New(repos.Projects, repos.Categories, l)
	skills := skill.New(repos.Skills, repos.Categories, l)
	posts := post.New(repos.Posts, repos.PostContents, l)
	contents := postcontent.New(repos.PostContents, repos.Posts, l)
	users := user.New(repos.Users, tokens, l)

	return router.Handlers{
		Categories:   handler.NewCRUDHandler[portfolio.Category](categories, category.NewValidator(), l),
		Projects:     handler.NewCRUDHandler[portfolio.Project](projects, project.NewValidator(), l),
		Skills:       handler.NewCRUDHandler[portfolio.Skill](skills, skill.NewValidator(), l),
		Posts:        handler.NewCRUDHandler[portfolio.Post](posts, post.NewValidator(time.Now), l),
		PostContents: handler.NewCRUDHandler[portfolio.PostContent](contents, postcontent.NewValidator(), l),
		SkillExtras:  handler.NewSkillHandler(skills),
		PostExtras:   handler.NewPostHandler(posts),
		Users:        handler.NewUserHandler(users, user.NewValidator(), l),
	}
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
