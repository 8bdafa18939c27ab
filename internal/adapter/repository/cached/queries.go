package cached

import (
	"context"

	"go.uber.org/zap"

	"portfolio-service/internal/adapter/cache"
	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/post"
	"portfolio-service/internal/usecase/skill"
)

// PostRepository caches posts by id. Slug lookups go to the database.
type PostRepository struct {
	*Repository[portfolio.Post]
	dbRepo post.Repository
}

// NewPostRepository creates a cached post repository.
func NewPostRepository(dbRepo post.Repository, c cache.Cache[portfolio.Post], log *zap.Logger) *PostRepository {
	return &PostRepository{Repository: New[portfolio.Post](dbRepo, c, post.ItemName, log), dbRepo: dbRepo}
}

// GetBySlug delegates to the DB repository.
func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*portfolio.Post, error) {
	return r.dbRepo.GetBySlug(ctx, slug)
}

// SkillRepository caches skills by id. The grouped listing goes to the database.
type SkillRepository struct {
	*Repository[portfolio.Skill]
	dbRepo skill.Repository
}

// NewSkillRepository creates a cached skill repository.
func NewSkillRepository(dbRepo skill.Repository, c cache.Cache[portfolio.Skill], log *zap.Logger) *SkillRepository {
	return &SkillRepository{Repository: New[portfolio.Skill](dbRepo, c, skill.ItemName, log), dbRepo: dbRepo}
}

// SkillsByCategory delegates to the DB repository.
func (r *SkillRepository) SkillsByCategory(ctx context.Context) ([]portfolio.SkillsByCategory, error) {
	return r.dbRepo.SkillsByCategory(ctx)
}
