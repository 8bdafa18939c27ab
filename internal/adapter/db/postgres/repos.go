package postgres

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"portfolio-service/internal/domain/portfolio"
)

// CategoryRepo stores categories.
type CategoryRepo = DocumentRepo[portfolio.Category, CategorySchema]

// ProjectRepo stores projects.
type ProjectRepo = DocumentRepo[portfolio.Project, ProjectSchema]

// PostContentRepo stores the translated bodies of posts.
type PostContentRepo = DocumentRepo[portfolio.PostContent, PostContentSchema]

// NewCategoryRepo creates a category repository.
func NewCategoryRepo(db *gorm.DB, log *zap.Logger) *CategoryRepo {
	return newDocumentRepo(db, log, "category", categoryToModel, categoryToEntity)
}

// NewProjectRepo creates a project repository.
func NewProjectRepo(db *gorm.DB, log *zap.Logger) *ProjectRepo {
	return newDocumentRepo(db, log, "project", projectToModel, projectToEntity)
}

// NewPostContentRepo creates a post content repository.
func NewPostContentRepo(db *gorm.DB, log *zap.Logger) *PostContentRepo {
	return newDocumentRepo(db, log, "post content", postContentToModel, postContentToEntity)
}

// SkillRepo stores skills and groups them by category.
type SkillRepo struct {
	*DocumentRepo[portfolio.Skill, SkillSchema]
}

// NewSkillRepo creates a skill repository.
func NewSkillRepo(db *gorm.DB, log *zap.Logger) *SkillRepo {
	return &SkillRepo{DocumentRepo: newDocumentRepo(db, log, "skill", skillToModel, skillToEntity)}
}

type skillRow struct {
	CategoryID    string
	CategoryName  string
	CategoryColor string
	SkillID       string
	SkillName     string
}

// SkillsByCategory returns every category that has skills, ordered by
// category name, with its skills ordered by name.
func (r *SkillRepo) SkillsByCategory(ctx context.Context) ([]portfolio.SkillsByCategory, error) {
	var rows []skillRow
	err := r.db.WithContext(ctx).
		Table("skills").
		Select("categories.id AS category_id, categories.name AS category_name, categories.color AS category_color, skills.id AS skill_id, skills.name AS skill_name").
		Joins("JOIN categories ON categories.id = skills.id_category").
		Order("categories.name, categories.id, skills.name").
		Scan(&rows).Error
	if err != nil {
		r.log.Error("failed to group skills by category", zap.Error(err))
		return nil, fmt.Errorf("failed to group skills by category: %w", err)
	}

	groups := make([]portfolio.SkillsByCategory, 0)
	var current string
	for _, row := range rows {
		if len(groups) == 0 || row.CategoryID != current {
			current = row.CategoryID
			groups = append(groups, portfolio.SkillsByCategory{
				Name:   row.CategoryName,
				Color:  row.CategoryColor,
				Skills: []portfolio.SkillSummary{},
			})
		}
		last := &groups[len(groups)-1]
		last.Skills = append(last.Skills, portfolio.SkillSummary{ID: row.SkillID, Name: row.SkillName})
	}
	return groups, nil
}

// PostRepo stores posts. The published date is set once on create.
type PostRepo struct {
	*DocumentRepo[portfolio.Post, PostSchema]
}

// NewPostRepo creates a post repository.
func NewPostRepo(db *gorm.DB, log *zap.Logger) *PostRepo {
	return &PostRepo{DocumentRepo: newDocumentRepo(db, log, "post", postToModel, postToEntity, "published_date")}
}

// GetBySlug returns nil, nil when no post has slug.
func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (*portfolio.Post, error) {
	return r.first(ctx, "slug = ?", slug)
}

// UserRepo stores accounts.
type UserRepo struct {
	*DocumentRepo[portfolio.User, UserSchema]
}

// NewUserRepo creates a user repository.
func NewUserRepo(db *gorm.DB, log *zap.Logger) *UserRepo {
	return &UserRepo{DocumentRepo: newDocumentRepo(db, log, "user", userToModel, userToEntity)}
}

// GetByEmail returns nil, nil when no user has email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*portfolio.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(email))
}

// AutoMigrate creates or updates every table.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Schemas()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
