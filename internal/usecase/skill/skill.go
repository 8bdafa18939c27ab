package skill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/crud"
	apperrors "portfolio-service/pkg/errors"
)

// ItemName is the name used in messages about skills.
const ItemName = "skill"

// Repository is the storage contract for skills.
type Repository interface {
	crud.Repository[portfolio.Skill]
	// SkillsByCategory groups every skill under its category, ordered by
	// category name.
	SkillsByCategory(ctx context.Context) ([]portfolio.SkillsByCategory, error)
}

// CategoryFinder looks up the category a skill belongs to.
type CategoryFinder interface {
	GetByID(ctx context.Context, id string) (*portfolio.Category, error)
}

// Rules validates skill fields.
type Rules struct{}

// ValidateCreate implements crud.FieldRules.
func (Rules) ValidateCreate(s portfolio.Skill) (portfolio.Skill, []crud.FieldError) {
	return s, crud.ValidateEmptyFields(s, "id")
}

// ValidateUpdate implements crud.FieldRules.
func (Rules) ValidateUpdate(s portfolio.Skill) (portfolio.Skill, []crud.FieldError) {
	return s, crud.ValidateEmptyFields(s)
}

// NewValidator creates the request validator for skills.
func NewValidator() crud.Validator[portfolio.Skill] {
	return crud.NewValidator[portfolio.Skill](Rules{})
}

// Usecase adds the grouped skill listing to the generic skill use case.
type Usecase struct {
	*crud.UseCase[portfolio.Skill]
	repo Repository
	log  *zap.Logger
}

// New creates the skill use case. Creates and updates are rejected when the
// referenced category does not exist.
func New(repo Repository, categories CategoryFinder, log *zap.Logger) *Usecase {
	check := categoryExists(categories)
	return &Usecase{
		UseCase: crud.New[portfolio.Skill](repo, ItemName, log,
			crud.WithCreateCheck(check),
			crud.WithUpdateCheck(check),
		),
		repo: repo,
		log:  log,
	}
}

// GetSkillsByCategory lists every category that has skills, with its skills.
func (uc *Usecase) GetSkillsByCategory(ctx context.Context) crud.Response {
	groups, err := uc.repo.SkillsByCategory(ctx)
	if err != nil {
		return crud.Fail(ctx, uc.log, "skills by category", err)
	}
	if groups == nil {
		groups = []portfolio.SkillsByCategory{}
	}
	return crud.NewSuccess(crud.StatusOK, groups)
}

func categoryExists(categories CategoryFinder) crud.Check[portfolio.Skill] {
	return func(ctx context.Context, s portfolio.Skill, _ *portfolio.Skill) error {
		found, err := categories.GetByID(ctx, s.IDCategory)
		if err != nil {
			return fmt.Errorf("failed to find category %s: %w", s.IDCategory, err)
		}
		if found == nil {
			return apperrors.NewNotFoundError("category", "category does not exist")
		}
		return nil
	}
}
