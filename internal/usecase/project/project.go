package project

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/crud"
	apperrors "portfolio-service/pkg/errors"
)

// ItemName is the name used in messages about projects.
const ItemName = "project"

var githubRepoRegex = regexp.MustCompile(`^https://github\.com/[^/\s]+/[^/\s]+`)

// Repository is the storage contract for projects.
type Repository = crud.Repository[portfolio.Project]

// CategoryFinder looks up the category a project belongs to.
type CategoryFinder interface {
	GetByID(ctx context.Context, id string) (*portfolio.Category, error)
}

// Rules validates project fields.
type Rules struct {
	validate *validator.Validate
}

// NewRules creates the project field rules.
func NewRules() Rules {
	return Rules{validate: validator.New()}
}

// ValidateCreate implements crud.FieldRules.
func (r Rules) ValidateCreate(p portfolio.Project) (portfolio.Project, []crud.FieldError) {
	errs := crud.ValidateEmptyFields(p, "id", "githubUrl")
	return p, r.validateGithubURL(p.GithubURL, errs)
}

// ValidateUpdate implements crud.FieldRules.
func (r Rules) ValidateUpdate(p portfolio.Project) (portfolio.Project, []crud.FieldError) {
	errs := crud.ValidateEmptyFields(p, "githubUrl")
	return p, r.validateGithubURL(p.GithubURL, errs)
}

func (r Rules) validateGithubURL(url string, errs []crud.FieldError) []crud.FieldError {
	if url == "" {
		return append(errs, crud.FieldError{Field: "githubUrl", Message: "githubUrl empty"})
	}
	if err := r.validate.Var(url, "url"); err != nil || !githubRepoRegex.MatchString(url) {
		return append(errs, crud.FieldError{Field: "githubUrl", Message: "the url provided is not a valid github url"})
	}
	return errs
}

// NewValidator creates the request validator for projects.
func NewValidator() crud.Validator[portfolio.Project] {
	return crud.NewValidator[portfolio.Project](NewRules())
}

// New creates the project use case. Creates and updates are rejected when the
// referenced category does not exist.
func New(repo Repository, categories CategoryFinder, log *zap.Logger) *crud.UseCase[portfolio.Project] {
	check := categoryExists(categories)
	return crud.New[portfolio.Project](repo, ItemName, log,
		crud.WithCreateCheck(check),
		crud.WithUpdateCheck(check),
	)
}

func categoryExists(categories CategoryFinder) crud.Check[portfolio.Project] {
	return func(ctx context.Context, p portfolio.Project, _ *portfolio.Project) error {
		found, err := categories.GetByID(ctx, p.IDCategory)
		if err != nil {
			return fmt.Errorf("failed to find category %s: %w", p.IDCategory, err)
		}
		if found == nil {
			return apperrors.NewNotFoundError("category", "category does not exist")
		}
		return nil
	}
}
