package postcontent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/domain/query"
	"portfolio-service/internal/usecase/crud"
	apperrors "portfolio-service/pkg/errors"
)

// ItemName is the name used in messages about post contents.
const ItemName = "post content"

// Repository is the storage contract for post contents.
type Repository = crud.Repository[portfolio.PostContent]

// PostFinder looks up the post a content belongs to.
type PostFinder interface {
	GetByID(ctx context.Context, id string) (*portfolio.Post, error)
}

// Rules validates post content fields.
type Rules struct{}

// ValidateCreate implements crud.FieldRules.
func (Rules) ValidateCreate(c portfolio.PostContent) (portfolio.PostContent, []crud.FieldError) {
	errs := crud.ValidateEmptyFields(c, "id", "language")
	return c, validateLanguage(c.Language, errs)
}

// ValidateUpdate implements crud.FieldRules.
func (Rules) ValidateUpdate(c portfolio.PostContent) (portfolio.PostContent, []crud.FieldError) {
	errs := crud.ValidateEmptyFields(c, "language")
	return c, validateLanguage(c.Language, errs)
}

func validateLanguage(l portfolio.Language, errs []crud.FieldError) []crud.FieldError {
	switch {
	case l == portfolio.LanguageNone:
		return append(errs, crud.FieldError{Field: "language", Message: "language empty"})
	case !l.IsValid():
		return append(errs, crud.FieldError{
			Field:   "language",
			Message: "language is not accepted, language must to be " + portfolio.AcceptedLanguages(),
		})
	}
	return errs
}

// NewValidator creates the request validator for post contents.
func NewValidator() crud.Validator[portfolio.PostContent] {
	return crud.NewValidator[portfolio.PostContent](Rules{})
}

// New creates the post content use case. The referenced post must exist and
// a post holds at most one content per language.
func New(repo Repository, posts PostFinder, log *zap.Logger) *crud.UseCase[portfolio.PostContent] {
	return crud.New[portfolio.PostContent](repo, ItemName, log,
		crud.WithCreateCheck(postExists(posts)),
		crud.WithCreateCheck(languageAvailable(repo)),
		crud.WithUpdateCheck(postExists(posts)),
		crud.WithUpdateCheck(languageAvailable(repo)),
	)
}

func postExists(posts PostFinder) crud.Check[portfolio.PostContent] {
	return func(ctx context.Context, c portfolio.PostContent, _ *portfolio.PostContent) error {
		found, err := posts.GetByID(ctx, c.IDPost)
		if err != nil {
			return fmt.Errorf("failed to find post %s: %w", c.IDPost, err)
		}
		if found == nil {
			return apperrors.NewNotFoundError("post", "post does not exist")
		}
		return nil
	}
}

// languageAvailable rejects a content whose post already has another content
// in the same language.
func languageAvailable(repo Repository) crud.Check[portfolio.PostContent] {
	return func(ctx context.Context, c portfolio.PostContent, _ *portfolio.PostContent) error {
		limit := query.MaxLimit
		written, err := repo.Get(ctx, query.NormalizeFilters(query.Params[portfolio.PostContent]{
			Filters: &portfolio.PostContent{IDPost: c.IDPost, Language: c.Language},
			Limit:   &limit,
		}))
		if err != nil {
			return fmt.Errorf("failed to list contents of post %s: %w", c.IDPost, err)
		}
		for _, other := range written.Data {
			if other.ID != c.ID && other.Language == c.Language {
				return apperrors.NewAlreadyExistsError(ItemName, "the content was already written in this language")
			}
		}
		return nil
	}
}
