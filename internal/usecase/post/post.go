package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/domain/query"
	"portfolio-service/internal/usecase/crud"
	apperrors "portfolio-service/pkg/errors"
)

// ItemName is the name used in messages about posts.
const ItemName = "post"

// Repository is the storage contract for posts.
type Repository interface {
	crud.Repository[portfolio.Post]
	// GetBySlug returns nil, nil when no post uses slug.
	GetBySlug(ctx context.Context, slug string) (*portfolio.Post, error)
}

// ContentLister lists post contents.
type ContentLister interface {
	Get(ctx context.Context, filters query.Filters[portfolio.PostContent]) (query.Results[portfolio.PostContent], error)
}

// Rules validates post fields.
type Rules struct {
	now func() time.Time
}

// NewRules creates the post field rules. now stamps the published date of
// new posts; nil means time.Now.
func NewRules(now func() time.Time) Rules {
	if now == nil {
		now = time.Now
	}
	return Rules{now: now}
}

// ValidateCreate implements crud.FieldRules. It sets the published date and
// normalizes the slug.
func (r Rules) ValidateCreate(p portfolio.Post) (portfolio.Post, []crud.FieldError) {
	published := r.now().UTC()
	p.PublishedDate = &published

	errs := crud.ValidateEmptyFields(p, "id", "slug")
	p.Slug, errs = normalizeSlug(p.Slug, errs)
	return p, errs
}

// ValidateUpdate implements crud.FieldRules. The published date is never
// taken from an update.
func (r Rules) ValidateUpdate(p portfolio.Post) (portfolio.Post, []crud.FieldError) {
	p.PublishedDate = nil

	errs := crud.ValidateEmptyFields(p, "slug")
	p.Slug, errs = normalizeSlug(p.Slug, errs)
	return p, errs
}

// ParseSlug makes slug url friendly: spaces and slashes become dashes and
// letters are lower-cased.
func ParseSlug(slug string) string {
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "/", "-")
	return strings.ToLower(slug)
}

func normalizeSlug(slug string, errs []crud.FieldError) (string, []crud.FieldError) {
	if slug == "" {
		return slug, append(errs, crud.FieldError{Field: "slug", Message: "slug empty"})
	}
	return ParseSlug(slug), errs
}

// NewValidator creates the request validator for posts.
func NewValidator(now func() time.Time) crud.Validator[portfolio.Post] {
	return crud.NewValidator[portfolio.Post](NewRules(now))
}

// ContentBySlugCommand identifies the post whose contents are requested.
type ContentBySlugCommand struct {
	Slug string
}

// ValidateContentBySlug validates a slug used to look up post contents. The
// slug is taken as is, so it must already be url friendly.
func ValidateContentBySlug(slug string) crud.Request[ContentBySlugCommand] {
	switch {
	case slug == "":
		return crud.Invalid[ContentBySlugCommand]([]crud.FieldError{{Field: "slug", Message: "slug empty"}})
	case strings.ContainsAny(slug, "/ "):
		return crud.Invalid[ContentBySlugCommand]([]crud.FieldError{{Field: "slug", Message: "slug format is incorrect"}})
	}
	return crud.Valid(ContentBySlugCommand{Slug: slug})
}

// ContentBySlug is the contents of a post along with its published date.
type ContentBySlug struct {
	query.Results[portfolio.PostContent]
	PublishedDate *time.Time `json:"publishedDate"`
}

// Usecase adds slug uniqueness and content lookup to the generic post use case.
type Usecase struct {
	*crud.UseCase[portfolio.Post]
	repo     Repository
	contents ContentLister
	log      *zap.Logger
}

// New creates the post use case.
func New(repo Repository, contents ContentLister, log *zap.Logger) *Usecase {
	check := slugAvailable(repo)
	return &Usecase{
		UseCase: crud.New[portfolio.Post](repo, ItemName, log,
			crud.WithCreateCheck(check),
			crud.WithUpdateCheck(check),
		),
		repo:     repo,
		contents: contents,
		log:      log,
	}
}

// GetContentBySlug returns every content of the post identified by slug.
func (uc *Usecase) GetContentBySlug(ctx context.Context, req crud.Request[ContentBySlugCommand]) crud.Response {
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return crud.NewFailure(crud.StatusBadRequest, invalid.Errors)
	}

	found, err := uc.repo.GetBySlug(ctx, cmd.Slug)
	if err != nil {
		return crud.Fail(ctx, uc.log, "content by slug", err)
	}
	if found == nil {
		return crud.NewFailure(crud.StatusResourceError, ItemName+" does not exist")
	}

	limit := query.MaxLimit
	results, err := uc.contents.Get(ctx, query.NormalizeFilters(query.Params[portfolio.PostContent]{
		Filters: &portfolio.PostContent{IDPost: found.ID},
		Limit:   &limit,
		OrderBy: []query.OrderBy{{Field: "language", Direction: query.Ascending}},
	}))
	if err != nil {
		return crud.Fail(ctx, uc.log, "content by slug", err)
	}

	return crud.NewSuccess(crud.StatusOK, ContentBySlug{
		Results:       results,
		PublishedDate: found.PublishedDate,
	})
}

// slugAvailable rejects a post whose slug is already used by another post.
func slugAvailable(repo Repository) crud.Check[portfolio.Post] {
	return func(ctx context.Context, p portfolio.Post, _ *portfolio.Post) error {
		found, err := repo.GetBySlug(ctx, p.Slug)
		if err != nil {
			return fmt.Errorf("failed to find post by slug %s: %w", p.Slug, err)
		}
		if found != nil && found.ID != p.ID {
			return apperrors.NewAlreadyExistsError(ItemName, "slug already exists")
		}
		return nil
	}
}
