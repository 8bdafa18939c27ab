package category

import (
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/crud"
)

// ItemName is the name used in messages about categories.
const ItemName = "category"

// Repository is the storage contract for categories.
type Repository = crud.Repository[portfolio.Category]

// Rules validates category fields.
type Rules struct {
	validate *validator.Validate
}

// NewRules creates the category field rules.
func NewRules() Rules {
	return Rules{validate: validator.New()}
}

// ValidateCreate implements crud.FieldRules.
func (r Rules) ValidateCreate(c portfolio.Category) (portfolio.Category, []crud.FieldError) {
	errs := crud.ValidateEmptyFields(c, "id", "color")
	return c, r.validateColor(c.Color, errs)
}

// ValidateUpdate implements crud.FieldRules.
func (r Rules) ValidateUpdate(c portfolio.Category) (portfolio.Category, []crud.FieldError) {
	errs := crud.ValidateEmptyFields(c, "color")
	return c, r.validateColor(c.Color, errs)
}

// validateColor accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA.
func (r Rules) validateColor(color string, errs []crud.FieldError) []crud.FieldError {
	if color == "" {
		return append(errs, crud.FieldError{Field: "color", Message: "color empty"})
	}
	if err := r.validate.Var(color, "hexcolor"); err != nil {
		return append(errs, crud.FieldError{Field: "color", Message: "color format is incorrect"})
	}
	return errs
}

// NewValidator creates the request validator for categories.
func NewValidator() crud.Validator[portfolio.Category] {
	return crud.NewValidator[portfolio.Category](NewRules())
}

// New creates the category use case.
func New(repo Repository, log *zap.Logger) *crud.UseCase[portfolio.Category] {
	return crud.New[portfolio.Category](repo, ItemName, log)
}
