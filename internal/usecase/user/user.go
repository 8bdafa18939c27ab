package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"portfolio-service/internal/domain/portfolio"
	"portfolio-service/internal/usecase/crud"
	apperrors "portfolio-service/pkg/errors"
	"portfolio-service/pkg/logger"
)

const (
	minNameLength     = 4
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes and rejects it outright.
	maxPasswordLength = 72
)

// Repository defines the user storage operations needed for registration and login.
type Repository interface {
	Create(ctx context.Context, u portfolio.User) (portfolio.User, error)  // Store a new user
	GetByEmail(ctx context.Context, email string) (*portfolio.User, error) // nil, nil when no user has email
}

// TokenIssuer signs session tokens for authenticated users.
type TokenIssuer interface {
	Generate(id, name string) (string, error)
}

// LoginCommand carries validated credentials.
type LoginCommand struct {
	Email    string
	Password string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	portfolio.UserView
	JWT string `json:"jwt"`
}

// Validator checks registration and login input.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates the user request validator.
func NewValidator() Validator {
	return Validator{validate: validator.New()}
}

// Register validates a new account. The email is trimmed and lower-cased.
func (v Validator) Register(u portfolio.User) crud.Request[crud.CreateCommand[portfolio.User]] {
	u.Email = normalizeEmail(u.Email)

	errs := crud.ValidateEmptyFields(u, "id")
	if u.Name != "" && v.validate.Var(u.Name, fmt.Sprintf("min=%d", minNameLength)) != nil {
		errs = append(errs, crud.FieldError{Field: "name", Message: fmt.Sprintf("name is less than %d characters", minNameLength)})
	}
	errs = v.checkPassword(u.Password, errs)
	if u.Email != "" && v.validate.Var(u.Email, "email") != nil {
		errs = append(errs, crud.FieldError{Field: "email", Message: "email is not valid"})
	}

	if len(errs) > 0 {
		return crud.Invalid[crud.CreateCommand[portfolio.User]](errs)
	}
	return crud.Valid(crud.CreateCommand[portfolio.User]{Item: u})
}

// Login validates credentials.
func (v Validator) Login(email, password string) crud.Request[LoginCommand] {
	email = normalizeEmail(email)

	var errs []crud.FieldError
	if password == "" {
		errs = append(errs, crud.FieldError{Field: "password", Message: "password empty"})
	}
	if v.validate.Var(email, "required,email") != nil {
		errs = append(errs, crud.FieldError{Field: "email", Message: "email is not valid"})
	}

	if len(errs) > 0 {
		return crud.Invalid[LoginCommand](errs)
	}
	return crud.Valid(LoginCommand{Email: email, Password: password})
}

func (v Validator) checkPassword(password string, errs []crud.FieldError) []crud.FieldError {
	switch {
	case password == "":
		return errs
	case len(password) < minPasswordLength:
		return append(errs, crud.FieldError{Field: "password", Message: fmt.Sprintf("password is less than %d characters", minPasswordLength)})
	case len(password) > maxPasswordLength:
		return append(errs, crud.FieldError{Field: "password", Message: fmt.Sprintf("password is more than %d characters", maxPasswordLength)})
	}
	return errs
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Usecase implements account registration and login.
type Usecase struct {
	repo     Repository
	tokens   TokenIssuer
	log      *zap.Logger
	hashCost int
}

// New creates the user use case.
func New(repo Repository, tokens TokenIssuer, log *zap.Logger) *Usecase {
	return &Usecase{repo: repo, tokens: tokens, log: log, hashCost: bcrypt.DefaultCost}
}

// Register creates an account. The password is stored as a bcrypt hash and
// never returned.
func (uc *Usecase) Register(ctx context.Context, req crud.Request[crud.CreateCommand[portfolio.User]]) crud.Response {
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return crud.NewFailure(crud.StatusBadRequest, invalid.Errors)
	}
	u := cmd.Item

	existing, err := uc.repo.GetByEmail(ctx, u.Email)
	if err != nil {
		return crud.Fail(ctx, uc.log, "register", fmt.Errorf("failed to check existing email: %w", err))
	}
	if existing != nil {
		return crud.Fail(ctx, uc.log, "register", apperrors.NewAlreadyExistsError("user", "email already registered"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), uc.hashCost)
	if err != nil {
		return crud.Fail(ctx, uc.log, "register", fmt.Errorf("failed to hash password: %w", err))
	}
	u.Password = string(hash)

	created, err := uc.repo.Create(ctx, u)
	if err != nil {
		return crud.Fail(ctx, uc.log, "register", err)
	}

	logger.WithContext(ctx, uc.log).Info("user registered", zap.String("id", created.ID))
	return crud.NewSuccess(crud.StatusCreated, created.View())
}

// Login checks credentials and returns the user with a signed token. Unknown
// emails and wrong passwords are reported the same way.
func (uc *Usecase) Login(ctx context.Context, req crud.Request[LoginCommand]) crud.Response {
	cmd, invalid := req.Resolve()
	if invalid != nil {
		return crud.NewFailure(crud.StatusBadRequest, invalid.Errors)
	}

	found, err := uc.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return crud.Fail(ctx, uc.log, "login", fmt.Errorf("failed to find user: %w", err))
	}
	if found == nil {
		return crud.Fail(ctx, uc.log, "login", apperrors.NewUnauthorizedError("invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(cmd.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return crud.Fail(ctx, uc.log, "login", apperrors.NewUnauthorizedError("invalid credentials"))
		}
		return crud.Fail(ctx, uc.log, "login", fmt.Errorf("failed to compare password: %w", err))
	}

	token, err := uc.tokens.Generate(found.ID, found.Name)
	if err != nil {
		return crud.Fail(ctx, uc.log, "login", fmt.Errorf("failed to generate token: %w", err))
	}

	return crud.NewSuccess(crud.StatusOK, LoginResult{UserView: found.View(), JWT: token})
}
