package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	userserrors "tempo/internal/users/errors"
	"tempo/internal/users/repository"
	"tempo/pkg/config"
	apperrors "tempo/pkg/errors"
	"tempo/pkg/logger"
	"tempo/pkg/model"
	"tempo/pkg/sanitizer"
	"tempo/pkg/token"
)

// AuthService owns registration and credential verification. Passwords
// are stored as bcrypt hashes; successful login mints a signed access
// token carrying the user's id and role.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (string, *model.User, error)
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8,max=72"`
}

type authService struct {
	repo     repository.UserRepository
	issuer   *token.Issuer
	validate *validator.Validate
	cfg      *config.Config
	logger   *logger.Logger
}

func NewAuthService(repo repository.UserRepository, issuer *token.Issuer, cfg *config.Config, log *logger.Logger) AuthService {
	return &authService{
		repo:     repo,
		issuer:   issuer,
		validate: validator.New(),
		cfg:      cfg,
		logger:   log,
	}
}

func (s *authService) Register(ctx context.Context, email, password string) (*model.User, error) {
	email = sanitizer.NormalizeEmail(email)

	if err := s.validate.Struct(credentials{Email: email, Password: password}); err != nil {
		return nil, apperrors.InvalidInput(translateCredentialErrors(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &model.User{
		Email:     email,
		Password:  string(hash),
		Role:      model.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userserrors.ErrEmailTaken) {
			return nil, apperrors.Conflict("A user with this email already exists")
		}
		return nil, apperrors.Internal("failed to create user", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			// Same error as a bad password, so the endpoint does not
			// reveal which emails are registered.
			return "", nil, apperrors.Unauthorized("Invalid credentials")
		}
		return "", nil, apperrors.Internal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.Unauthorized("Invalid credentials")
	}

	accessToken, err := s.issuer.Issue(user)
	if err != nil {
		return "", nil, apperrors.Internal("failed to issue access token", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return accessToken, user, nil
}

func translateCredentialErrors(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}
	for _, fieldErr := range validationErrs {
		switch fieldErr.Field() {
		case "Email":
			return "A valid email address is required"
		case "Password":
			return "Password must be between 8 and 72 characters"
		}
	}
	return "Invalid credentials payload"
}
