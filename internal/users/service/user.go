package service

import (
	"context"
	"errors"

	userserrors "tempo/internal/users/errors"
	"tempo/internal/users/repository"
	apperrors "tempo/pkg/errors"
	"tempo/pkg/logger"
	"tempo/pkg/model"
)

type UserService interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetAll(ctx context.Context, requester model.Identity) ([]*model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	logger *logger.Logger
}

func NewUserService(repo repository.UserRepository, log *logger.Logger) UserService {
	return &userService{
		repo:   repo,
		logger: log,
	}
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) || errors.Is(err, userserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		return nil, apperrors.Internal("failed to look up user", err)
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context, requester model.Identity) ([]*model.User, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.Forbidden("Only admins can list users")
	}

	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list users", err)
	}
	return users, nil
}
