package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	auditservice "tempo/internal/audit/service"
	bookingrepo "tempo/internal/bookings/repository"
	workspaceserrors "tempo/internal/workspaces/errors"
	"tempo/internal/workspaces/repository"
	"tempo/internal/workspaces/validator"
	apperrors "tempo/pkg/errors"
	"tempo/pkg/logger"
	"tempo/pkg/model"
	"tempo/pkg/sanitizer"
)

type WorkspaceService interface {
	Create(ctx context.Context, requester model.Identity, workspace *model.Workspace) error
	GetByID(ctx context.Context, id int64) (*model.Workspace, error)
	GetAll(ctx context.Context) ([]*model.Workspace, error)
	Delete(ctx context.Context, id int64, requester model.Identity) (*model.Workspace, error)
}

type workspaceService struct {
	repo        repository.WorkspaceRepository
	bookingRepo bookingrepo.BookingRepository
	audit       auditservice.AuditService
	validator   *validator.WorkspaceValidator
	logger      *logger.Logger
}

func NewWorkspaceService(
	repo repository.WorkspaceRepository,
	bookingRepo bookingrepo.BookingRepository,
	audit auditservice.AuditService,
	workspaceValidator *validator.WorkspaceValidator,
	log *logger.Logger,
) WorkspaceService {
	return &workspaceService{
		repo:        repo,
		bookingRepo: bookingRepo,
		audit:       audit,
		validator:   workspaceValidator,
		logger:      log,
	}
}

func (s *workspaceService) Create(ctx context.Context, requester model.Identity, workspace *model.Workspace) error {
	if !requester.IsAdmin() {
		return apperrors.Forbidden("Only admins can create workspaces")
	}

	workspace.Name = sanitizer.NormalizeWorkspaceName(workspace.Name)
	if workspace.Capacity == 0 {
		workspace.Capacity = 1
	}
	workspace.CreatedAt = time.Now().UTC()

	if err := s.validator.Validate(workspace); err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	if err := s.repo.Create(ctx, workspace); err != nil {
		return apperrors.Internal("failed to create workspace", err)
	}

	s.logger.Info("workspace created",
		"workspace_id", workspace.ID,
		"name", workspace.Name,
		"kind", workspace.Kind,
		"created_by", requester.UserID,
	)
	return nil
}

func (s *workspaceService) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	workspace, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, workspaceserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Workspace", strconv.FormatInt(id, 10))
		}
		return nil, apperrors.Internal("failed to look up workspace", err)
	}
	return workspace, nil
}

func (s *workspaceService) GetAll(ctx context.Context) ([]*model.Workspace, error) {
	workspaces, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list workspaces", err)
	}
	return workspaces, nil
}

// Delete removes the workspace and every booking attached to it in one
// transaction, so a concurrent admission cannot slip a booking into a
// half-deleted workspace.
func (s *workspaceService) Delete(ctx context.Context, id int64, requester model.Identity) (*model.Workspace, error) {
	if !requester.IsAdmin() {
		return nil, apperrors.Forbidden("Only admins can delete workspaces")
	}

	var (
		removed         *model.Workspace
		removedBookings int64
	)
	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		var err error
		removed, err = s.repo.Delete(sessCtx, id)
		if err != nil {
			if errors.Is(err, workspaceserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Workspace", strconv.FormatInt(id, 10))
			}
			return apperrors.Internal("failed to delete workspace", err)
		}

		removedBookings, err = s.bookingRepo.DeleteByWorkspace(sessCtx, id)
		if err != nil {
			return apperrors.Internal("failed to delete workspace bookings", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("failed to delete workspace", err)
	}

	s.audit.LogDeletion(ctx, model.AuditEntityWorkspace, strconv.FormatInt(id, 10), map[string]any{
		"id":               removed.ID,
		"name":             removed.Name,
		"kind":             removed.Kind,
		"capacity":         removed.Capacity,
		"created_at":       removed.CreatedAt,
		"deleted_bookings": removedBookings,
	}, requester)

	s.logger.Info("workspace deleted",
		"workspace_id", id,
		"deleted_bookings", removedBookings,
		"deleted_by", requester.UserID,
	)
	return removed, nil
}
