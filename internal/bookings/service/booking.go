package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	auditservice "tempo/internal/audit/service"
	bookingserrors "tempo/internal/bookings/errors"
	"tempo/internal/bookings/repository"
	"tempo/internal/bookings/validator"
	usersrepo "tempo/internal/users/repository"
	workspaceserrors "tempo/internal/workspaces/errors"
	workspacerepo "tempo/internal/workspaces/repository"
	"tempo/pkg/config"
	apperrors "tempo/pkg/errors"
	"tempo/pkg/logger"
	"tempo/pkg/model"
)

// BookingService admits and manages reservations. Admission serializes
// per workspace: a short-lived advisory lock plus a transaction around
// the overlap check and insert guarantee that of two concurrent
// overlapping requests exactly one is admitted.
type BookingService interface {
	Create(ctx context.Context, requester model.Identity, booking *model.Booking) error
	CheckOverlap(ctx context.Context, workspaceID int64, startAt, endAt time.Time, excludeID string) (bool, error)
	ListForRequester(ctx context.Context, requester model.Identity) ([]*model.BookingDetail, error)
	Delete(ctx context.Context, id string, requester model.Identity) (*model.Booking, error)
}

type bookingService struct {
	repo          repository.BookingRepository
	lockRepo      repository.BookingLockRepository
	workspaceRepo workspacerepo.WorkspaceRepository
	userRepo      usersrepo.UserRepository
	audit         auditservice.AuditService
	validator     *validator.BookingValidator
	cfg           *config.Config
	logger        *logger.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	workspaceRepo workspacerepo.WorkspaceRepository,
	userRepo usersrepo.UserRepository,
	audit auditservice.AuditService,
	bookingValidator *validator.BookingValidator,
	cfg *config.Config,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		repo:          repo,
		lockRepo:      lockRepo,
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		audit:         audit,
		validator:     bookingValidator,
		cfg:           cfg,
		logger:        log,
	}
}

func (s *bookingService) Create(ctx context.Context, requester model.Identity, booking *model.Booking) error {
	booking.UserID = requester.UserID
	booking.CreatedAt = time.Now().UTC()

	if err := s.validator.Validate(booking); err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	if _, err := s.workspaceRepo.FindByID(ctx, booking.WorkspaceID); err != nil {
		if errors.Is(err, workspaceserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Workspace", strconv.FormatInt(booking.WorkspaceID, 10))
		}
		return apperrors.Internal("failed to look up workspace", err)
	}

	lockID, err := s.acquireAdmissionLock(ctx, booking.WorkspaceID)
	if err != nil {
		return err
	}
	defer s.releaseAdmissionLock(ctx, lockID)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		conflicts, err := s.repo.FindOverlapping(sessCtx, booking.WorkspaceID, booking.StartAt, booking.EndAt, "")
		if err != nil {
			return apperrors.Internal("failed to check for overlapping bookings", err)
		}
		if len(conflicts) > 0 {
			return apperrors.BookingOverlap("The requested time range overlaps an existing booking for this workspace")
		}
		return s.repo.Create(sessCtx, booking)
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return apperrors.Internal("failed to create booking", err)
	}

	s.logger.Info("booking admitted",
		"booking_id", booking.ID,
		"workspace_id", booking.WorkspaceID,
		"user_id", booking.UserID,
		"start_at", booking.StartAt,
		"end_at", booking.EndAt,
	)
	return nil
}

// acquireAdmissionLock takes the per-workspace lock, retrying for up to
// AdmissionLockWait so that the loser of a concurrent pair waits for the
// winner to commit and then fails the overlap check rather than the lock.
func (s *bookingService) acquireAdmissionLock(ctx context.Context, workspaceID int64) (string, error) {
	deadline := time.Now().Add(s.cfg.AdmissionLockWait)

	for {
		lockID, err := s.lockRepo.Acquire(ctx, workspaceID, s.cfg.AdmissionLockTTL)
		if err == nil {
			return lockID, nil
		}
		if !errors.Is(err, bookingserrors.ErrLockHeld) {
			return "", apperrors.Internal("failed to acquire admission lock", err)
		}
		if time.Now().After(deadline) {
			return "", apperrors.Conflict("Another reservation for this workspace is being processed, please retry")
		}

		select {
		case <-ctx.Done():
			return "", apperrors.Internal("admission cancelled", ctx.Err())
		case <-time.After(s.cfg.AdmissionLockRetry):
		}
	}
}

// releaseAdmissionLock runs on every admission exit path. It must not
// inherit the request's cancellation: an aborted request still has to
// return its lock instead of waiting for the TTL backstop.
func (s *bookingService) releaseAdmissionLock(ctx context.Context, lockID string) {
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.lockRepo.Release(releaseCtx, lockID); err != nil {
		s.logger.Error("failed to release admission lock", "lock_id", lockID, "error", err)
	}
}

func (s *bookingService) CheckOverlap(ctx context.Context, workspaceID int64, startAt, endAt time.Time, excludeID string) (bool, error) {
	if !endAt.After(startAt) {
		return false, apperrors.InvalidInput("end_at must be after start_at")
	}

	conflicts, err := s.repo.FindOverlapping(ctx, workspaceID, startAt, endAt, excludeID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return false, apperrors.InvalidInput("exclude_id is not a valid booking ID")
		}
		return false, apperrors.Internal("failed to check for overlapping bookings", err)
	}
	return len(conflicts) > 0, nil
}

// ListForRequester returns the requester's own bookings, or every
// booking when the requester is an admin. Workspace and user records
// are batch fetched and stitched in; bookings that outlived their
// workspace or owner keep a nil reference.
func (s *bookingService) ListForRequester(ctx context.Context, requester model.Identity) ([]*model.BookingDetail, error) {
	var (
		bookings []*model.Booking
		err      error
	)
	if requester.IsAdmin() {
		bookings, err = s.repo.FindAll(ctx)
	} else {
		bookings, err = s.repo.FindByUser(ctx, requester.UserID)
	}
	if err != nil {
		return nil, apperrors.Internal("failed to list bookings", err)
	}

	workspaceIDs := make([]int64, 0, len(bookings))
	userIDs := make([]string, 0, len(bookings))
	for _, b := range bookings {
		workspaceIDs = append(workspaceIDs, b.WorkspaceID)
		userIDs = append(userIDs, b.UserID)
	}

	workspaces, err := s.workspaceRepo.FindByIDs(ctx, workspaceIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load workspaces for bookings", err)
	}

	var users map[string]*model.User
	if requester.IsAdmin() {
		users, err = s.userRepo.FindByIDs(ctx, userIDs)
		if err != nil {
			return nil, apperrors.Internal("failed to load users for bookings", err)
		}
	}

	details := make([]*model.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		detail := &model.BookingDetail{
			Booking:   *b,
			Workspace: workspaces[b.WorkspaceID],
		}
		if u, ok := users[b.UserID]; ok {
			detail.User = &model.BookingUser{
				ID:    u.ID,
				Email: u.Email,
				Role:  u.Role,
			}
		}
		details = append(details, detail)
	}
	return details, nil
}

func (s *bookingService) Delete(ctx context.Context, id string, requester model.Identity) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) || errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("failed to look up booking", err)
	}

	if booking.UserID != requester.UserID {
		return nil, apperrors.Forbidden("You can only delete your own bookings")
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("failed to delete booking", err)
	}

	s.audit.LogDeletion(ctx, model.AuditEntityBooking, removed.ID, bookingSnapshot(removed), requester)

	s.logger.Info("booking deleted",
		"booking_id", removed.ID,
		"workspace_id", removed.WorkspaceID,
		"deleted_by", requester.UserID,
	)
	return removed, nil
}

func bookingSnapshot(b *model.Booking) map[string]any {
	return map[string]any{
		"id":           b.ID,
		"user_id":      b.UserID,
		"workspace_id": b.WorkspaceID,
		"start_at":     b.StartAt,
		"end_at":       b.EndAt,
		"created_at":   b.CreatedAt,
	}
}
