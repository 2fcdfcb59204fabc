package service

import (
	"context"
	"time"

	"tempo/internal/audit/repository"
	"tempo/pkg/config"
	apperrors "tempo/pkg/errors"
	"tempo/pkg/kafka"
	"tempo/pkg/model"
)

const (
	eventSource   = "tempo"
	sinkTimeout   = 5 * time.Second
	defaultRecent = 100
	maxRecent     = 500
)

type AuditService interface {
	// LogDeletion records who deleted what. Best effort: it never returns
	// an error and must never fail the primary operation.
	LogDeletion(ctx context.Context, entityType, entityID string, entityData map[string]any, performedBy model.Identity)
	GetRecent(ctx context.Context, limit int) ([]*model.AuditLog, error)
	GetByEntity(ctx context.Context, entityType, entityID string) ([]*model.AuditLog, error)
}

type auditService struct {
	repo     repository.AuditRepository
	producer *kafka.Producer
	cfg      *config.Config
}

// NewAuditService builds the audit sink. producer may be nil, in which
// case deletion events are only persisted, not published.
func NewAuditService(repo repository.AuditRepository, producer *kafka.Producer, cfg *config.Config) AuditService {
	return &auditService{
		repo:     repo,
		producer: producer,
		cfg:      cfg,
	}
}

func (s *auditService) LogDeletion(ctx context.Context, entityType, entityID string, entityData map[string]any, performedBy model.Identity) {
	action := model.AuditActionFor(entityType)
	if action == "" {
		s.cfg.Log.Warn("Audit entry skipped for unknown entity type", "entity_type", entityType)
		return
	}

	entry := &model.AuditLog{
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		EntityData:  entityData,
		PerformedBy: performedBy,
	}

	// Detach from the request context so a cancelled caller cannot abort
	// the audit write mid-flight.
	sinkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sinkTimeout)
	defer cancel()

	if err := s.repo.Create(sinkCtx, entry); err != nil {
		s.cfg.Log.Error("Audit sink write failed",
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
	} else {
		s.cfg.Log.Info("Audit entry recorded",
			"action", action,
			"entity_type", entityType,
			"entity_id", entityID,
			"performed_by", performedBy.UserID,
		)
	}

	s.publish(sinkCtx, entry)
}

func (s *auditService) publish(ctx context.Context, entry *model.AuditLog) {
	if s.producer == nil {
		return
	}

	msg, err := kafka.NewMessage(entry.EntityType+":"+entry.EntityID, entry.Action, eventSource, entry)
	if err != nil {
		s.cfg.Log.Error("Failed to encode audit event", "error", err)
		return
	}

	if err := s.producer.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish audit event",
			"action", entry.Action,
			"entity_id", entry.EntityID,
			"error", err,
		)
	}
}

func (s *auditService) GetRecent(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	if limit <= 0 {
		limit = defaultRecent
	} else if limit > maxRecent {
		limit = maxRecent
	}

	entries, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		s.cfg.Log.Error("Failed to list audit logs", "error", err)
		return nil, apperrors.Internal("Failed to retrieve audit logs", err)
	}
	return entries, nil
}

func (s *auditService) GetByEntity(ctx context.Context, entityType, entityID string) ([]*model.AuditLog, error) {
	if model.AuditActionFor(entityType) == "" {
		return nil, apperrors.InvalidInput("entity type must be one of: workspace, booking, user")
	}
	if entityID == "" {
		return nil, apperrors.InvalidInput("entity id cannot be empty")
	}

	entries, err := s.repo.FindByEntity(ctx, entityType, entityID)
	if err != nil {
		s.cfg.Log.Error("Failed to list audit logs by entity",
			"entity_type", entityType,
			"entity_id", entityID,
			"error", err,
		)
		return nil, apperrors.Internal("Failed to retrieve audit logs", err)
	}
	return entries, nil
}
