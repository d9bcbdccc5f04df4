package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/crm-service/internal/domain"
	"github.com/spec-kit/crm-service/internal/events"
	"github.com/spec-kit/crm-service/internal/repository"
)

// AuditService records entity mutations and serves audit queries.
// Recording is best-effort: a failed write is logged and the mutation
// that triggered it proceeds untouched.
type AuditService struct {
	audits    repository.AuditRepository
	retention time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// AuditDependencies bundles collaborators for the audit service.
type AuditDependencies struct {
	AuditRepo repository.AuditRepository
	Retention time.Duration
	Logger    *zap.Logger
	Now       func() time.Time
}

// NewAuditService constructs the service.
func NewAuditService(deps AuditDependencies) *AuditService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	retention := deps.Retention
	if retention <= 0 {
		retention = 365 * 24 * time.Hour
	}
	return &AuditService{
		audits:    deps.AuditRepo,
		retention: retention,
		logger:    deps.Logger,
		now:       now,
	}
}

// RegisterHandlers subscribes the recorder to entity-mutation events.
func (s *AuditService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventEntityCreated, s.record(domain.AuditActionCreate))
	dispatcher.Subscribe(events.EventEntityUpdated, s.record(domain.AuditActionUpdate))
	dispatcher.Subscribe(events.EventEntityDeleted, s.record(domain.AuditActionDelete))
}

func (s *AuditService) record(action domain.AuditAction) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		entry := &domain.AuditEntry{
			Action:         action,
			EntityType:     event.EntityType,
			EntityID:       event.EntityID,
			Actor:          event.Actor,
			Snapshot:       event.Snapshot,
			RetentionUntil: s.now().Add(s.retention),
		}
		if err := s.audits.Create(ctx, entry); err != nil {
			s.logger.Warn("audit write failed",
				zap.String("entity_type", event.EntityType),
				zap.String("entity_id", event.EntityID),
				zap.Error(err),
			)
		}
		return nil
	}
}

// Query returns audit entries matching the filter.
func (s *AuditService) Query(ctx context.Context, filter repository.AuditFilter) ([]domain.AuditEntry, error) {
	return s.audits.ListWithFilter(ctx, filter)
}

// PurgeExpired removes entries past their retention window.
func (s *AuditService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.audits.PurgeExpired(ctx, s.now())
}
