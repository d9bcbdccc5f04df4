package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/crm-service/internal/events"
)

// publishMutation emits an entity-mutation event. The dispatcher fans
// it out to best-effort subscribers (audit recording); publishing never
// fails the operation being recorded.
func publishMutation(ctx context.Context, dispatcher events.Dispatcher, eventType events.EventType, entityType, entityID, actor string, snapshot map[string]any) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Timestamp:  time.Now(),
		Snapshot:   snapshot,
	})
}
