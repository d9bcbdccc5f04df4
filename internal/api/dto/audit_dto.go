package dto

import (
	"time"

	"github.com/spec-kit/crm-service/internal/domain"
)

// AuditEntryResponse represents one audit record.
type AuditEntryResponse struct {
	ID             string             `json:"id"`
	Action         domain.AuditAction `json:"action"`
	EntityType     string             `json:"entity_type"`
	EntityID       string             `json:"entity_id"`
	Actor          string             `json:"actor"`
	Snapshot       map[string]any     `json:"snapshot,omitempty"`
	RetentionUntil time.Time          `json:"retention_until"`
	CreatedAt      time.Time          `json:"created_at"`
}

// NewAuditEntryResponse maps a domain audit entry.
func NewAuditEntryResponse(entry *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:             entry.ID,
		Action:         entry.Action,
		EntityType:     entry.EntityType,
		EntityID:       entry.EntityID,
		Actor:          entry.Actor,
		Snapshot:       entry.Snapshot,
		RetentionUntil: entry.RetentionUntil,
		CreatedAt:      entry.CreatedAt,
	}
}
