package domain

import "time"

// AuditAction enumerates recorded mutation kinds.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

// AuditEntry is an immutable append-only record of a mutating action.
// Writes are best-effort and never block the action they record; rows
// past RetentionUntil are removed by the retention sweep.
type AuditEntry struct {
	ID             string
	Action         AuditAction
	EntityType     string
	EntityID       string
	Actor          string
	Snapshot       map[string]any
	RetentionUntil time.Time
	CreatedAt      time.Time
}
