package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditRecord is one append-only row of the change history. The audit event
// handler writes one per committed domain event.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	EventKind  EventKind
	Changes    map[string]any
	CreatedAt  time.Time
}
