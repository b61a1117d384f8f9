package event

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
)

// AuditStore persists audit records. When dispatch runs inside a
// transaction the store is expected to join it via the context.
type AuditStore interface {
	Insert(ctx context.Context, rec domain.AuditRecord) error
}

// AuditRecorder writes one audit record per committed domain event. It is
// registered without kinds so it sees everything.
type AuditRecorder struct {
	store AuditStore
}

// NewAuditRecorder creates the audit-trail handler.
func NewAuditRecorder(store AuditStore) *AuditRecorder {
	return &AuditRecorder{store: store}
}

func (h *AuditRecorder) Name() string { return "audit_recorder" }

func (h *AuditRecorder) HandleAudit(ctx context.Context, e domain.Event) error {
	entityID := e.EntityID
	rec := domain.AuditRecord{
		ID:         uuid.New(),
		UserID:     e.UserID,
		EntityType: e.EntityType,
		EntityID:   &entityID,
		Action:     auditActionFor(e.Kind),
		EventKind:  e.Kind,
		Changes:    e.Payload,
		CreatedAt:  e.OccurredAt,
	}
	if err := h.store.Insert(ctx, rec); err != nil {
		return fmt.Errorf("insert audit record for %s: %w", e.Kind, err)
	}
	return nil
}

func auditActionFor(kind domain.EventKind) domain.AuditAction {
	switch {
	case strings.HasSuffix(kind.String(), ".created"),
		strings.HasSuffix(kind.String(), "_added"),
		kind == domain.EventCalendarEntryUpserted:
		return domain.AuditActionCreate
	case strings.HasSuffix(kind.String(), ".deleted"),
		strings.HasSuffix(kind.String(), "_removed"):
		return domain.AuditActionDelete
	default:
		return domain.AuditActionUpdate
	}
}
