// Package event fans committed domain events out to handlers. Handlers come
// in two capability sets: audit handlers observe events and may write audit
// records inside the committing transaction; trigger handlers may only
// enqueue background jobs on the scheduler they are handed. A handler
// failure is logged and isolated; it never blocks the other handlers or the
// operation itself.
package event

import (
	"context"
	"log/slog"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/outbox"
)

// AuditHandler observes committed events synchronously. Implementations must
// not mutate entities or enqueue work.
type AuditHandler interface {
	Name() string
	HandleAudit(ctx context.Context, e domain.Event) error
}

// TriggerHandler reacts to committed events by enqueueing background jobs on
// the scheduler. Implementations must not perform the work inline.
type TriggerHandler interface {
	Name() string
	HandleTrigger(ctx context.Context, e domain.Event, sch outbox.Scheduler) error
}

// Registry routes events to handlers by kind. Registration order is
// preserved per kind; audit handlers run before trigger handlers for each
// event.
type Registry struct {
	log      *slog.Logger
	audit    map[domain.EventKind][]AuditHandler
	auditAll []AuditHandler
	triggers map[domain.EventKind][]TriggerHandler
}

// NewRegistry creates an empty handler registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		log:      log.With("component", "event_registry"),
		audit:    make(map[domain.EventKind][]AuditHandler),
		triggers: make(map[domain.EventKind][]TriggerHandler),
	}
}

// RegisterAudit subscribes an audit handler to the given kinds.
// With no kinds the handler receives every event.
func (r *Registry) RegisterAudit(h AuditHandler, kinds ...domain.EventKind) {
	if len(kinds) == 0 {
		r.auditAll = append(r.auditAll, h)
		return
	}
	for _, k := range kinds {
		r.audit[k] = append(r.audit[k], h)
	}
}

// RegisterTrigger subscribes a trigger handler to the given kinds.
func (r *Registry) RegisterTrigger(h TriggerHandler, kinds ...domain.EventKind) {
	for _, k := range kinds {
		r.triggers[k] = append(r.triggers[k], h)
	}
}

// Dispatch delivers each event, in order, to its subscribed handlers.
// Handler errors are logged and swallowed so one bad handler cannot starve
// the rest or fail the operation.
func (r *Registry) Dispatch(ctx context.Context, events []domain.Event, sch outbox.Scheduler) {
	for _, e := range events {
		for _, h := range r.auditAll {
			r.runAudit(ctx, h, e)
		}
		for _, h := range r.audit[e.Kind] {
			r.runAudit(ctx, h, e)
		}
		for _, h := range r.triggers[e.Kind] {
			if err := h.HandleTrigger(ctx, e, sch); err != nil {
				r.log.Error("trigger handler failed",
					slog.String("handler", h.Name()),
					slog.String("event_kind", e.Kind.String()),
					slog.String("event_id", e.ID.String()),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

func (r *Registry) runAudit(ctx context.Context, h AuditHandler, e domain.Event) {
	if err := h.HandleAudit(ctx, e); err != nil {
		r.log.Error("audit handler failed",
			slog.String("handler", h.Name()),
			slog.String("event_kind", e.Kind.String()),
			slog.String("event_id", e.ID.String()),
			slog.String("error", err.Error()),
		)
	}
}
