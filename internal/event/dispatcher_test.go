package event

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/outbox"
)

var dispatchNow = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

type recordingAudit struct {
	name string
	seen []domain.EventKind
	err  error
}

func (h *recordingAudit) Name() string { return h.name }

func (h *recordingAudit) HandleAudit(_ context.Context, e domain.Event) error {
	h.seen = append(h.seen, e.Kind)
	return h.err
}

type recordingTrigger struct {
	name string
	seen []domain.EventKind
	err  error
}

func (h *recordingTrigger) Name() string { return h.name }

func (h *recordingTrigger) HandleTrigger(_ context.Context, e domain.Event, _ outbox.Scheduler) error {
	h.seen = append(h.seen, e.Kind)
	return h.err
}

func testEvent(kind domain.EventKind) domain.Event {
	return domain.NewEvent(kind, uuid.New(), domain.EntityTypeTask, uuid.New(), dispatchNow, nil)
}

func newTestRegistry() *Registry {
	return NewRegistry(slog.New(slog.DiscardHandler))
}

func TestDispatchRoutesByKind(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	completed := &recordingTrigger{name: "completed"}
	punted := &recordingTrigger{name: "punted"}
	r.RegisterTrigger(completed, domain.EventTaskCompleted)
	r.RegisterTrigger(punted, domain.EventTaskPunted)

	r.Dispatch(context.Background(), []domain.Event{
		testEvent(domain.EventTaskCompleted),
		testEvent(domain.EventTaskCompleted),
	}, outbox.Noop{})

	if len(completed.seen) != 2 {
		t.Errorf("completed handler saw %d events, want 2", len(completed.seen))
	}
	if len(punted.seen) != 0 {
		t.Errorf("punted handler saw %d events, want 0", len(punted.seen))
	}
}

func TestDispatchWildcardAuditSeesEverything(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	audit := &recordingAudit{name: "audit"}
	r.RegisterAudit(audit)

	r.Dispatch(context.Background(), []domain.Event{
		testEvent(domain.EventTaskCompleted),
		testEvent(domain.EventTaskStatusChanged),
		testEvent(domain.EventDayUnscheduled),
	}, outbox.Noop{})

	if len(audit.seen) != 3 {
		t.Fatalf("wildcard audit saw %d events, want 3", len(audit.seen))
	}
	if audit.seen[0] != domain.EventTaskCompleted || audit.seen[2] != domain.EventDayUnscheduled {
		t.Errorf("events out of order: %v", audit.seen)
	}
}

func TestDispatchIsolatesFailingHandlers(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	failing := &recordingAudit{name: "failing", err: errors.New("boom")}
	healthy := &recordingAudit{name: "healthy"}
	trigger := &recordingTrigger{name: "trigger", err: errors.New("boom")}
	after := &recordingTrigger{name: "after"}

	r.RegisterAudit(failing, domain.EventTaskCompleted)
	r.RegisterAudit(healthy, domain.EventTaskCompleted)
	r.RegisterTrigger(trigger, domain.EventTaskCompleted)
	r.RegisterTrigger(after, domain.EventTaskCompleted)

	r.Dispatch(context.Background(), []domain.Event{testEvent(domain.EventTaskCompleted)}, outbox.Noop{})

	if len(healthy.seen) != 1 {
		t.Error("audit handler after a failing one should still run")
	}
	if len(after.seen) != 1 {
		t.Error("trigger handler after a failing one should still run")
	}
}

func TestDispatchUnsubscribedKindIsIgnored(t *testing.T) {
	t.Parallel()

	r := newTestRegistry()
	trigger := &recordingTrigger{name: "trigger"}
	r.RegisterTrigger(trigger, domain.EventTaskCompleted)

	r.Dispatch(context.Background(), []domain.Event{testEvent(domain.EventDayUpdated)}, outbox.Noop{})

	if len(trigger.seen) != 0 {
		t.Errorf("handler saw %d events for a kind it never subscribed to", len(trigger.seen))
	}
}
