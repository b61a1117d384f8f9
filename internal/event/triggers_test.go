package event

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/outbox"
)

func TestBrainDumpTriggerSchedulesProcessing(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	day := domain.NewDay(userID, time.Now(), time.Now())
	day.CollectEvents()
	item := day.AddBrainDumpItem("call the plumber", time.Now())

	collector := outbox.NewCollector(nil, slog.New(slog.DiscardHandler))
	events := day.CollectEvents()

	if err := (BrainDumpTrigger{}).HandleTrigger(context.Background(), events[0], collector); err != nil {
		t.Fatalf("handle: %v", err)
	}

	pending := collector.Pending()
	if len(pending) != 1 {
		t.Fatalf("got %d jobs, want 1", len(pending))
	}
	job := pending[0]
	if job.Kind != outbox.JobProcessBrainDump {
		t.Errorf("kind = %s", job.Kind)
	}
	if job.UserID != userID {
		t.Errorf("user_id = %s, want %s", job.UserID, userID)
	}
	if job.Payload["day_id"] != day.ID.String() {
		t.Errorf("day_id = %v, want %s", job.Payload["day_id"], day.ID)
	}
	if job.Payload["item_id"] != item.ID.String() {
		t.Errorf("item_id = %v, want %s", job.Payload["item_id"], item.ID)
	}
}

func TestNotificationTriggerOnTaskCompleted(t *testing.T) {
	t.Parallel()

	task := domain.NewTask(uuid.New(), "write report", time.Now(), time.Now())
	task.CollectEvents()
	if err := task.RecordAction(domain.TaskActionComplete, domain.ActionPayload{}, time.Now()); err != nil {
		t.Fatalf("complete: %v", err)
	}

	collector := outbox.NewCollector(nil, slog.New(slog.DiscardHandler))
	events := task.CollectEvents()
	// events[0] is task.completed, events[1] the status change.
	if err := (NotificationTrigger{}).HandleTrigger(context.Background(), events[0], collector); err != nil {
		t.Fatalf("handle: %v", err)
	}

	pending := collector.Pending()
	if len(pending) != 1 || pending[0].Kind != outbox.JobSendNotification {
		t.Fatalf("pending = %v", pending)
	}
	if pending[0].Payload["body"] != "write report" {
		t.Errorf("body = %v, want the task name", pending[0].Payload["body"])
	}
}

func TestCalendarSyncTriggerUsesEntityID(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entry := domain.NewCalendarEntry(userID, "ext-1", "dentist",
		time.Now(), time.Now().Add(time.Hour), time.Now())

	collector := outbox.NewCollector(nil, slog.New(slog.DiscardHandler))
	events := entry.CollectEvents()

	if err := (CalendarSyncTrigger{}).HandleTrigger(context.Background(), events[0], collector); err != nil {
		t.Fatalf("handle: %v", err)
	}

	pending := collector.Pending()
	if len(pending) != 1 || pending[0].Kind != outbox.JobSyncCalendar {
		t.Fatalf("pending = %v", pending)
	}
	if pending[0].Payload["entry_id"] != entry.ID.String() {
		t.Errorf("entry_id = %v, want %s", pending[0].Payload["entry_id"], entry.ID)
	}
}
