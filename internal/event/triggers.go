package event

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/outbox"
)

// BrainDumpTrigger schedules background classification for every captured
// brain-dump item. Subscribe it to BrainDumpItemAdded.
type BrainDumpTrigger struct{}

func (BrainDumpTrigger) Name() string { return "brain_dump_trigger" }

func (BrainDumpTrigger) HandleTrigger(_ context.Context, e domain.Event, sch outbox.Scheduler) error {
	itemID, err := payloadUUID(e.Payload, "item_id")
	if err != nil {
		return err
	}
	sch.ScheduleBrainDumpProcess(e.UserID, e.EntityID, itemID)
	return nil
}

// NotificationTrigger schedules user notifications for events the user
// should hear about. Subscribe it to TaskCompleted and DayAlarmTriggered.
type NotificationTrigger struct{}

func (NotificationTrigger) Name() string { return "notification_trigger" }

func (NotificationTrigger) HandleTrigger(_ context.Context, e domain.Event, sch outbox.Scheduler) error {
	switch e.Kind {
	case domain.EventTaskCompleted:
		sch.ScheduleNotification(e.UserID, "Task completed", payloadString(e.Payload, "name"))
	case domain.EventDayAlarmTriggered:
		sch.ScheduleNotification(e.UserID, "Alarm", payloadString(e.Payload, "label"))
	default:
		return fmt.Errorf("notification trigger subscribed to unexpected kind %s", e.Kind)
	}
	return nil
}

// CalendarSyncTrigger schedules provider synchronization whenever local
// state diverges from the external calendar. Subscribe it to
// CalendarEntryUpserted and TaskRescheduled.
type CalendarSyncTrigger struct{}

func (CalendarSyncTrigger) Name() string { return "calendar_sync_trigger" }

func (CalendarSyncTrigger) HandleTrigger(_ context.Context, e domain.Event, sch outbox.Scheduler) error {
	sch.ScheduleCalendarSync(e.UserID, e.EntityID)
	return nil
}

func payloadUUID(payload map[string]any, key string) (uuid.UUID, error) {
	switch v := payload[key].(type) {
	case uuid.UUID:
		return v, nil
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			return uuid.Nil, fmt.Errorf("payload %s: %w", key, err)
		}
		return id, nil
	default:
		return uuid.Nil, fmt.Errorf("payload %s: missing or not an id", key)
	}
}

func payloadString(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}
