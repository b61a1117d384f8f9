package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind tags a domain event variant.
type EventKind string

const (
	EventTaskCreated        EventKind = "task.created"
	EventTaskUpdated        EventKind = "task.updated"
	EventTaskCompleted      EventKind = "task.completed"
	EventTaskPunted         EventKind = "task.punted"
	EventTaskSnoozed        EventKind = "task.snoozed"
	EventTaskStatusChanged  EventKind = "task.status_changed"
	EventTaskRescheduled    EventKind = "task.rescheduled"
	EventTaskActionRecorded EventKind = "task.action_recorded"

	EventDayCreated     EventKind = "day.created"
	EventDayUpdated     EventKind = "day.updated"
	EventDayUnscheduled EventKind = "day.unscheduled"

	EventReminderAdded         EventKind = "day.reminder_added"
	EventReminderRemoved       EventKind = "day.reminder_removed"
	EventReminderStatusChanged EventKind = "day.reminder_status_changed"

	EventBrainDumpItemAdded         EventKind = "day.brain_dump_item_added"
	EventBrainDumpItemRemoved       EventKind = "day.brain_dump_item_removed"
	EventBrainDumpItemStatusChanged EventKind = "day.brain_dump_item_status_changed"
	EventBrainDumpItemTypeChanged   EventKind = "day.brain_dump_item_type_changed"

	EventAlarmAdded         EventKind = "day.alarm_added"
	EventAlarmRemoved       EventKind = "day.alarm_removed"
	EventAlarmStatusChanged EventKind = "day.alarm_status_changed"
	EventDayAlarmTriggered  EventKind = "day.alarm_triggered"

	EventRoutineCreated EventKind = "routine.created"
	EventRoutineUpdated EventKind = "routine.updated"
	EventRoutineDeleted EventKind = "routine.deleted"

	EventTimeBlockAdded   EventKind = "template.time_block_added"
	EventTimeBlockRemoved EventKind = "template.time_block_removed"
	EventTemplateUpdated  EventKind = "template.updated"

	EventCalendarEntryUpserted EventKind = "calendar.entry_upserted"

	EventUserUpdated EventKind = "user.updated"
)

func (k EventKind) String() string { return string(k) }

// Event is an immutable record of something that happened to an entity.
// It carries enough denormalized context (owner, entity coordinates,
// occurrence time, kind-specific payload) to be handled without re-reading
// the entity. Never mutate an Event after it has been appended.
type Event struct {
	ID         uuid.UUID
	Kind       EventKind
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   uuid.UUID
	OccurredAt time.Time
	Payload    map[string]any
}

// NewEvent constructs an event for the given entity coordinates.
func NewEvent(kind EventKind, userID uuid.UUID, entityType EntityType, entityID uuid.UUID, occurredAt time.Time, payload map[string]any) Event {
	return Event{
		ID:         uuid.New(),
		Kind:       kind,
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		OccurredAt: occurredAt,
		Payload:    payload,
	}
}
