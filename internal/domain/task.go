package domain

import (
	"time"

	"github.com/google/uuid"
)

// Task is a user-owned activity scheduled on a calendar date. Tasks created
// by routine expansion carry denormalized routine fields so later routine
// edits never rewrite them.
type Task struct {
	Meta
	Name         string
	Notes        *string
	Category     *string
	ScheduledOn  time.Time
	Status       TaskStatus
	CompletedAt  *time.Time
	SnoozedUntil *time.Time
	RoutineID    *uuid.UUID
}

// Kind satisfies Entity.
func (t *Task) Kind() EntityType { return EntityTypeTask }

// NewTask creates a task in NOT_STARTED and records TaskCreated.
func NewTask(userID uuid.UUID, name string, scheduledOn time.Time, now time.Time) *Task {
	t := &Task{
		Meta:        NewMeta(userID, now),
		Name:        name,
		ScheduledOn: DateOf(scheduledOn),
		Status:      TaskStatusNotStarted,
	}
	t.AddEvent(NewEvent(EventTaskCreated, userID, EntityTypeTask, t.ID, now, map[string]any{
		"name":         name,
		"scheduled_on": t.ScheduledOn,
	}))
	return t
}

// ActionPayload carries the optional data a task action may require.
type ActionPayload struct {
	SnoozedUntil *time.Time
	Note         *string
}

// RecordAction applies an action to the task's state machine.
//
//   - COMPLETE sets CompletedAt and moves to COMPLETE; completing an
//     already-complete task is an event-free no-op.
//   - PUNT moves to PUNT and clears CompletedAt.
//   - SNOOZE requires SnoozedUntil in the payload, moves to SNOOZE and
//     clears CompletedAt. Snooze always wins, even over COMPLETE.
//   - DELETE, CANCEL and any other action are recorded for audit without a
//     status transition.
//
// Every transition that changes the status additionally emits
// TaskStatusChanged after the action-specific event.
func (t *Task) RecordAction(action TaskAction, payload ActionPayload, now time.Time) error {
	switch action {
	case TaskActionComplete:
		if t.Status == TaskStatusComplete {
			return nil
		}
		completedAt := now
		t.CompletedAt = &completedAt
		t.SnoozedUntil = nil
		t.AddEvent(NewEvent(EventTaskCompleted, t.UserID, EntityTypeTask, t.ID, now, map[string]any{
			"name":         t.Name,
			"completed_at": completedAt,
		}))
		t.setStatus(TaskStatusComplete, now)

	case TaskActionPunt:
		t.CompletedAt = nil
		t.AddEvent(NewEvent(EventTaskPunted, t.UserID, EntityTypeTask, t.ID, now, nil))
		t.setStatus(TaskStatusPunt, now)

	case TaskActionSnooze:
		if payload.SnoozedUntil == nil {
			return NewValidationError("snoozed_until", "required for snooze")
		}
		t.CompletedAt = nil
		t.SnoozedUntil = payload.SnoozedUntil
		t.AddEvent(NewEvent(EventTaskSnoozed, t.UserID, EntityTypeTask, t.ID, now, map[string]any{
			"snoozed_until": *payload.SnoozedUntil,
		}))
		t.setStatus(TaskStatusSnooze, now)

	default:
		// Audit-only actions: no status transition.
		changes := map[string]any{"action": action.String()}
		if payload.Note != nil {
			changes["note"] = *payload.Note
		}
		t.Touch(now)
		t.AddEvent(NewEvent(EventTaskActionRecorded, t.UserID, EntityTypeTask, t.ID, now, changes))
	}
	return nil
}

// Reschedule moves the task to another date. A no-op (no event, no touch)
// when the date is unchanged.
func (t *Task) Reschedule(newDate time.Time, now time.Time) {
	newDate = DateOf(newDate)
	if t.ScheduledOn.Equal(newDate) {
		return
	}
	oldDate := t.ScheduledOn
	t.ScheduledOn = newDate
	t.Touch(now)
	t.AddEvent(NewEvent(EventTaskRescheduled, t.UserID, EntityTypeTask, t.ID, now, map[string]any{
		"from": oldDate,
		"to":   newDate,
	}))
}

// ApplyUpdate merges the set fields of u onto the task, refreshes UpdatedAt,
// and appends exactly one TaskUpdated event carrying the update. An empty
// update still refreshes UpdatedAt and emits the event.
func (t *Task) ApplyUpdate(u TaskUpdate, now time.Time) {
	u.Name.Apply(&t.Name)
	u.Notes.ApplyPtr(&t.Notes)
	u.Category.ApplyPtr(&t.Category)
	t.Touch(now)
	t.AddEvent(NewEvent(EventTaskUpdated, t.UserID, EntityTypeTask, t.ID, now, u.Changes()))
}

func (t *Task) setStatus(status TaskStatus, now time.Time) {
	if t.Status == status {
		return
	}
	old := t.Status
	t.Status = status
	t.Touch(now)
	t.AddEvent(NewEvent(EventTaskStatusChanged, t.UserID, EntityTypeTask, t.ID, now, map[string]any{
		"from": old.String(),
		"to":   status.String(),
	}))
}
