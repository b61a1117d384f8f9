package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a goal/reminder owned by a Day.
type Reminder struct {
	ID        uuid.UUID      `json:"id"`
	Text      string         `json:"text"`
	Status    ReminderStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// BrainDumpItem is a quick-capture thought owned by a Day. Items start
// UNSORTED/NEW; the background processor (or the user) classifies them.
type BrainDumpItem struct {
	ID        uuid.UUID       `json:"id"`
	Text      string          `json:"text"`
	Type      BrainDumpType   `json:"type"`
	Status    BrainDumpStatus `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// Alarm is a scheduled wake-up owned by a Day.
type Alarm struct {
	ID           uuid.UUID    `json:"id"`
	Label        string       `json:"label"`
	At           time.Time    `json:"at"`
	Status       AlarmStatus  `json:"status"`
	SnoozedUntil *time.Time   `json:"snoozed_until,omitempty"`
}

// Day aggregates everything belonging to one (user, calendar date):
// reminders, brain-dump items, and alarms. Days are created on first access
// for a date (from the user's template when one exists) and are never
// hard-deleted in normal flow, only unscheduled.
type Day struct {
	Meta
	Date        time.Time
	Notes       *string
	TemplateID  *uuid.UUID
	Unscheduled bool
	Reminders   []Reminder
	BrainDump   []BrainDumpItem
	Alarms      []Alarm
}

// Kind satisfies Entity.
func (d *Day) Kind() EntityType { return EntityTypeDay }

// NewDay creates an empty day for a date and records DayCreated.
func NewDay(userID uuid.UUID, date time.Time, now time.Time) *Day {
	d := &Day{
		Meta: NewMeta(userID, now),
		Date: DateOf(date),
	}
	d.AddEvent(NewEvent(EventDayCreated, userID, EntityTypeDay, d.ID, now, map[string]any{
		"date": d.Date,
	}))
	return d
}

// NewDayFromTemplate creates a day pre-populated with the template's
// default alarms, placed at their minute-of-day offsets on the target date.
func NewDayFromTemplate(userID uuid.UUID, date time.Time, tpl *DayTemplate, now time.Time) *Day {
	d := NewDay(userID, date, now)
	d.TemplateID = &tpl.ID
	for _, a := range tpl.Alarms {
		d.Alarms = append(d.Alarms, Alarm{
			ID:     uuid.New(),
			Label:  a.Label,
			At:     d.Date.Add(time.Duration(a.At) * time.Minute),
			Status: AlarmStatusScheduled,
		})
	}
	return d
}

// ApplyUpdate merges the set fields of u onto the day, refreshes UpdatedAt,
// and appends exactly one DayUpdated event carrying the update.
func (d *Day) ApplyUpdate(u DayUpdate, now time.Time) {
	u.Notes.ApplyPtr(&d.Notes)
	d.Touch(now)
	d.AddEvent(NewEvent(EventDayUpdated, d.UserID, EntityTypeDay, d.ID, now, u.Changes()))
}

// Unschedule marks the day unscheduled. Idempotent: a second call changes
// nothing and emits nothing.
func (d *Day) Unschedule(now time.Time) {
	if d.Unscheduled {
		return
	}
	d.Unscheduled = true
	d.Touch(now)
	d.AddEvent(NewEvent(EventDayUnscheduled, d.UserID, EntityTypeDay, d.ID, now, nil))
}

// ---------------------------------------------------------------------------
// Reminders
// ---------------------------------------------------------------------------

// AddReminder appends a PENDING reminder and emits ReminderAdded.
func (d *Day) AddReminder(text string, now time.Time) *Reminder {
	r := Reminder{
		ID:        uuid.New(),
		Text:      text,
		Status:    ReminderStatusPending,
		CreatedAt: now,
	}
	d.Reminders = append(d.Reminders, r)
	d.Touch(now)
	d.AddEvent(NewEvent(EventReminderAdded, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
		"reminder_id": r.ID,
		"text":        text,
	}))
	return &d.Reminders[len(d.Reminders)-1]
}

// RemoveReminder deletes a reminder. ErrNotFound when absent.
func (d *Day) RemoveReminder(id uuid.UUID, now time.Time) error {
	for i, r := range d.Reminders {
		if r.ID == id {
			d.Reminders = append(d.Reminders[:i], d.Reminders[i+1:]...)
			d.Touch(now)
			d.AddEvent(NewEvent(EventReminderRemoved, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
				"reminder_id": id,
			}))
			return nil
		}
	}
	return ErrNotFound
}

// UpdateReminderStatus transitions a reminder. ErrNotFound when absent; an
// update to the current status is an event-free no-op.
func (d *Day) UpdateReminderStatus(id uuid.UUID, status ReminderStatus, now time.Time) error {
	for i := range d.Reminders {
		if d.Reminders[i].ID != id {
			continue
		}
		if d.Reminders[i].Status == status {
			return nil
		}
		old := d.Reminders[i].Status
		d.Reminders[i].Status = status
		d.Touch(now)
		d.AddEvent(NewEvent(EventReminderStatusChanged, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
			"reminder_id": id,
			"from":        old.String(),
			"to":          status.String(),
		}))
		return nil
	}
	return ErrNotFound
}

// ---------------------------------------------------------------------------
// Brain dump
// ---------------------------------------------------------------------------

// AddBrainDumpItem captures a thought as UNSORTED/NEW and emits
// BrainDumpItemAdded, which triggers background processing after commit.
func (d *Day) AddBrainDumpItem(text string, now time.Time) *BrainDumpItem {
	item := BrainDumpItem{
		ID:        uuid.New(),
		Text:      text,
		Type:      BrainDumpTypeUnsorted,
		Status:    BrainDumpStatusNew,
		CreatedAt: now,
	}
	d.BrainDump = append(d.BrainDump, item)
	d.Touch(now)
	d.AddEvent(NewEvent(EventBrainDumpItemAdded, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
		"item_id": item.ID,
		"text":    text,
	}))
	return &d.BrainDump[len(d.BrainDump)-1]
}

// RemoveBrainDumpItem deletes an item. ErrNotFound when absent.
func (d *Day) RemoveBrainDumpItem(id uuid.UUID, now time.Time) error {
	for i, item := range d.BrainDump {
		if item.ID == id {
			d.BrainDump = append(d.BrainDump[:i], d.BrainDump[i+1:]...)
			d.Touch(now)
			d.AddEvent(NewEvent(EventBrainDumpItemRemoved, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
				"item_id": id,
			}))
			return nil
		}
	}
	return ErrNotFound
}

// UpdateBrainDumpItemStatus transitions an item. ErrNotFound when absent;
// an update to the current status is an event-free no-op.
func (d *Day) UpdateBrainDumpItemStatus(id uuid.UUID, status BrainDumpStatus, now time.Time) error {
	for i := range d.BrainDump {
		if d.BrainDump[i].ID != id {
			continue
		}
		if d.BrainDump[i].Status == status {
			return nil
		}
		old := d.BrainDump[i].Status
		d.BrainDump[i].Status = status
		d.Touch(now)
		d.AddEvent(NewEvent(EventBrainDumpItemStatusChanged, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
			"item_id": id,
			"from":    old.String(),
			"to":      status.String(),
		}))
		return nil
	}
	return ErrNotFound
}

// UpdateBrainDumpItemType reclassifies an item. ErrNotFound when absent;
// an update to the current type is an event-free no-op.
func (d *Day) UpdateBrainDumpItemType(id uuid.UUID, typ BrainDumpType, now time.Time) error {
	for i := range d.BrainDump {
		if d.BrainDump[i].ID != id {
			continue
		}
		if d.BrainDump[i].Type == typ {
			return nil
		}
		old := d.BrainDump[i].Type
		d.BrainDump[i].Type = typ
		d.Touch(now)
		d.AddEvent(NewEvent(EventBrainDumpItemTypeChanged, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
			"item_id": id,
			"from":    old.String(),
			"to":      typ.String(),
		}))
		return nil
	}
	return ErrNotFound
}

// ---------------------------------------------------------------------------
// Alarms
// ---------------------------------------------------------------------------

// AddAlarm schedules an alarm and emits AlarmAdded.
func (d *Day) AddAlarm(label string, at time.Time, now time.Time) *Alarm {
	a := Alarm{
		ID:     uuid.New(),
		Label:  label,
		At:     at,
		Status: AlarmStatusScheduled,
	}
	d.Alarms = append(d.Alarms, a)
	d.Touch(now)
	d.AddEvent(NewEvent(EventAlarmAdded, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
		"alarm_id": a.ID,
		"label":    label,
		"at":       at,
	}))
	return &d.Alarms[len(d.Alarms)-1]
}

// RemoveAlarm deletes an alarm. ErrNotFound when absent.
func (d *Day) RemoveAlarm(id uuid.UUID, now time.Time) error {
	for i, a := range d.Alarms {
		if a.ID == id {
			d.Alarms = append(d.Alarms[:i], d.Alarms[i+1:]...)
			d.Touch(now)
			d.AddEvent(NewEvent(EventAlarmRemoved, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
				"alarm_id": id,
			}))
			return nil
		}
	}
	return ErrNotFound
}

// UpdateAlarmStatus transitions an alarm; SNOOZED requires a snooze
// timestamp. ErrNotFound when absent; an update that changes neither the
// status nor the snooze timestamp is an event-free no-op.
func (d *Day) UpdateAlarmStatus(id uuid.UUID, status AlarmStatus, snoozedUntil *time.Time, now time.Time) error {
	if status == AlarmStatusSnoozed && snoozedUntil == nil {
		return NewValidationError("snoozed_until", "required when snoozing an alarm")
	}
	for i := range d.Alarms {
		a := &d.Alarms[i]
		if a.ID != id {
			continue
		}
		sameSnooze := (a.SnoozedUntil == nil && snoozedUntil == nil) ||
			(a.SnoozedUntil != nil && snoozedUntil != nil && a.SnoozedUntil.Equal(*snoozedUntil))
		if a.Status == status && sameSnooze {
			return nil
		}
		old := a.Status
		a.Status = status
		a.SnoozedUntil = snoozedUntil
		d.Touch(now)
		payload := map[string]any{
			"alarm_id": id,
			"from":     old.String(),
			"to":       status.String(),
		}
		if snoozedUntil != nil {
			payload["snoozed_until"] = *snoozedUntil
		}
		d.AddEvent(NewEvent(EventAlarmStatusChanged, d.UserID, EntityTypeDay, d.ID, now, payload))
		return nil
	}
	return ErrNotFound
}

// TriggerAlarm marks an alarm TRIGGERED and emits DayAlarmTriggered, the
// event notification handlers fan out on. ErrNotFound when absent; a
// second trigger is an event-free no-op.
func (d *Day) TriggerAlarm(id uuid.UUID, now time.Time) error {
	for i := range d.Alarms {
		a := &d.Alarms[i]
		if a.ID != id {
			continue
		}
		if a.Status == AlarmStatusTriggered {
			return nil
		}
		a.Status = AlarmStatusTriggered
		a.SnoozedUntil = nil
		d.Touch(now)
		d.AddEvent(NewEvent(EventDayAlarmTriggered, d.UserID, EntityTypeDay, d.ID, now, map[string]any{
			"alarm_id": id,
			"label":    a.Label,
			"at":       a.At,
		}))
		return nil
	}
	return ErrNotFound
}

// FindBrainDumpItem returns the item with the given ID, or ErrNotFound.
func (d *Day) FindBrainDumpItem(id uuid.UUID) (*BrainDumpItem, error) {
	for i := range d.BrainDump {
		if d.BrainDump[i].ID == id {
			return &d.BrainDump[i], nil
		}
	}
	return nil, ErrNotFound
}
