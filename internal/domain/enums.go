package domain

// EntityType identifies the kind of domain entity. It keys the unit of
// work's store registry and tags audit records and domain events.
type EntityType string

const (
	EntityTypeTask          EntityType = "TASK"
	EntityTypeDay           EntityType = "DAY"
	EntityTypeRoutine       EntityType = "ROUTINE"
	EntityTypeDayTemplate   EntityType = "DAY_TEMPLATE"
	EntityTypeCalendarEntry EntityType = "CALENDAR_ENTRY"
	EntityTypeUser          EntityType = "USER"
)

func (t EntityType) String() string { return string(t) }

func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeTask, EntityTypeDay, EntityTypeRoutine,
		EntityTypeDayTemplate, EntityTypeCalendarEntry, EntityTypeUser:
		return true
	}
	return false
}

// TaskStatus is the task state machine's state.
type TaskStatus string

const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusNotReady   TaskStatus = "NOT_READY"
	TaskStatusReady      TaskStatus = "READY"
	TaskStatusComplete   TaskStatus = "COMPLETE"
	TaskStatusPunt       TaskStatus = "PUNT"
	TaskStatusSnooze     TaskStatus = "SNOOZE"
)

func (s TaskStatus) String() string { return string(s) }

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusNotReady, TaskStatusReady,
		TaskStatusComplete, TaskStatusPunt, TaskStatusSnooze:
		return true
	}
	return false
}

// TaskAction drives task state transitions via Task.RecordAction.
type TaskAction string

const (
	TaskActionComplete TaskAction = "COMPLETE"
	TaskActionPunt     TaskAction = "PUNT"
	TaskActionSnooze   TaskAction = "SNOOZE"
	TaskActionDelete   TaskAction = "DELETE"
	TaskActionCancel   TaskAction = "CANCEL"
)

func (a TaskAction) String() string { return string(a) }

func (a TaskAction) IsValid() bool {
	switch a {
	case TaskActionComplete, TaskActionPunt, TaskActionSnooze,
		TaskActionDelete, TaskActionCancel:
		return true
	}
	return false
}

// ReminderStatus is the lifecycle state of a day's goal/reminder.
type ReminderStatus string

const (
	ReminderStatusPending   ReminderStatus = "PENDING"
	ReminderStatusDone      ReminderStatus = "DONE"
	ReminderStatusDismissed ReminderStatus = "DISMISSED"
)

func (s ReminderStatus) String() string { return string(s) }

func (s ReminderStatus) IsValid() bool {
	switch s {
	case ReminderStatusPending, ReminderStatusDone, ReminderStatusDismissed:
		return true
	}
	return false
}

// BrainDumpStatus is the processing state of a brain-dump item.
type BrainDumpStatus string

const (
	BrainDumpStatusNew       BrainDumpStatus = "NEW"
	BrainDumpStatusProcessed BrainDumpStatus = "PROCESSED"
	BrainDumpStatusDiscarded BrainDumpStatus = "DISCARDED"
)

func (s BrainDumpStatus) String() string { return string(s) }

func (s BrainDumpStatus) IsValid() bool {
	switch s {
	case BrainDumpStatusNew, BrainDumpStatusProcessed, BrainDumpStatusDiscarded:
		return true
	}
	return false
}

// BrainDumpType classifies what a brain-dump item turned out to be.
// Items start UNSORTED; the background processor (or the user) sorts them.
type BrainDumpType string

const (
	BrainDumpTypeUnsorted BrainDumpType = "UNSORTED"
	BrainDumpTypeTask     BrainDumpType = "TASK"
	BrainDumpTypeNote     BrainDumpType = "NOTE"
	BrainDumpTypeReminder BrainDumpType = "REMINDER"
)

func (t BrainDumpType) String() string { return string(t) }

func (t BrainDumpType) IsValid() bool {
	switch t {
	case BrainDumpTypeUnsorted, BrainDumpTypeTask, BrainDumpTypeNote, BrainDumpTypeReminder:
		return true
	}
	return false
}

// AlarmStatus is the lifecycle state of a day alarm.
type AlarmStatus string

const (
	AlarmStatusScheduled AlarmStatus = "SCHEDULED"
	AlarmStatusTriggered AlarmStatus = "TRIGGERED"
	AlarmStatusSnoozed   AlarmStatus = "SNOOZED"
	AlarmStatusDismissed AlarmStatus = "DISMISSED"
)

func (s AlarmStatus) String() string { return string(s) }

func (s AlarmStatus) IsValid() bool {
	switch s {
	case AlarmStatusScheduled, AlarmStatusTriggered, AlarmStatusSnoozed, AlarmStatusDismissed:
		return true
	}
	return false
}

// AuditAction is the kind of change an audit record describes.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}
