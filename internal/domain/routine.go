package domain

import (
	"time"

	"github.com/google/uuid"
)

// Weekdays is a bit set of active weekdays. The zero value means "every day".
type Weekdays uint8

// WeekdaysOf builds a set from the given weekdays.
func WeekdaysOf(days ...time.Weekday) Weekdays {
	var w Weekdays
	for _, d := range days {
		w |= 1 << uint(d)
	}
	return w
}

// Contains reports whether d is in the set. The empty set contains every day.
func (w Weekdays) Contains(d time.Weekday) bool {
	if w == 0 {
		return true
	}
	return w&(1<<uint(d)) != 0
}

// Routine is a template for recurring tasks with an activation schedule.
// It is read-only at task-generation time: generation copies denormalized
// fields onto the task so later routine edits never rewrite generated tasks.
type Routine struct {
	Meta
	Name     string
	Category *string
	Weekdays Weekdays
	Active   bool
}

// Kind satisfies Entity.
func (r *Routine) Kind() EntityType { return EntityTypeRoutine }

// NewRoutine creates an active routine and records RoutineCreated.
func NewRoutine(userID uuid.UUID, name string, weekdays Weekdays, now time.Time) *Routine {
	r := &Routine{
		Meta:     NewMeta(userID, now),
		Name:     name,
		Weekdays: weekdays,
		Active:   true,
	}
	r.AddEvent(NewEvent(EventRoutineCreated, userID, EntityTypeRoutine, r.ID, now, map[string]any{
		"name": name,
	}))
	return r
}

// IsDueOn reports whether the routine should generate a task for the date.
func (r *Routine) IsDueOn(date time.Time) bool {
	return r.Active && r.Weekdays.Contains(DateOf(date).Weekday())
}

// GenerateTask materializes the routine into a task for the date, copying
// the name and category so the task survives later routine edits unchanged.
func (r *Routine) GenerateTask(date time.Time, now time.Time) *Task {
	t := NewTask(r.UserID, r.Name, date, now)
	routineID := r.ID
	t.RoutineID = &routineID
	if r.Category != nil {
		category := *r.Category
		t.Category = &category
	}
	return t
}

// ApplyUpdate merges the set fields of u onto the routine, refreshes
// UpdatedAt, and appends exactly one RoutineUpdated event carrying the
// update.
func (r *Routine) ApplyUpdate(u RoutineUpdate, now time.Time) {
	u.Name.Apply(&r.Name)
	u.Category.ApplyPtr(&r.Category)
	u.Weekdays.Apply(&r.Weekdays)
	u.Active.Apply(&r.Active)
	r.Touch(now)
	r.AddEvent(NewEvent(EventRoutineUpdated, r.UserID, EntityTypeRoutine, r.ID, now, u.Changes()))
}

// MarkDeleted records RoutineDeleted ahead of removal through the unit of
// work.
func (r *Routine) MarkDeleted(now time.Time) {
	r.Touch(now)
	r.AddEvent(NewEvent(EventRoutineDeleted, r.UserID, EntityTypeRoutine, r.ID, now, nil))
}
