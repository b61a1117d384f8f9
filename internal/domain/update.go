package domain

import (
	"time"

	"github.com/daymate/backend/pkg/opt"
)

// Update objects are immutable partial descriptions of a requested change.
// Absent fields are no-ops; set fields overwrite; explicit clears null the
// target. They are pure data; all behavior lives on the entities'
// ApplyUpdate methods.

// TaskUpdate describes a partial change to a Task.
type TaskUpdate struct {
	Name     opt.Val[string]
	Notes    opt.Val[string]
	Category opt.Val[string]
}

// Changes renders the update as an event payload.
func (u TaskUpdate) Changes() map[string]any {
	m := map[string]any{}
	changeVal(m, "name", u.Name)
	changeVal(m, "notes", u.Notes)
	changeVal(m, "category", u.Category)
	return m
}

// DayUpdate describes a partial change to a Day's own fields.
type DayUpdate struct {
	Notes opt.Val[string]
}

// Changes renders the update as an event payload.
func (u DayUpdate) Changes() map[string]any {
	m := map[string]any{}
	changeVal(m, "notes", u.Notes)
	return m
}

// RoutineUpdate describes a partial change to a Routine definition.
// Edits never retroactively alter tasks already generated from it.
type RoutineUpdate struct {
	Name     opt.Val[string]
	Category opt.Val[string]
	Weekdays opt.Val[Weekdays]
	Active   opt.Val[bool]
}

// Changes renders the update as an event payload.
func (u RoutineUpdate) Changes() map[string]any {
	m := map[string]any{}
	changeVal(m, "name", u.Name)
	changeVal(m, "category", u.Category)
	changeVal(m, "weekdays", u.Weekdays)
	changeVal(m, "active", u.Active)
	return m
}

// CalendarEntryUpdate describes a partial change to a mirrored calendar entry.
type CalendarEntryUpdate struct {
	Title    opt.Val[string]
	StartsAt opt.Val[time.Time]
	EndsAt   opt.Val[time.Time]
	Location opt.Val[string]
}

// Changes renders the update as an event payload.
func (u CalendarEntryUpdate) Changes() map[string]any {
	m := map[string]any{}
	changeVal(m, "title", u.Title)
	changeVal(m, "starts_at", u.StartsAt)
	changeVal(m, "ends_at", u.EndsAt)
	changeVal(m, "location", u.Location)
	return m
}

// UserUpdate describes a partial change to a user's profile and
// notification preferences.
type UserUpdate struct {
	DisplayName   opt.Val[string]
	Timezone      opt.Val[string]
	NotifyByEmail opt.Val[bool]
	NotifyByPush  opt.Val[bool]
}

// Changes renders the update as an event payload.
func (u UserUpdate) Changes() map[string]any {
	m := map[string]any{}
	changeVal(m, "display_name", u.DisplayName)
	changeVal(m, "timezone", u.Timezone)
	changeVal(m, "notify_by_email", u.NotifyByEmail)
	changeVal(m, "notify_by_push", u.NotifyByPush)
	return m
}

func changeVal[T any](m map[string]any, key string, v opt.Val[T]) {
	switch {
	case v.IsClear():
		m[key] = nil
	case v.IsSet():
		val, _ := v.Value()
		m[key] = val
	}
}
