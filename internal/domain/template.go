package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MinuteOfDay is a clock time expressed as minutes since midnight [0, 1440].
type MinuteOfDay int

// Clock renders the minute as "HH:MM".
func (m MinuteOfDay) Clock() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// IsValid reports whether the minute is inside a day. 1440 is allowed as an
// exclusive end bound.
func (m MinuteOfDay) IsValid() bool { return m >= 0 && m <= 24*60 }

// TimeBlock reserves [Start, End) on a template day for a routine.
type TimeBlock struct {
	RoutineID uuid.UUID   `json:"routine_id"`
	Start     MinuteOfDay `json:"start"`
	End       MinuteOfDay `json:"end"`
}

// Overlaps applies the half-open interval test: touching endpoints do not
// overlap.
func (b TimeBlock) Overlaps(other TimeBlock) bool {
	return b.Start < other.End && other.Start < b.End
}

// TemplateAlarm is a default alarm copied onto days created from the template.
type TemplateAlarm struct {
	Label string      `json:"label"`
	At    MinuteOfDay `json:"at"`
}

// DayTemplate is the per-user blueprint for fresh days: default alarms plus
// routine time blocks.
type DayTemplate struct {
	Meta
	Name       string
	TimeBlocks []TimeBlock
	Alarms     []TemplateAlarm
}

// Kind satisfies Entity.
func (t *DayTemplate) Kind() EntityType { return EntityTypeDayTemplate }

// NewDayTemplate creates an empty template.
func NewDayTemplate(userID uuid.UUID, name string, now time.Time) *DayTemplate {
	t := &DayTemplate{
		Meta: NewMeta(userID, now),
		Name: name,
	}
	t.AddEvent(NewEvent(EventTemplateUpdated, userID, EntityTypeDayTemplate, t.ID, now, map[string]any{
		"name": name,
	}))
	return t
}

// Rename changes the template's name. A no-op (no event, no touch) when the
// name is unchanged.
func (t *DayTemplate) Rename(name string, now time.Time) {
	if t.Name == name {
		return
	}
	t.Name = name
	t.Touch(now)
	t.AddEvent(NewEvent(EventTemplateUpdated, t.UserID, EntityTypeDayTemplate, t.ID, now, map[string]any{
		"name": name,
	}))
}

// AddTimeBlock inserts a block after checking bounds and overlap against
// every existing block. The overlap test is half-open: [09:00,10:00) and
// [10:00,11:00) coexist, [09:30,10:30) conflicts with the first.
func (t *DayTemplate) AddTimeBlock(block TimeBlock, now time.Time) error {
	if !block.Start.IsValid() || !block.End.IsValid() || block.Start >= block.End {
		return NewValidationError("time_block", "start must be before end and inside the day")
	}
	for _, existing := range t.TimeBlocks {
		if block.Overlaps(existing) {
			return NewValidationError("time_block", fmt.Sprintf(
				"overlaps existing block [%s,%s) for routine %s",
				existing.Start.Clock(), existing.End.Clock(), existing.RoutineID,
			))
		}
	}
	t.TimeBlocks = append(t.TimeBlocks, block)
	t.Touch(now)
	t.AddEvent(NewEvent(EventTimeBlockAdded, t.UserID, EntityTypeDayTemplate, t.ID, now, map[string]any{
		"routine_id": block.RoutineID,
		"start":      block.Start.Clock(),
		"end":        block.End.Clock(),
	}))
	return nil
}

// RemoveTimeBlock deletes the block matching (routine, start). ErrNotFound
// when no block matches.
func (t *DayTemplate) RemoveTimeBlock(routineID uuid.UUID, start MinuteOfDay, now time.Time) error {
	for i, b := range t.TimeBlocks {
		if b.RoutineID == routineID && b.Start == start {
			t.TimeBlocks = append(t.TimeBlocks[:i], t.TimeBlocks[i+1:]...)
			t.Touch(now)
			t.AddEvent(NewEvent(EventTimeBlockRemoved, t.UserID, EntityTypeDayTemplate, t.ID, now, map[string]any{
				"routine_id": routineID,
				"start":      start.Clock(),
			}))
			return nil
		}
	}
	return ErrNotFound
}
