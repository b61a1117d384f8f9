package day

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/opt"
)

// UpdateDayInput holds the partial update for a day's own fields.
type UpdateDayInput struct {
	DayID uuid.UUID
	Notes opt.Val[string]
}

// Validate checks all fields and collects all errors.
func (i UpdateDayInput) Validate() error {
	if i.DayID == uuid.Nil {
		return domain.NewValidationError("day_id", "required")
	}
	return nil
}

// AddReminderInput adds a reminder to a day.
type AddReminderInput struct {
	DayID uuid.UUID
	Text  string
}

// Validate checks all fields and collects all errors.
func (i AddReminderInput) Validate() error {
	var errs []domain.FieldError
	if i.DayID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "day_id", Message: "required"})
	}
	text := strings.TrimSpace(i.Text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if len(text) > 500 {
		errs = append(errs, domain.FieldError{Field: "text", Message: "max 500 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ReminderStatusInput transitions a reminder.
type ReminderStatusInput struct {
	DayID      uuid.UUID
	ReminderID uuid.UUID
	Status     domain.ReminderStatus
}

// Validate checks all fields and collects all errors.
func (i ReminderStatusInput) Validate() error {
	var errs []domain.FieldError
	if i.DayID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "day_id", Message: "required"})
	}
	if i.ReminderID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "reminder_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddBrainDumpItemInput captures a thought onto a day.
type AddBrainDumpItemInput struct {
	DayID uuid.UUID
	Text  string
}

// Validate checks all fields and collects all errors.
func (i AddBrainDumpItemInput) Validate() error {
	var errs []domain.FieldError
	if i.DayID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "day_id", Message: "required"})
	}
	text := strings.TrimSpace(i.Text)
	if text == "" {
		errs = append(errs, domain.FieldError{Field: "text", Message: "required"})
	}
	if len(text) > 2000 {
		errs = append(errs, domain.FieldError{Field: "text", Message: "max 2000 characters"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// BrainDumpStatusInput transitions a brain-dump item.
type BrainDumpStatusInput struct {
	DayID  uuid.UUID
	ItemID uuid.UUID
	Status domain.BrainDumpStatus
}

// Validate checks all fields and collects all errors.
func (i BrainDumpStatusInput) Validate() error {
	var errs []domain.FieldError
	if i.DayID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "day_id", Message: "required"})
	}
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ClassifyBrainDumpItemInput records a classification verdict for an item.
type ClassifyBrainDumpItemInput struct {
	DayID  uuid.UUID
	ItemID uuid.UUID
	Type   domain.BrainDumpType
}

// Validate checks all fields and collects all errors.
func (i ClassifyBrainDumpItemInput) Validate() error {
	var errs []domain.FieldError
	if i.DayID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "day_id", Message: "required"})
	}
	if i.ItemID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "item_id", Message: "required"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown type"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AddAlarmInput schedules an alarm on a day.
type AddAlarmInput struct {
	DayID uuid.UUID
	Label string
	At    time.Time
}

// Validate checks all fields and collects all errors.
func (i AddAlarmInput) Validate() error {
	var errs []domain.FieldError
	if i.DayID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "day_id", Message: "required"})
	}
	if strings.TrimSpace(i.Label) == "" {
		errs = append(errs, domain.FieldError{Field: "label", Message: "required"})
	}
	if i.At.IsZero() {
		errs = append(errs, domain.FieldError{Field: "at", Message: "required"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// AlarmStatusInput transitions an alarm, optionally snoozing it.
type AlarmStatusInput struct {
	DayID        uuid.UUID
	AlarmID      uuid.UUID
	Status       domain.AlarmStatus
	SnoozedUntil *time.Time
}

// Validate checks all fields and collects all errors. The snooze timestamp
// requirement is enforced by the domain, where the rule lives.
func (i AlarmStatusInput) Validate() error {
	var errs []domain.FieldError
	if i.DayID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "day_id", Message: "required"})
	}
	if i.AlarmID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "alarm_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
