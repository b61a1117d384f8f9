package task

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/opt"
)

// CreateTaskInput holds the parameters for creating a task.
type CreateTaskInput struct {
	Name        string
	Notes       *string
	Category    *string
	ScheduledOn time.Time
}

// Validate checks all fields and collects all errors.
func (i CreateTaskInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}
	if i.ScheduledOn.IsZero() {
		errs = append(errs, domain.FieldError{Field: "scheduled_on", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTaskInput holds the partial update for a task.
type UpdateTaskInput struct {
	TaskID   uuid.UUID
	Name     opt.Val[string]
	Notes    opt.Val[string]
	Category opt.Val[string]
}

// Validate checks all fields and collects all errors.
func (i UpdateTaskInput) Validate() error {
	var errs []domain.FieldError

	if i.TaskID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "required"})
	}
	if name, ok := i.Name.Value(); ok && strings.TrimSpace(name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be blank"})
	}
	if i.Name.IsClear() {
		errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be cleared"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RecordActionInput holds a task action request.
type RecordActionInput struct {
	TaskID       uuid.UUID
	Action       domain.TaskAction
	SnoozedUntil *time.Time
	Note         *string
}

// Validate checks all fields and collects all errors.
func (i RecordActionInput) Validate() error {
	var errs []domain.FieldError

	if i.TaskID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "required"})
	}
	if !i.Action.IsValid() {
		errs = append(errs, domain.FieldError{Field: "action", Message: "unknown action"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RescheduleTaskInput moves a task to another date.
type RescheduleTaskInput struct {
	TaskID uuid.UUID
	Date   time.Time
}

// Validate checks all fields and collects all errors.
func (i RescheduleTaskInput) Validate() error {
	var errs []domain.FieldError

	if i.TaskID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "task_id", Message: "required"})
	}
	if i.Date.IsZero() {
		errs = append(errs, domain.FieldError{Field: "date", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListTasksInput holds filtering/pagination parameters for task searches.
type ListTasksInput struct {
	Status      *domain.TaskStatus
	ScheduledOn *time.Time
	RoutineID   *uuid.UUID
	Limit       int
	Offset      int
}

// Validate checks all fields and collects all errors.
func (i ListTasksInput) Validate() error {
	var errs []domain.FieldError

	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteTaskInput identifies the task to delete.
type DeleteTaskInput struct {
	TaskID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteTaskInput) Validate() error {
	if i.TaskID == uuid.Nil {
		return domain.NewValidationError("task_id", "required")
	}
	return nil
}
