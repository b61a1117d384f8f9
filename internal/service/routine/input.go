package routine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/opt"
)

// CreateRoutineInput holds the parameters for creating a routine.
type CreateRoutineInput struct {
	Name     string
	Category *string
	Weekdays domain.Weekdays
}

// Validate checks all fields and collects all errors.
func (i CreateRoutineInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateRoutineInput holds the partial update for a routine definition.
type UpdateRoutineInput struct {
	RoutineID uuid.UUID
	Name      opt.Val[string]
	Category  opt.Val[string]
	Weekdays  opt.Val[domain.Weekdays]
	Active    opt.Val[bool]
}

// Validate checks all fields and collects all errors.
func (i UpdateRoutineInput) Validate() error {
	var errs []domain.FieldError

	if i.RoutineID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "routine_id", Message: "required"})
	}
	if name, ok := i.Name.Value(); ok && strings.TrimSpace(name) == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be blank"})
	}
	if i.Name.IsClear() {
		errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be cleared"})
	}
	if i.Weekdays.IsClear() {
		errs = append(errs, domain.FieldError{Field: "weekdays", Message: "cannot be cleared"})
	}
	if i.Active.IsClear() {
		errs = append(errs, domain.FieldError{Field: "active", Message: "cannot be cleared"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteRoutineInput identifies the routine to delete.
type DeleteRoutineInput struct {
	RoutineID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteRoutineInput) Validate() error {
	if i.RoutineID == uuid.Nil {
		return domain.NewValidationError("routine_id", "required")
	}
	return nil
}
