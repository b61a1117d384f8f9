package template

import (
	"strings"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
)

// AddTimeBlockInput reserves a minute-of-day interval for a routine.
type AddTimeBlockInput struct {
	TemplateID uuid.UUID
	RoutineID  uuid.UUID
	Start      domain.MinuteOfDay
	End        domain.MinuteOfDay
}

// Validate checks all fields and collects all errors. Overlap against
// existing blocks is the aggregate's concern, not the input's.
func (i AddTimeBlockInput) Validate() error {
	var errs []domain.FieldError

	if i.TemplateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "template_id", Message: "required"})
	}
	if i.RoutineID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "routine_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RemoveTimeBlockInput identifies a block by its (routine, start) pair.
type RemoveTimeBlockInput struct {
	TemplateID uuid.UUID
	RoutineID  uuid.UUID
	Start      domain.MinuteOfDay
}

// Validate checks all fields and collects all errors.
func (i RemoveTimeBlockInput) Validate() error {
	var errs []domain.FieldError

	if i.TemplateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "template_id", Message: "required"})
	}
	if i.RoutineID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "routine_id", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateTemplateInput holds a template rename.
type UpdateTemplateInput struct {
	TemplateID uuid.UUID
	Name       string
}

// Validate checks all fields and collects all errors.
func (i UpdateTemplateInput) Validate() error {
	var errs []domain.FieldError

	if i.TemplateID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "template_id", Message: "required"})
	}
	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 100 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
