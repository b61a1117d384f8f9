package user

import (
	"strings"
	"time"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/opt"
)

// UpdateUserInput holds the partial update for the current user's profile.
type UpdateUserInput struct {
	DisplayName   opt.Val[string]
	Timezone      opt.Val[string]
	NotifyByEmail opt.Val[bool]
	NotifyByPush  opt.Val[bool]
}

// Validate checks all fields and collects all errors.
func (i UpdateUserInput) Validate() error {
	var errs []domain.FieldError

	if name, ok := i.DisplayName.Value(); ok && strings.TrimSpace(name) == "" {
		errs = append(errs, domain.FieldError{Field: "display_name", Message: "cannot be blank"})
	}
	if i.DisplayName.IsClear() {
		errs = append(errs, domain.FieldError{Field: "display_name", Message: "cannot be cleared"})
	}
	if tz, ok := i.Timezone.Value(); ok {
		if _, err := time.LoadLocation(tz); err != nil {
			errs = append(errs, domain.FieldError{Field: "timezone", Message: "unknown timezone"})
		}
	}
	if i.Timezone.IsClear() {
		errs = append(errs, domain.FieldError{Field: "timezone", Message: "cannot be cleared"})
	}
	if i.NotifyByEmail.IsClear() || i.NotifyByPush.IsClear() {
		errs = append(errs, domain.FieldError{Field: "notifications", Message: "preferences cannot be cleared"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
