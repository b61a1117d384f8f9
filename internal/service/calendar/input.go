package calendar

import (
	"strings"
	"time"

	"github.com/daymate/backend/internal/domain"
)

// UpsertEntryInput mirrors one item from the external calendar.
type UpsertEntryInput struct {
	ExternalID string
	Title      string
	StartsAt   time.Time
	EndsAt     time.Time
	Location   *string
}

// Validate checks all fields and collects all errors.
func (i UpsertEntryInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.ExternalID) == "" {
		errs = append(errs, domain.FieldError{Field: "external_id", Message: "required"})
	}
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if i.StartsAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "starts_at", Message: "required"})
	}
	if i.EndsAt.IsZero() {
		errs = append(errs, domain.FieldError{Field: "ends_at", Message: "required"})
	}
	if !i.StartsAt.IsZero() && !i.EndsAt.IsZero() && !i.StartsAt.Before(i.EndsAt) {
		errs = append(errs, domain.FieldError{Field: "ends_at", Message: "must be after starts_at"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListEntriesInput holds filtering/pagination parameters for entry searches.
type ListEntriesInput struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListEntriesInput) Validate() error {
	var errs []domain.FieldError

	if i.From != nil && i.To != nil && i.To.Before(*i.From) {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must not precede from"})
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
