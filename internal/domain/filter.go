package domain

import (
	"time"

	"github.com/google/uuid"
)

// Page is one page of a paged search.
type Page[T any] struct {
	Items  []T
	Total  int
	Limit  int
	Offset int
}

// HasNext reports whether more items follow this page.
func (p Page[T]) HasNext() bool { return p.Offset+len(p.Items) < p.Total }

// HasPrevious reports whether items precede this page.
func (p Page[T]) HasPrevious() bool { return p.Offset > 0 }

// TaskFilter contains filtering/pagination parameters for task searches.
type TaskFilter struct {
	Status      *TaskStatus
	ScheduledOn *time.Time
	RoutineID   *uuid.UUID
	Limit       int
	Offset      int
}

// CalendarEntryFilter contains filtering parameters for calendar entry
// searches.
type CalendarEntryFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
