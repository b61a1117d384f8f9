package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalendarEntry mirrors an item from the user's external calendar. The
// ExternalID ties it back to the provider; sync happens through the
// calendar gateway after commit.
type CalendarEntry struct {
	Meta
	ExternalID string
	Title      string
	StartsAt   time.Time
	EndsAt     time.Time
	Location   *string
}

// Kind satisfies Entity.
func (e *CalendarEntry) Kind() EntityType { return EntityTypeCalendarEntry }

// NewCalendarEntry creates a mirrored entry and records CalendarEntryUpserted.
func NewCalendarEntry(userID uuid.UUID, externalID, title string, startsAt, endsAt time.Time, now time.Time) *CalendarEntry {
	e := &CalendarEntry{
		Meta:       NewMeta(userID, now),
		ExternalID: externalID,
		Title:      title,
		StartsAt:   startsAt,
		EndsAt:     endsAt,
	}
	e.AddEvent(NewEvent(EventCalendarEntryUpserted, userID, EntityTypeCalendarEntry, e.ID, now, map[string]any{
		"external_id": externalID,
		"title":       title,
	}))
	return e
}

// ApplyUpdate merges the set fields of u onto the entry, refreshes
// UpdatedAt, and appends exactly one CalendarEntryUpserted event carrying
// the update.
func (e *CalendarEntry) ApplyUpdate(u CalendarEntryUpdate, now time.Time) {
	u.Title.Apply(&e.Title)
	u.StartsAt.Apply(&e.StartsAt)
	u.EndsAt.Apply(&e.EndsAt)
	u.Location.ApplyPtr(&e.Location)
	e.Touch(now)
	e.AddEvent(NewEvent(EventCalendarEntryUpserted, e.UserID, EntityTypeCalendarEntry, e.ID, now, u.Changes()))
}
