package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity is implemented by every aggregate (Task, Day, Routine, ...) via an
// embedded Meta. The unit of work relies on it to route persistence through
// the right store and to drain pending events after commit.
//
// Entities are single-owner values: a loaded entity belongs to exactly one
// logical operation at a time, and must not be mutated after being handed to
// a unit of work for commit.
type Entity interface {
	EntityMeta() *Meta
	Kind() EntityType
}

// Meta holds the identity, ownership, timestamps, and pending-event list
// shared by all aggregates.
type Meta struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time

	events []Event
}

// NewMeta initializes identity and timestamps for a freshly created entity.
func NewMeta(userID uuid.UUID, now time.Time) Meta {
	return Meta{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// EntityMeta returns the embedded Meta, satisfying Entity.
func (m *Meta) EntityMeta() *Meta { return m }

// AddEvent appends an event to the pending list.
func (m *Meta) AddEvent(e Event) {
	m.events = append(m.events, e)
}

// HasEvents reports whether any events are pending, without draining them.
// Callers use this to skip persisting entities a no-op mutation left
// untouched.
func (m *Meta) HasEvents() bool { return len(m.events) > 0 }

// CollectEvents returns the pending events in append order and clears the
// list. A second call returns nil: drain-once semantics guard against
// double dispatch when an entity object is reused.
func (m *Meta) CollectEvents() []Event {
	events := m.events
	m.events = nil
	return events
}

// Touch refreshes the entity's UpdatedAt.
func (m *Meta) Touch(now time.Time) {
	m.UpdatedAt = now
}
