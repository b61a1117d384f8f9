package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the owning account for all other aggregates. A user's UserID in
// Meta is its own ID.
type User struct {
	Meta
	Email         string
	DisplayName   string
	Timezone      string
	NotifyByEmail bool
	NotifyByPush  bool
}

// Kind satisfies Entity.
func (u *User) Kind() EntityType { return EntityTypeUser }

// NewUser creates a user account with notifications enabled.
func NewUser(email, displayName string, now time.Time) *User {
	meta := Meta{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	meta.UserID = meta.ID
	return &User{
		Meta:          meta,
		Email:         email,
		DisplayName:   displayName,
		Timezone:      "UTC",
		NotifyByEmail: true,
		NotifyByPush:  true,
	}
}

// ApplyUpdate merges the set fields of u onto the user, refreshes
// UpdatedAt, and appends exactly one UserUpdated event carrying the update.
func (u *User) ApplyUpdate(update UserUpdate, now time.Time) {
	update.DisplayName.Apply(&u.DisplayName)
	update.Timezone.Apply(&u.Timezone)
	update.NotifyByEmail.Apply(&u.NotifyByEmail)
	update.NotifyByPush.Apply(&u.NotifyByPush)
	u.Touch(now)
	u.AddEvent(NewEvent(EventUserUpdated, u.UserID, EntityTypeUser, u.ID, now, update.Changes()))
}
