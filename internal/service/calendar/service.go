// Package calendar implements the calendar-mirror command handlers. Entries
// are keyed by the external provider's ID; upserts create on first sight and
// patch afterwards, and every accepted upsert schedules a provider sync after
// commit.
package calendar

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/uow"
)

const DefaultLimit = 50

type calendarRepo interface {
	GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.CalendarEntry, error)
	GetByExternalID(ctx context.Context, userID uuid.UUID, externalID string) (*domain.CalendarEntry, error)
	Find(ctx context.Context, userID uuid.UUID, f domain.CalendarEntryFilter) (domain.Page[*domain.CalendarEntry], error)
}

// Service provides calendar-mirror operations.
type Service struct {
	entries calendarRepo
	uow     *uow.Factory
	now     func() time.Time
	log     *slog.Logger
}

// NewService creates a new Calendar service.
func NewService(log *slog.Logger, entries calendarRepo, factory *uow.Factory) *Service {
	return &Service{
		entries: entries,
		uow:     factory,
		now:     func() time.Time { return time.Now().UTC() },
		log:     log.With("service", "calendar"),
	}
}
