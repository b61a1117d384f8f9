// Package routine implements the routine command handlers: definition CRUD
// and the daily expansion that materializes due routines into tasks. Every
// mutation goes through one unit of work.
package routine

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/uow"
)

type routineRepo interface {
	GetByID(ctx context.Context, userID, routineID uuid.UUID) (*domain.Routine, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Routine, error)
	ListActive(ctx context.Context) ([]*domain.Routine, error)
}

type taskRepo interface {
	ExistsForRoutineOnDate(ctx context.Context, userID, routineID uuid.UUID, date time.Time) (bool, error)
}

// Service provides routine operations.
type Service struct {
	routines routineRepo
	tasks    taskRepo
	uow      *uow.Factory
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new Routine service.
func NewService(log *slog.Logger, routines routineRepo, tasks taskRepo, factory *uow.Factory) *Service {
	return &Service{
		routines: routines,
		tasks:    tasks,
		uow:      factory,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log.With("service", "routine"),
	}
}
