// Package task implements the task command handlers: creation, partial
// updates, the action state machine, rescheduling, and deletion. Every
// mutation goes through one unit of work.
package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/uow"
)

const DefaultLimit = 50

type taskRepo interface {
	GetByID(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error)
	Find(ctx context.Context, userID uuid.UUID, f domain.TaskFilter) (domain.Page[*domain.Task], error)
}

// Service provides task operations.
type Service struct {
	tasks taskRepo
	uow   *uow.Factory
	now   func() time.Time
	log   *slog.Logger
}

// NewService creates a new Task service.
func NewService(log *slog.Logger, tasks taskRepo, factory *uow.Factory) *Service {
	return &Service{
		tasks: tasks,
		uow:   factory,
		now:   func() time.Time { return time.Now().UTC() },
		log:   log.With("service", "task"),
	}
}
