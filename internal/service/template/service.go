// Package template implements the day-template command handlers: the
// get-or-create default template, renaming, time-block management, and
// default alarms. Every mutation goes through one unit of work.
package template

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/uow"
)

type templateRepo interface {
	GetByID(ctx context.Context, userID, templateID uuid.UUID) (*domain.DayTemplate, error)
	GetDefault(ctx context.Context, userID uuid.UUID) (*domain.DayTemplate, error)
}

// Service provides day-template operations.
type Service struct {
	templates templateRepo
	uow       *uow.Factory
	now       func() time.Time
	log       *slog.Logger
}

// NewService creates a new Template service.
func NewService(log *slog.Logger, templates templateRepo, factory *uow.Factory) *Service {
	return &Service{
		templates: templates,
		uow:       factory,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log.With("service", "template"),
	}
}

// commitTemplate persists the template through a unit of work when the
// mutation actually changed something; event-free mutations are no-ops.
func (s *Service) commitTemplate(ctx context.Context, t *domain.DayTemplate, op string) error {
	if !t.HasEvents() {
		return nil
	}

	u := s.uow.New()
	if err := u.Add(t); err != nil {
		return err
	}
	if err := u.Commit(ctx); err != nil {
		return err
	}

	s.log.InfoContext(ctx, op,
		slog.String("user_id", t.UserID.String()),
		slog.String("template_id", t.ID.String()),
	)
	return nil
}
