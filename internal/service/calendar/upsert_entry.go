package calendar

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
	"github.com/daymate/backend/pkg/opt"
)

// UpsertEntry mirrors one provider item: first sight creates the entry,
// later sights patch it. The provider payload is the full truth for the
// entry, so an absent location clears a stored one.
func (s *Service) UpsertEntry(ctx context.Context, input UpsertEntryInput) (*domain.CalendarEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	externalID := strings.TrimSpace(input.ExternalID)
	title := strings.TrimSpace(input.Title)

	entry, err := s.entries.GetByExternalID(ctx, userID, externalID)
	switch {
	case err == nil:
		entry.ApplyUpdate(domain.CalendarEntryUpdate{
			Title:    opt.Of(title),
			StartsAt: opt.Of(input.StartsAt),
			EndsAt:   opt.Of(input.EndsAt),
			Location: locationVal(input.Location),
		}, s.now())
		if err := s.commit(ctx, entry, false); err != nil {
			return nil, fmt.Errorf("update calendar entry: %w", err)
		}
	case errors.Is(err, domain.ErrNotFound):
		entry = domain.NewCalendarEntry(userID, externalID, title, input.StartsAt, input.EndsAt, s.now())
		entry.Location = input.Location
		if err := s.commit(ctx, entry, true); err != nil {
			return nil, fmt.Errorf("create calendar entry: %w", err)
		}
	default:
		return nil, fmt.Errorf("get calendar entry by external id: %w", err)
	}

	s.log.InfoContext(ctx, "calendar entry upserted",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", entry.ID.String()),
		slog.String("external_id", externalID),
	)
	return entry, nil
}

func (s *Service) commit(ctx context.Context, entry *domain.CalendarEntry, created bool) error {
	u := s.uow.New()
	var err error
	if created {
		err = u.Create(entry)
	} else {
		err = u.Add(entry)
	}
	if err != nil {
		return err
	}
	return u.Commit(ctx)
}

func locationVal(p *string) opt.Val[string] {
	if p == nil {
		return opt.Clear[string]()
	}
	return opt.Of(strings.TrimSpace(*p))
}
