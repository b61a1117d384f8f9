package calendar

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// GetEntry returns a mirrored entry by ID.
func (s *Service) GetEntry(ctx context.Context, entryID uuid.UUID) (*domain.CalendarEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entry, err := s.entries.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("get calendar entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns a page of mirrored entries, optionally bounded by a
// time window.
func (s *Service) ListEntries(ctx context.Context, input ListEntriesInput) (domain.Page[*domain.CalendarEntry], error) {
	var zero domain.Page[*domain.CalendarEntry]

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return zero, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return zero, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	page, err := s.entries.Find(ctx, userID, domain.CalendarEntryFilter{
		From:   input.From,
		To:     input.To,
		Limit:  limit,
		Offset: input.Offset,
	})
	if err != nil {
		return zero, fmt.Errorf("list calendar entries: %w", err)
	}
	return page, nil
}
