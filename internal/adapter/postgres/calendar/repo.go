// Package calendar implements the CalendarEntry repository using PostgreSQL.
package calendar

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daymate/backend/internal/adapter/postgres"
	"github.com/daymate/backend/internal/domain"
)

const table = "calendar_entries"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "user_id", "external_id", "title", "starts_at", "ends_at",
	"location", "created_at", "updated_at",
}

type row struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	ExternalID string    `db:"external_id"`
	Title      string    `db:"title"`
	StartsAt   time.Time `db:"starts_at"`
	EndsAt     time.Time `db:"ends_at"`
	Location   *string   `db:"location"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Repo provides calendar entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new calendar entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns an entry by primary key. Returns domain.ErrNotFound if the
// entry does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.CalendarEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": entryID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get calendar entry query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "calendar_entry", entryID)
	}
	return toDomain(rw), nil
}

// GetByExternalID returns the local mirror of a provider item, or
// domain.ErrNotFound when it was never imported. The upsert flow checks
// here first.
func (r *Repo) GetByExternalID(ctx context.Context, userID uuid.UUID, externalID string) (*domain.CalendarEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID, "external_id": externalID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get calendar entry by external id query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "calendar_entry", userID)
	}
	return toDomain(rw), nil
}

// Find returns a time-windowed, paginated page of entries ordered by start.
func (r *Repo) Find(ctx context.Context, userID uuid.UUID, f domain.CalendarEntryFilter) (domain.Page[*domain.CalendarEntry], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{sq.Eq{"user_id": userID}}
	if f.From != nil {
		where = append(where, sq.GtOrEq{"starts_at": *f.From})
	}
	if f.To != nil {
		where = append(where, sq.Lt{"starts_at": *f.To})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return domain.Page[*domain.CalendarEntry]{}, fmt.Errorf("build count calendar entries query: %w", err)
	}
	var total int
	if err := pgxscan.Get(ctx, q, &total, countQuery, countArgs...); err != nil {
		return domain.Page[*domain.CalendarEntry]{}, fmt.Errorf("count calendar entries: %w", err)
	}

	query, args, err := psql.Select(columns...).
		From(table).
		Where(where).
		OrderBy("starts_at ASC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return domain.Page[*domain.CalendarEntry]{}, fmt.Errorf("build find calendar entries query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return domain.Page[*domain.CalendarEntry]{}, fmt.Errorf("find calendar entries: %w", err)
	}

	entries := make([]*domain.CalendarEntry, len(rows))
	for i, rw := range rows {
		entries[i] = toDomain(rw)
	}
	return domain.Page[*domain.CalendarEntry]{
		Items:  entries,
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	}, nil
}

// Insert persists a new entry. The (user_id, external_id) unique constraint
// maps to domain.ErrAlreadyExists on conflict.
func (r *Repo) Insert(ctx context.Context, e domain.Entity) error {
	entry, err := asEntry(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(entry.ID, entry.UserID, entry.ExternalID, entry.Title,
			entry.StartsAt, entry.EndsAt, entry.Location,
			entry.CreatedAt, entry.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert calendar entry query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "calendar_entry", entry.ID)
	}
	return nil
}

// Update rewrites every mutable column of an existing entry.
func (r *Repo) Update(ctx context.Context, e domain.Entity) error {
	entry, err := asEntry(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Update(table).
		Set("title", entry.Title).
		Set("starts_at", entry.StartsAt).
		Set("ends_at", entry.EndsAt).
		Set("location", entry.Location).
		Set("updated_at", entry.UpdatedAt).
		Where(sq.Eq{"id": entry.ID, "user_id": entry.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update calendar entry query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "calendar_entry", entry.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("calendar_entry %s: %w", entry.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes an entry.
func (r *Repo) Delete(ctx context.Context, e domain.Entity) error {
	entry, err := asEntry(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": entry.ID, "user_id": entry.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete calendar entry query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "calendar_entry", entry.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("calendar_entry %s: %w", entry.ID, domain.ErrNotFound)
	}
	return nil
}

func asEntry(e domain.Entity) (*domain.CalendarEntry, error) {
	entry, ok := e.(*domain.CalendarEntry)
	if !ok {
		return nil, fmt.Errorf("calendar_entry store: unexpected entity type %s", e.Kind())
	}
	return entry, nil
}

func toDomain(rw row) *domain.CalendarEntry {
	return &domain.CalendarEntry{
		Meta: domain.Meta{
			ID:        rw.ID,
			UserID:    rw.UserID,
			CreatedAt: rw.CreatedAt,
			UpdatedAt: rw.UpdatedAt,
		},
		ExternalID: rw.ExternalID,
		Title:      rw.Title,
		StartsAt:   rw.StartsAt,
		EndsAt:     rw.EndsAt,
		Location:   rw.Location,
	}
}
