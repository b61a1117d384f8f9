// Package day implements the Day repository using PostgreSQL.
// The day's sub-collections (reminders, brain dump, alarms) live in JSONB
// columns and are rewritten wholesale: the Day aggregate is the unit of
// consistency, not its items.
package day

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

const table = "days"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "user_id", "date", "notes", "template_id", "unscheduled",
	"reminders", "brain_dump", "alarms", "created_at", "updated_at",
}

type row struct {
	ID          uuid.UUID              `db:"id"`
	UserID      uuid.UUID              `db:"user_id"`
	Date        time.Time              `db:"date"`
	Notes       *string                `db:"notes"`
	TemplateID  *uuid.UUID             `db:"template_id"`
	Unscheduled bool                   `db:"unscheduled"`
	Reminders   []domain.Reminder      `db:"reminders"`
	BrainDump   []domain.BrainDumpItem `db:"brain_dump"`
	Alarms      []domain.Alarm         `db:"alarms"`
	CreatedAt   time.Time              `db:"created_at"`
	UpdatedAt   time.Time              `db:"updated_at"`
}

// Repo provides day persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new day repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a day by primary key. Returns domain.ErrNotFound if the
// day does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, dayID uuid.UUID) (*domain.Day, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": dayID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get day query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "day", dayID)
	}
	return toDomain(rw), nil
}

// GetByDate returns the user's day for a calendar date.
// Returns domain.ErrNotFound when no day exists yet; the day service
// creates one on first access.
func (r *Repo) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.Day, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID, "date": domain.DateOf(date)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get day by date query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "day", userID)
	}
	return toDomain(rw), nil
}

// ListByDate returns every user's day for a calendar date. The alarm
// sweeper walks these looking for due alarms.
func (r *Repo) ListByDate(ctx context.Context, date time.Time) ([]*domain.Day, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"date": domain.DateOf(date), "unscheduled": false}).
		OrderBy("user_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list days query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list days by date: %w", err)
	}

	days := make([]*domain.Day, len(rows))
	for i, rw := range rows {
		days[i] = toDomain(rw)
	}
	return days, nil
}

// ---------------------------------------------------------------------------
// Write operations (unit-of-work store contract)
// ---------------------------------------------------------------------------

// Insert persists a new day. The (user_id, date) unique constraint maps to
// domain.ErrAlreadyExists on conflict.
func (r *Repo) Insert(ctx context.Context, e domain.Entity) error {
	d, err := asDay(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(d.ID, d.UserID, d.Date, d.Notes, d.TemplateID, d.Unscheduled,
			jsonSlice(d.Reminders), jsonSlice(d.BrainDump), jsonSlice(d.Alarms),
			d.CreatedAt, d.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert day query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "day", d.ID)
	}
	return nil
}

// Update rewrites every mutable column, including the JSONB sub-collections.
func (r *Repo) Update(ctx context.Context, e domain.Entity) error {
	d, err := asDay(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Update(table).
		Set("notes", d.Notes).
		Set("template_id", d.TemplateID).
		Set("unscheduled", d.Unscheduled).
		Set("reminders", jsonSlice(d.Reminders)).
		Set("brain_dump", jsonSlice(d.BrainDump)).
		Set("alarms", jsonSlice(d.Alarms)).
		Set("updated_at", d.UpdatedAt).
		Where(sq.Eq{"id": d.ID, "user_id": d.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update day query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "day", d.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("day %s: %w", d.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a day. Normal flow unschedules instead; deletion exists
// for account cleanup.
func (r *Repo) Delete(ctx context.Context, e domain.Entity) error {
	d, err := asDay(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": d.ID, "user_id": d.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete day query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "day", d.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("day %s: %w", d.ID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func asDay(e domain.Entity) (*domain.Day, error) {
	d, ok := e.(*domain.Day)
	if !ok {
		return nil, fmt.Errorf("day store: unexpected entity type %s", e.Kind())
	}
	return d, nil
}

// jsonSlice keeps JSONB columns as [] instead of null for empty collections.
func jsonSlice[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func toDomain(rw row) *domain.Day {
	return &domain.Day{
		Meta: domain.Meta{
			ID:        rw.ID,
			UserID:    rw.UserID,
			CreatedAt: rw.CreatedAt,
			UpdatedAt: rw.UpdatedAt,
		},
		Date:        rw.Date.UTC(),
		Notes:       rw.Notes,
		TemplateID:  rw.TemplateID,
		Unscheduled: rw.Unscheduled,
		Reminders:   rw.Reminders,
		BrainDump:   rw.BrainDump,
		Alarms:      rw.Alarms,
	}
}
