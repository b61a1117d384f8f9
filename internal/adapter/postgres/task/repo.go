// Package task implements the Task repository using PostgreSQL.
// Reads serve command handlers before mutation; the write methods satisfy
// the unit-of-work store contract and join its transaction via the context.
package task

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

const table = "tasks"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "user_id", "name", "notes", "category", "scheduled_on",
	"status", "completed_at", "snoozed_until", "routine_id",
	"created_at", "updated_at",
}

type row struct {
	ID           uuid.UUID         `db:"id"`
	UserID       uuid.UUID         `db:"user_id"`
	Name         string            `db:"name"`
	Notes        *string           `db:"notes"`
	Category     *string           `db:"category"`
	ScheduledOn  time.Time         `db:"scheduled_on"`
	Status       domain.TaskStatus `db:"status"`
	CompletedAt  *time.Time        `db:"completed_at"`
	SnoozedUntil *time.Time        `db:"snoozed_until"`
	RoutineID    *uuid.UUID        `db:"routine_id"`
	CreatedAt    time.Time         `db:"created_at"`
	UpdatedAt    time.Time         `db:"updated_at"`
}

// Repo provides task persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new task repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a task by primary key. Returns domain.ErrNotFound if the
// task does not exist or belongs to another user.
func (r *Repo) GetByID(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"id": taskID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get task query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, q, &rw, query, args...); err != nil {
		return nil, postgres.MapError(err, "task", taskID)
	}
	return toDomain(rw), nil
}

// ListByDate returns every task scheduled on the given date, ordered by
// creation time.
func (r *Repo) ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID, "scheduled_on": domain.DateOf(date)}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tasks query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks by date: %w", err)
	}
	return toDomainSlice(rows), nil
}

// Find returns a filtered, paginated page of tasks ordered by scheduled
// date and creation time.
func (r *Repo) Find(ctx context.Context, userID uuid.UUID, f domain.TaskFilter) (domain.Page[*domain.Task], error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	where := sq.And{sq.Eq{"user_id": userID}}
	if f.Status != nil {
		where = append(where, sq.Eq{"status": *f.Status})
	}
	if f.ScheduledOn != nil {
		where = append(where, sq.Eq{"scheduled_on": domain.DateOf(*f.ScheduledOn)})
	}
	if f.RoutineID != nil {
		where = append(where, sq.Eq{"routine_id": *f.RoutineID})
	}

	countQuery, countArgs, err := psql.Select("COUNT(*)").From(table).Where(where).ToSql()
	if err != nil {
		return domain.Page[*domain.Task]{}, fmt.Errorf("build count tasks query: %w", err)
	}
	var total int
	if err := pgxscan.Get(ctx, q, &total, countQuery, countArgs...); err != nil {
		return domain.Page[*domain.Task]{}, fmt.Errorf("count tasks: %w", err)
	}

	query, args, err := psql.Select(columns...).
		From(table).
		Where(where).
		OrderBy("scheduled_on ASC", "created_at ASC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return domain.Page[*domain.Task]{}, fmt.Errorf("build find tasks query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return domain.Page[*domain.Task]{}, fmt.Errorf("find tasks: %w", err)
	}

	return domain.Page[*domain.Task]{
		Items:  toDomainSlice(rows),
		Total:  total,
		Limit:  f.Limit,
		Offset: f.Offset,
	}, nil
}

// ExistsForRoutineOnDate reports whether the routine already generated a
// task for the date. Routine expansion uses it to stay idempotent.
func (r *Repo) ExistsForRoutineOnDate(ctx context.Context, userID, routineID uuid.UUID, date time.Time) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{
			"user_id":      userID,
			"routine_id":   routineID,
			"scheduled_on": domain.DateOf(date),
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var count int
	if err := pgxscan.Get(ctx, q, &count, query, args...); err != nil {
		return false, fmt.Errorf("check task exists for routine: %w", err)
	}
	return count > 0, nil
}

// ---------------------------------------------------------------------------
// Write operations (unit-of-work store contract)
// ---------------------------------------------------------------------------

// Insert persists a new task.
func (r *Repo) Insert(ctx context.Context, e domain.Entity) error {
	t, err := asTask(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Insert(table).
		Columns(columns...).
		Values(t.ID, t.UserID, t.Name, t.Notes, t.Category, t.ScheduledOn,
			t.Status, t.CompletedAt, t.SnoozedUntil, t.RoutineID,
			t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert task query: %w", err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "task", t.ID)
	}
	return nil
}

// Update rewrites every mutable column of an existing task.
func (r *Repo) Update(ctx context.Context, e domain.Entity) error {
	t, err := asTask(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Update(table).
		Set("name", t.Name).
		Set("notes", t.Notes).
		Set("category", t.Category).
		Set("scheduled_on", t.ScheduledOn).
		Set("status", t.Status).
		Set("completed_at", t.CompletedAt).
		Set("snoozed_until", t.SnoozedUntil).
		Set("updated_at", t.UpdatedAt).
		Where(sq.Eq{"id": t.ID, "user_id": t.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update task query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "task", t.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

// Delete removes a task.
func (r *Repo) Delete(ctx context.Context, e domain.Entity) error {
	t, err := asTask(e)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := psql.Delete(table).
		Where(sq.Eq{"id": t.ID, "user_id": t.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete task query: %w", err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "task", t.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func asTask(e domain.Entity) (*domain.Task, error) {
	t, ok := e.(*domain.Task)
	if !ok {
		return nil, fmt.Errorf("task store: unexpected entity type %s", e.Kind())
	}
	return t, nil
}

func toDomain(rw row) *domain.Task {
	return &domain.Task{
		Meta: domain.Meta{
			ID:        rw.ID,
			UserID:    rw.UserID,
			CreatedAt: rw.CreatedAt,
			UpdatedAt: rw.UpdatedAt,
		},
		Name:         rw.Name,
		Notes:        rw.Notes,
		Category:     rw.Category,
		ScheduledOn:  rw.ScheduledOn.UTC(),
		Status:       rw.Status,
		CompletedAt:  rw.CompletedAt,
		SnoozedUntil: rw.SnoozedUntil,
		RoutineID:    rw.RoutineID,
	}
}

func toDomainSlice(rows []row) []*domain.Task {
	tasks := make([]*domain.Task, len(rows))
	for i, rw := range rows {
		tasks[i] = toDomain(rw)
	}
	return tasks
}
