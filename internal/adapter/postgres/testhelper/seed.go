package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daymate/backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user with default settings. Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) *domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.NewUser("testuser-"+suffix+"@example.com", "Test User "+suffix, now)

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, email, display_name, timezone, notify_by_email, notify_by_push, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.DisplayName, user.Timezone,
		user.NotifyByEmail, user.NotifyByPush, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedRoutine creates an active routine for the user. Returns a filled
// domain.Routine with its creation event already drained.
func SeedRoutine(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, weekdays domain.Weekdays) *domain.Routine {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	routine := domain.NewRoutine(userID, "routine-"+suffix, weekdays, now)
	routine.CollectEvents()

	_, err := pool.Exec(ctx,
		`INSERT INTO routines (id, user_id, name, category, weekdays, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		routine.ID, routine.UserID, routine.Name, routine.Category,
		routine.Weekdays, routine.Active, routine.CreatedAt, routine.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRoutine insert routine: %v", err)
	}

	return routine
}

// SeedTask creates a task scheduled on the given date. Returns a filled
// domain.Task with its creation event already drained.
func SeedTask(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, scheduledOn time.Time) *domain.Task {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	task := domain.NewTask(userID, "task-"+suffix, scheduledOn, now)
	task.CollectEvents()

	_, err := pool.Exec(ctx,
		`INSERT INTO tasks (id, user_id, name, notes, category, scheduled_on, status, completed_at, snoozed_until, routine_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		task.ID, task.UserID, task.Name, task.Notes, task.Category,
		task.ScheduledOn, task.Status, task.CompletedAt, task.SnoozedUntil,
		task.RoutineID, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTask insert task: %v", err)
	}

	return task
}

// SeedDay creates an empty day for the user and date. Returns a filled
// domain.Day with its creation event already drained.
func SeedDay(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, date time.Time) *domain.Day {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	day := domain.NewDay(userID, date, now)
	day.CollectEvents()

	_, err := pool.Exec(ctx,
		`INSERT INTO days (id, user_id, date, notes, template_id, unscheduled, reminders, brain_dump, alarms, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, '[]', '[]', '[]', $7, $8)`,
		day.ID, day.UserID, day.Date, day.Notes, day.TemplateID,
		day.Unscheduled, day.CreatedAt, day.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDay insert day: %v", err)
	}

	return day
}
