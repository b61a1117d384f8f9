package task

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/event"
	"github.com/daymate/backend/internal/uow"
	"github.com/daymate/backend/pkg/ctxutil"
	"github.com/daymate/backend/pkg/opt"
)

// ---------------------------------------------------------------------------
// Test mocks (minimal, inline)
// ---------------------------------------------------------------------------

type mockTaskRepo struct {
	getByIDFunc    func(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error)
	listByDateFunc func(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error)
	findFunc       func(ctx context.Context, userID uuid.UUID, f domain.TaskFilter) (domain.Page[*domain.Task], error)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, userID, taskID)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTaskRepo) ListByDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error) {
	if m.listByDateFunc != nil {
		return m.listByDateFunc(ctx, userID, date)
	}
	return nil, nil
}

func (m *mockTaskRepo) Find(ctx context.Context, userID uuid.UUID, f domain.TaskFilter) (domain.Page[*domain.Task], error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, userID, f)
	}
	return domain.Page[*domain.Task]{}, nil
}

// fakeTx runs the function directly, no database involved.
type fakeTx struct{}

func (fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type storeCall struct {
	op string
	id uuid.UUID
}

// fakeStore records the write operations the unit of work performs.
type fakeStore struct {
	calls []storeCall
	fail  error
}

func (s *fakeStore) Insert(_ context.Context, e domain.Entity) error {
	if s.fail != nil {
		return s.fail
	}
	s.calls = append(s.calls, storeCall{op: "insert", id: e.EntityMeta().ID})
	return nil
}

func (s *fakeStore) Update(_ context.Context, e domain.Entity) error {
	if s.fail != nil {
		return s.fail
	}
	s.calls = append(s.calls, storeCall{op: "update", id: e.EntityMeta().ID})
	return nil
}

func (s *fakeStore) Delete(_ context.Context, e domain.Entity) error {
	if s.fail != nil {
		return s.fail
	}
	s.calls = append(s.calls, storeCall{op: "delete", id: e.EntityMeta().ID})
	return nil
}

type fixture struct {
	svc   *Service
	repo  *mockTaskRepo
	store *fakeStore
	ctx   context.Context
	user  uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	repo := &mockTaskRepo{}
	store := &fakeStore{}

	stores := uow.NewStoreRegistry()
	stores.Register(domain.EntityTypeTask, store)

	factory := uow.NewFactory(fakeTx{}, stores, event.NewRegistry(log), nil, log)

	userID := uuid.New()
	return &fixture{
		svc:   NewService(log, repo, factory),
		repo:  repo,
		store: store,
		ctx:   ctxutil.WithUserID(context.Background(), userID),
		user:  userID,
	}
}

// ---------------------------------------------------------------------------
// CreateTask
// ---------------------------------------------------------------------------

func TestCreateTask(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	notes := "  bring the charger  "
	task, err := f.svc.CreateTask(f.ctx, CreateTaskInput{
		Name:        "  pack bags  ",
		Notes:       &notes,
		ScheduledOn: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateTask: unexpected error: %v", err)
	}

	if task.Name != "pack bags" {
		t.Errorf("Name not trimmed: got %q", task.Name)
	}
	if task.Notes == nil || *task.Notes != "bring the charger" {
		t.Errorf("Notes not trimmed: got %v", task.Notes)
	}
	if task.UserID != f.user {
		t.Errorf("UserID mismatch: got %s, want %s", task.UserID, f.user)
	}
	if task.Status != domain.TaskStatusNotStarted {
		t.Errorf("Status mismatch: got %s", task.Status)
	}
	if task.HasEvents() {
		t.Error("expected events drained by commit")
	}

	if len(f.store.calls) != 1 || f.store.calls[0].op != "insert" {
		t.Fatalf("expected one insert, got %+v", f.store.calls)
	}
}

func TestCreateTask_Unauthorized(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateTask(context.Background(), CreateTaskInput{
		Name:        "orphan",
		ScheduledOn: time.Now(),
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got: %v", err)
	}
	if len(f.store.calls) != 0 {
		t.Error("store must not be touched")
	}
}

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateTask(f.ctx, CreateTaskInput{Name: "   "})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	// Both the blank name and the zero date are reported.
	if len(vErr.Errors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %+v", len(vErr.Errors), vErr.Errors)
	}
}

// ---------------------------------------------------------------------------
// RecordAction
// ---------------------------------------------------------------------------

func seedTask(f *fixture, status domain.TaskStatus) *domain.Task {
	now := time.Now().UTC()
	task := domain.NewTask(f.user, "standing task", now, now)
	task.Status = status
	if status == domain.TaskStatusComplete {
		completedAt := now
		task.CompletedAt = &completedAt
	}
	task.CollectEvents()
	f.repo.getByIDFunc = func(_ context.Context, _, _ uuid.UUID) (*domain.Task, error) {
		return task, nil
	}
	return task
}

func TestRecordAction_Complete(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seedTask(f, domain.TaskStatusNotStarted)

	task, err := f.svc.RecordAction(f.ctx, RecordActionInput{
		TaskID: uuid.New(),
		Action: domain.TaskActionComplete,
	})
	if err != nil {
		t.Fatalf("RecordAction: unexpected error: %v", err)
	}

	if task.Status != domain.TaskStatusComplete {
		t.Errorf("Status mismatch: got %s", task.Status)
	}
	if task.CompletedAt == nil {
		t.Error("expected CompletedAt set")
	}
	if len(f.store.calls) != 1 || f.store.calls[0].op != "update" {
		t.Fatalf("expected one update, got %+v", f.store.calls)
	}
}

func TestRecordAction_CompleteTwice_NoCommit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seedTask(f, domain.TaskStatusComplete)

	task, err := f.svc.RecordAction(f.ctx, RecordActionInput{
		TaskID: uuid.New(),
		Action: domain.TaskActionComplete,
	})
	if err != nil {
		t.Fatalf("RecordAction: unexpected error: %v", err)
	}

	if task.Status != domain.TaskStatusComplete {
		t.Errorf("Status mismatch: got %s", task.Status)
	}
	if len(f.store.calls) != 0 {
		t.Fatalf("idempotent complete must not write, got %+v", f.store.calls)
	}
}

func TestRecordAction_SnoozeWithoutTimestamp(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seedTask(f, domain.TaskStatusNotStarted)

	_, err := f.svc.RecordAction(f.ctx, RecordActionInput{
		TaskID: uuid.New(),
		Action: domain.TaskActionSnooze,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
	if !strings.Contains(err.Error(), "snoozed_until") {
		t.Errorf("error should mention snoozed_until: %v", err)
	}
	if len(f.store.calls) != 0 {
		t.Error("store must not be touched")
	}
}

func TestRecordAction_PuntAfterComplete(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seedTask(f, domain.TaskStatusComplete)

	task, err := f.svc.RecordAction(f.ctx, RecordActionInput{
		TaskID: uuid.New(),
		Action: domain.TaskActionPunt,
	})
	if err != nil {
		t.Fatalf("RecordAction: unexpected error: %v", err)
	}

	if task.Status != domain.TaskStatusPunt {
		t.Errorf("Status mismatch: got %s", task.Status)
	}
	if task.CompletedAt != nil {
		t.Error("PUNT must clear CompletedAt")
	}
}

// ---------------------------------------------------------------------------
// RescheduleTask
// ---------------------------------------------------------------------------

func TestRescheduleTask_SameDate_NoCommit(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	existing := seedTask(f, domain.TaskStatusNotStarted)

	_, err := f.svc.RescheduleTask(f.ctx, RescheduleTaskInput{
		TaskID: existing.ID,
		Date:   existing.ScheduledOn,
	})
	if err != nil {
		t.Fatalf("RescheduleTask: unexpected error: %v", err)
	}
	if len(f.store.calls) != 0 {
		t.Fatalf("no-op reschedule must not write, got %+v", f.store.calls)
	}
}

func TestRescheduleTask_NewDate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	existing := seedTask(f, domain.TaskStatusNotStarted)
	target := existing.ScheduledOn.AddDate(0, 0, 3)

	task, err := f.svc.RescheduleTask(f.ctx, RescheduleTaskInput{
		TaskID: existing.ID,
		Date:   target,
	})
	if err != nil {
		t.Fatalf("RescheduleTask: unexpected error: %v", err)
	}
	if !task.ScheduledOn.Equal(target) {
		t.Errorf("ScheduledOn mismatch: got %v, want %v", task.ScheduledOn, target)
	}
	if len(f.store.calls) != 1 || f.store.calls[0].op != "update" {
		t.Fatalf("expected one update, got %+v", f.store.calls)
	}
}

// ---------------------------------------------------------------------------
// UpdateTask
// ---------------------------------------------------------------------------

func TestUpdateTask_EmptyUpdateStillCommits(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	existing := seedTask(f, domain.TaskStatusNotStarted)
	before := existing.UpdatedAt

	task, err := f.svc.UpdateTask(f.ctx, UpdateTaskInput{TaskID: existing.ID})
	if err != nil {
		t.Fatalf("UpdateTask: unexpected error: %v", err)
	}

	if !task.UpdatedAt.After(before) {
		t.Error("empty update must still refresh UpdatedAt")
	}
	if len(f.store.calls) != 1 || f.store.calls[0].op != "update" {
		t.Fatalf("expected one update, got %+v", f.store.calls)
	}
}

func TestUpdateTask_ClearNotes(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	existing := seedTask(f, domain.TaskStatusNotStarted)
	notes := "scratch"
	existing.Notes = &notes

	task, err := f.svc.UpdateTask(f.ctx, UpdateTaskInput{
		TaskID: existing.ID,
		Notes:  opt.Clear[string](),
	})
	if err != nil {
		t.Fatalf("UpdateTask: unexpected error: %v", err)
	}
	if task.Notes != nil {
		t.Errorf("expected Notes cleared, got %v", task.Notes)
	}
}

func TestUpdateTask_ClearName_Rejected(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	seedTask(f, domain.TaskStatusNotStarted)

	_, err := f.svc.UpdateTask(f.ctx, UpdateTaskInput{
		TaskID: uuid.New(),
		Name:   opt.Clear[string](),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// DeleteTask
// ---------------------------------------------------------------------------

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	existing := seedTask(f, domain.TaskStatusNotStarted)

	if err := f.svc.DeleteTask(f.ctx, DeleteTaskInput{TaskID: existing.ID}); err != nil {
		t.Fatalf("DeleteTask: unexpected error: %v", err)
	}
	if len(f.store.calls) != 1 || f.store.calls[0].op != "delete" {
		t.Fatalf("expected one delete, got %+v", f.store.calls)
	}
}

func TestDeleteTask_NotFound(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	err := f.svc.DeleteTask(f.ctx, DeleteTaskInput{TaskID: uuid.New()})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Persistence failure
// ---------------------------------------------------------------------------

func TestCreateTask_PersistFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.store.fail = errors.New("connection reset")

	_, err := f.svc.CreateTask(f.ctx, CreateTaskInput{
		Name:        "doomed",
		ScheduledOn: time.Now(),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(f.store.calls) != 0 {
		t.Errorf("failed insert must record nothing, got %+v", f.store.calls)
	}
}
