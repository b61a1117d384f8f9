package uow

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/event"
	"github.com/daymate/backend/internal/outbox"
	"github.com/daymate/backend/pkg/opt"
)

var uowNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

// fakeTx runs the function directly; the "transaction" is the call itself.
type fakeTx struct {
	beginErr error
	calls    int
}

func (f *fakeTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(ctx)
}

type storeCall struct {
	op string
	id uuid.UUID
}

type fakeStore struct {
	calls     []storeCall
	insertErr error
	updateErr error
	deleteErr error
}

func (s *fakeStore) Insert(_ context.Context, e domain.Entity) error {
	s.calls = append(s.calls, storeCall{op: "insert", id: e.EntityMeta().ID})
	return s.insertErr
}

func (s *fakeStore) Update(_ context.Context, e domain.Entity) error {
	s.calls = append(s.calls, storeCall{op: "update", id: e.EntityMeta().ID})
	return s.updateErr
}

func (s *fakeStore) Delete(_ context.Context, e domain.Entity) error {
	s.calls = append(s.calls, storeCall{op: "delete", id: e.EntityMeta().ID})
	return s.deleteErr
}

type recordingTrigger struct {
	seen []domain.Event
}

func (h *recordingTrigger) Name() string { return "recording" }

func (h *recordingTrigger) HandleTrigger(_ context.Context, e domain.Event, sch outbox.Scheduler) error {
	h.seen = append(h.seen, e)
	sch.ScheduleNotification(e.UserID, "seen", e.Kind.String())
	return nil
}

type fakeSubmitter struct {
	submitted []outbox.Job
	err       error
}

func (f *fakeSubmitter) Submit(_ context.Context, job outbox.Job) error {
	if f.err != nil {
		return f.err
	}
	f.submitted = append(f.submitted, job)
	return nil
}

type fixture struct {
	tx        *fakeTx
	taskStore *fakeStore
	dayStore  *fakeStore
	registry  *event.Registry
	submitter *fakeSubmitter
	factory   *Factory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	f := &fixture{
		tx:        &fakeTx{},
		taskStore: &fakeStore{},
		dayStore:  &fakeStore{},
		registry:  event.NewRegistry(log),
		submitter: &fakeSubmitter{},
	}
	stores := NewStoreRegistry()
	stores.Register(domain.EntityTypeTask, f.taskStore)
	stores.Register(domain.EntityTypeDay, f.dayStore)

	f.factory = NewFactory(f.tx, stores, f.registry, f.submitter, log)
	return f
}

func TestCommitPersistsInRegistrationOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	u := f.factory.New()

	userID := uuid.New()
	task := domain.NewTask(userID, "write report", uowNow, uowNow)
	day := domain.NewDay(userID, uowNow, uowNow)

	if err := u.Create(task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := u.Add(day); err != nil {
		t.Fatalf("add day: %v", err)
	}
	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if u.State() != StateCommitted {
		t.Errorf("state = %s, want COMMITTED", u.State())
	}
	if len(f.taskStore.calls) != 1 || f.taskStore.calls[0].op != "insert" {
		t.Errorf("task store calls = %v", f.taskStore.calls)
	}
	if len(f.dayStore.calls) != 1 || f.dayStore.calls[0].op != "update" {
		t.Errorf("day store calls = %v", f.dayStore.calls)
	}
	if f.tx.calls != 1 {
		t.Errorf("transaction opened %d times, want 1", f.tx.calls)
	}
}

func TestCommitFailureDispatchesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trigger := &recordingTrigger{}
	f.registry.RegisterTrigger(trigger, domain.EventTaskCreated)
	f.taskStore.insertErr = errors.New("unique violation")

	u := f.factory.New()
	task := domain.NewTask(uuid.New(), "doomed", uowNow, uowNow)
	if err := u.Create(task); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := u.Commit(context.Background())
	if err == nil {
		t.Fatal("commit should fail when persistence fails")
	}
	if u.State() != StateRolledBack {
		t.Errorf("state = %s, want ROLLED_BACK", u.State())
	}
	if len(trigger.seen) != 0 {
		t.Errorf("handler saw %d events after a failed commit, want 0", len(trigger.seen))
	}
	if len(f.submitter.submitted) != 0 {
		t.Errorf("submitted %d jobs after a failed commit, want 0", len(f.submitter.submitted))
	}
	// The events stay on the entity, undrained.
	if !task.HasEvents() {
		t.Error("failed commit must not drain the entity's events")
	}
}

func TestCommitDispatchesInRegistrationOrderAndFlushesHandlerJobs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trigger := &recordingTrigger{}
	f.registry.RegisterTrigger(trigger, domain.EventTaskCreated, domain.EventDayUpdated)

	userID := uuid.New()
	day := domain.NewDay(userID, uowNow, uowNow)
	day.CollectEvents() // loaded entity, creation already dispatched
	task := domain.NewTask(userID, "write report", uowNow, uowNow)

	u := f.factory.New()
	// Day registered before Task: its events must be dispatched first.
	day.ApplyUpdate(domain.DayUpdate{Notes: opt.Of("focus day")}, uowNow)
	if err := u.Add(day); err != nil {
		t.Fatalf("add day: %v", err)
	}
	if err := u.Create(task); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if len(trigger.seen) != 2 {
		t.Fatalf("handler saw %d events, want 2", len(trigger.seen))
	}
	if trigger.seen[0].Kind != domain.EventDayUpdated || trigger.seen[1].Kind != domain.EventTaskCreated {
		t.Errorf("dispatch order = [%s %s], want day.updated before task.created",
			trigger.seen[0].Kind, trigger.seen[1].Kind)
	}

	// Outbox contains exactly the jobs handlers enqueued, flushed post-commit.
	if len(f.submitter.submitted) != 2 {
		t.Errorf("submitted %d jobs, want 2", len(f.submitter.submitted))
	}
}

func TestCommitWithoutHandlersFlushesNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	u := f.factory.New()
	if err := u.Create(domain.NewTask(uuid.New(), "quiet", uowNow, uowNow)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if len(f.submitter.submitted) != 0 {
		t.Errorf("submitted %d jobs with no trigger handlers, want 0", len(f.submitter.submitted))
	}
}

func TestCommitFlushFailureStillCommitted(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	trigger := &recordingTrigger{}
	f.registry.RegisterTrigger(trigger, domain.EventTaskCreated)
	f.submitter.err = errors.New("broker down")

	u := f.factory.New()
	if err := u.Create(domain.NewTask(uuid.New(), "write report", uowNow, uowNow)); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := u.Commit(context.Background())
	if !errors.Is(err, ErrFlushFailed) {
		t.Fatalf("got %v, want ErrFlushFailed", err)
	}
	if u.State() != StateCommitted {
		t.Errorf("state = %s, want COMMITTED despite flush failure", u.State())
	}
}

func TestCommitTwiceFails(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	u := f.factory.New()
	if err := u.Commit(context.Background()); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	if err := u.Commit(context.Background()); !errors.Is(err, ErrNotOpen) {
		t.Errorf("second commit: got %v, want ErrNotOpen", err)
	}
}

func TestRollbackDiscardsEverything(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	u := f.factory.New()
	if err := u.Create(domain.NewTask(uuid.New(), "abandoned", uowNow, uowNow)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := u.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if u.State() != StateRolledBack {
		t.Errorf("state = %s, want ROLLED_BACK", u.State())
	}
	if err := u.Create(domain.NewTask(uuid.New(), "late", uowNow, uowNow)); !errors.Is(err, ErrNotOpen) {
		t.Errorf("create after rollback: got %v, want ErrNotOpen", err)
	}
	if len(f.taskStore.calls) != 0 {
		t.Errorf("store called %d times after rollback-only flow", len(f.taskStore.calls))
	}
}

func TestCommitUnregisteredEntityTypeRollsBack(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	u := f.factory.New()
	routine := domain.NewRoutine(uuid.New(), "morning run", 0, uowNow)
	if err := u.Create(routine); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := u.Commit(context.Background()); err == nil {
		t.Fatal("commit should fail for an entity type with no store")
	}
	if u.State() != StateRolledBack {
		t.Errorf("state = %s, want ROLLED_BACK", u.State())
	}
}
