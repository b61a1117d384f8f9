package outbox

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

type fakeSubmitter struct {
	submitted []Job
	failOn    int // 1-based index of the call that fails; 0 = never
	calls     int
}

func (f *fakeSubmitter) Submit(_ context.Context, job Job) error {
	f.calls++
	if f.failOn != 0 && f.calls == f.failOn {
		return errors.New("broker unavailable")
	}
	f.submitted = append(f.submitted, job)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestCollectorFlushPreservesEnqueueOrder(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	c := NewCollector(sub, discardLogger())
	userID := uuid.New()

	c.ScheduleNotification(userID, "first", "a")
	c.ScheduleBrainDumpProcess(userID, uuid.New(), uuid.New())
	c.ScheduleCalendarSync(userID, uuid.New())

	if err := c.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}

	want := []JobKind{JobSendNotification, JobProcessBrainDump, JobSyncCalendar}
	if len(sub.submitted) != len(want) {
		t.Fatalf("submitted %d jobs, want %d", len(sub.submitted), len(want))
	}
	for i, kind := range want {
		if sub.submitted[i].Kind != kind {
			t.Errorf("job %d kind = %s, want %s", i, sub.submitted[i].Kind, kind)
		}
	}
	if len(c.Pending()) != 0 {
		t.Errorf("pending after flush: %d", len(c.Pending()))
	}
}

func TestCollectorFlushStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{failOn: 2}
	c := NewCollector(sub, discardLogger())
	userID := uuid.New()

	c.ScheduleNotification(userID, "one", "")
	c.ScheduleNotification(userID, "two", "")
	c.ScheduleNotification(userID, "three", "")

	err := c.Flush(context.Background())
	if err == nil {
		t.Fatal("flush should fail when the submitter fails")
	}
	if len(sub.submitted) != 1 {
		t.Errorf("submitted %d jobs before failure, want 1", len(sub.submitted))
	}
	// The failed job and everything after it stay pending for a retry.
	if len(c.Pending()) != 2 {
		t.Fatalf("pending after failed flush: %d, want 2", len(c.Pending()))
	}

	sub.failOn = 0
	if err := c.Flush(context.Background()); err != nil {
		t.Fatalf("retry flush: %v", err)
	}
	if len(sub.submitted) != 3 {
		t.Errorf("submitted %d jobs after retry, want 3", len(sub.submitted))
	}
}

func TestCollectorFlushEmptyIsNoop(t *testing.T) {
	t.Parallel()

	sub := &fakeSubmitter{}
	c := NewCollector(sub, discardLogger())

	if err := c.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if sub.calls != 0 {
		t.Errorf("submitter called %d times for an empty collector", sub.calls)
	}
}

func TestNoopSchedulerIsAlwaysSafe(t *testing.T) {
	t.Parallel()

	var s Scheduler = Noop{}
	s.ScheduleNotification(uuid.New(), "ignored", "")
	s.ScheduleBrainDumpProcess(uuid.New(), uuid.New(), uuid.New())
	s.ScheduleCalendarSync(uuid.New(), uuid.New())
	if err := s.Flush(context.Background()); err != nil {
		t.Errorf("noop flush: %v", err)
	}
}
