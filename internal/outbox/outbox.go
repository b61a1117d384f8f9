// Package outbox collects background jobs during a logical operation and
// hands them to the background-execution boundary only after the owning
// unit of work has committed. Delivery is at-least-once: a flush that fails
// partway leaves already-submitted jobs submitted.
package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// JobKind identifies a background job type.
type JobKind string

const (
	JobProcessBrainDump JobKind = "process_brain_dump"
	JobSendNotification JobKind = "send_notification"
	JobSyncCalendar     JobKind = "sync_calendar"
)

// Job is one unit of post-commit background work.
type Job struct {
	ID         uuid.UUID      `json:"id"`
	Kind       JobKind        `json:"kind"`
	UserID     uuid.UUID      `json:"user_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
}

// Scheduler is the post-commit work collector handed to trigger handlers.
// Enqueue methods are fire-and-forget; nothing leaves the process until
// Flush, which the unit of work calls only after a successful commit.
type Scheduler interface {
	ScheduleBrainDumpProcess(userID, dayID, itemID uuid.UUID)
	ScheduleNotification(userID uuid.UUID, title, body string)
	ScheduleCalendarSync(userID, entryID uuid.UUID)
	Flush(ctx context.Context) error
}

// Submitter is the boundary to the background-execution system.
type Submitter interface {
	Submit(ctx context.Context, job Job) error
}

// Noop is the default scheduler when none is configured (tests, CLIs).
// Enqueueing is always safe; Flush does nothing.
type Noop struct{}

func (Noop) ScheduleBrainDumpProcess(_, _, _ uuid.UUID)    {}
func (Noop) ScheduleNotification(_ uuid.UUID, _, _ string) {}
func (Noop) ScheduleCalendarSync(_, _ uuid.UUID)           {}
func (Noop) Flush(context.Context) error                   { return nil }

// Collector buffers jobs in enqueue order and submits them on Flush.
// One Collector serves exactly one logical operation.
type Collector struct {
	submitter Submitter
	log       *slog.Logger
	now       func() time.Time
	pending   []Job
}

// NewCollector creates a collector submitting through the given boundary.
func NewCollector(submitter Submitter, log *slog.Logger) *Collector {
	return &Collector{
		submitter: submitter,
		log:       log.With("component", "outbox"),
		now:       time.Now,
	}
}

// ScheduleBrainDumpProcess enqueues LLM classification of a brain-dump item.
func (c *Collector) ScheduleBrainDumpProcess(userID, dayID, itemID uuid.UUID) {
	c.enqueue(JobProcessBrainDump, userID, map[string]any{
		"day_id":  dayID.String(),
		"item_id": itemID.String(),
	})
}

// ScheduleNotification enqueues a user notification.
func (c *Collector) ScheduleNotification(userID uuid.UUID, title, body string) {
	c.enqueue(JobSendNotification, userID, map[string]any{
		"title": title,
		"body":  body,
	})
}

// ScheduleCalendarSync enqueues synchronization of a calendar entry with
// the external provider.
func (c *Collector) ScheduleCalendarSync(userID, entryID uuid.UUID) {
	c.enqueue(JobSyncCalendar, userID, map[string]any{
		"entry_id": entryID.String(),
	})
}

// Pending returns the jobs collected so far, in enqueue order.
func (c *Collector) Pending() []Job { return c.pending }

// Flush submits every pending job in order. On a submit failure the
// already-submitted jobs stay submitted; the failed job and the rest stay
// pending and the error reports how much was left behind.
func (c *Collector) Flush(ctx context.Context) error {
	for len(c.pending) > 0 {
		job := c.pending[0]
		if err := c.submitter.Submit(ctx, job); err != nil {
			return fmt.Errorf("outbox flush: submit %s job %s (%d left unsubmitted): %w",
				job.Kind, job.ID, len(c.pending), err)
		}
		c.log.Debug("job submitted",
			slog.String("job_id", job.ID.String()),
			slog.String("kind", string(job.Kind)),
		)
		c.pending = c.pending[1:]
	}
	return nil
}

func (c *Collector) enqueue(kind JobKind, userID uuid.UUID, payload map[string]any) {
	c.pending = append(c.pending, Job{
		ID:         uuid.New(),
		Kind:       kind,
		UserID:     userID,
		Payload:    payload,
		EnqueuedAt: c.now(),
	})
}
