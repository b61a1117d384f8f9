// Package worker executes background jobs delivered over JetStream: LLM
// classification of brain-dump items, user notifications, and calendar
// provider sync. Jobs are acked only after their handler succeeds; transient
// failures are redelivered with a growing delay, permanent ones terminated.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/adapter/njs"
	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/gateway"
	"github.com/daymate/backend/internal/outbox"
	dayservice "github.com/daymate/backend/internal/service/day"
	"github.com/daymate/backend/pkg/ctxutil"
)

const (
	// DefaultConcurrency is the number of handler goroutines per worker
	// process.
	DefaultConcurrency = 4

	baseRetryDelay = 5 * time.Second
	maxRetryDelay  = 5 * time.Minute
)

type jobSource interface {
	Consume(ctx context.Context) (<-chan *njs.Message, error)
}

type dayService interface {
	GetDay(ctx context.Context, dayID uuid.UUID) (*domain.Day, error)
	ClassifyBrainDumpItem(ctx context.Context, input dayservice.ClassifyBrainDumpItemInput) (*domain.Day, error)
}

type calendarService interface {
	GetEntry(ctx context.Context, entryID uuid.UUID) (*domain.CalendarEntry, error)
}

// Worker pulls jobs from the stream and dispatches them to handlers.
type Worker struct {
	source      jobSource
	days        dayService
	calendar    calendarService
	model       gateway.LanguageModel
	notifier    gateway.Notifier
	sync        gateway.Calendar
	concurrency int
	log         *slog.Logger
}

// New creates a worker over the given job source and collaborators.
func New(
	log *slog.Logger,
	source jobSource,
	days dayService,
	calendar calendarService,
	model gateway.LanguageModel,
	notifier gateway.Notifier,
	sync gateway.Calendar,
) *Worker {
	return &Worker{
		source:      source,
		days:        days,
		calendar:    calendar,
		model:       model,
		notifier:    notifier,
		sync:        sync,
		concurrency: DefaultConcurrency,
		log:         log.With("component", "worker"),
	}
}

// WithConcurrency overrides the handler goroutine count.
func (w *Worker) WithConcurrency(n int) *Worker {
	if n > 0 {
		w.concurrency = n
	}
	return w
}

// Run consumes jobs until ctx is cancelled. It blocks.
func (w *Worker) Run(ctx context.Context) error {
	messages, err := w.source.Consume(ctx)
	if err != nil {
		return err
	}

	w.log.InfoContext(ctx, "worker started", slog.Int("concurrency", w.concurrency))

	var wg sync.WaitGroup
	for i := 0; i < w.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for msg := range messages {
				w.process(ctx, msg)
			}
		}()
	}
	wg.Wait()

	w.log.InfoContext(ctx, "worker stopped")
	return ctx.Err()
}

func (w *Worker) process(ctx context.Context, msg *njs.Message) {
	job := msg.Job
	log := w.log.With(
		slog.String("job_id", job.ID.String()),
		slog.String("kind", string(job.Kind)),
		slog.Int("deliveries", msg.Deliveries),
	)

	err := w.handle(ctx, job)
	switch {
	case err == nil:
		if ackErr := msg.Ack(); ackErr != nil {
			log.Error("ack failed", slog.String("error", ackErr.Error()))
		}
	case isPermanent(err):
		log.Warn("job terminated", slog.String("error", err.Error()))
		if termErr := msg.Term(); termErr != nil {
			log.Error("term failed", slog.String("error", termErr.Error()))
		}
	default:
		delay := retryDelay(msg.Deliveries)
		log.Error("job failed, redelivering",
			slog.String("error", err.Error()),
			slog.Duration("delay", delay),
		)
		if nakErr := msg.Nak(delay); nakErr != nil {
			log.Error("nak failed", slog.String("error", nakErr.Error()))
		}
	}
}

// handle routes one job to its handler. The acting user is the job's owner;
// the job ID doubles as the request ID for log correlation.
func (w *Worker) handle(ctx context.Context, job outbox.Job) error {
	ctx = ctxutil.WithUserID(ctx, job.UserID)
	ctx = ctxutil.WithRequestID(ctx, job.ID.String())

	switch job.Kind {
	case outbox.JobProcessBrainDump:
		return w.processBrainDump(ctx, job)
	case outbox.JobSendNotification:
		return w.sendNotification(ctx, job)
	case outbox.JobSyncCalendar:
		return w.syncCalendar(ctx, job)
	default:
		return permanentErrorf("unknown job kind %q", job.Kind)
	}
}

// isPermanent reports whether retrying the job can never succeed.
func isPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation)
}

// retryDelay backs off linearly with the delivery count.
func retryDelay(deliveries int) time.Duration {
	if deliveries < 1 {
		deliveries = 1
	}
	delay := time.Duration(deliveries) * baseRetryDelay
	if delay > maxRetryDelay {
		return maxRetryDelay
	}
	return delay
}
