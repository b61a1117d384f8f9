package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/internal/gateway"
	"github.com/daymate/backend/internal/outbox"
	dayservice "github.com/daymate/backend/internal/service/day"
)

// permanentError marks a job failure that redelivery cannot fix.
type permanentError struct {
	msg string
}

func (e *permanentError) Error() string { return e.msg }

func permanentErrorf(format string, args ...any) error {
	return &permanentError{msg: fmt.Sprintf(format, args...)}
}

// processBrainDump runs the language model over a captured item and records
// the verdict. Items classified while the job waited are left alone.
func (w *Worker) processBrainDump(ctx context.Context, job outbox.Job) error {
	dayID, err := payloadID(job.Payload, "day_id")
	if err != nil {
		return err
	}
	itemID, err := payloadID(job.Payload, "item_id")
	if err != nil {
		return err
	}

	day, err := w.days.GetDay(ctx, dayID)
	if err != nil {
		return fmt.Errorf("get day %s: %w", dayID, err)
	}
	item, err := day.FindBrainDumpItem(itemID)
	if err != nil {
		return fmt.Errorf("brain dump item %s: %w", itemID, err)
	}
	if item.Status != domain.BrainDumpStatusNew {
		w.log.InfoContext(ctx, "item already handled, skipping",
			slog.String("item_id", itemID.String()),
			slog.String("status", item.Status.String()),
		)
		return nil
	}

	verdict, err := w.model.Interpret(ctx, gateway.InterpretRequest{Text: item.Text})
	if err != nil {
		return fmt.Errorf("interpret item %s: %w", itemID, err)
	}

	if _, err := w.days.ClassifyBrainDumpItem(ctx, dayservice.ClassifyBrainDumpItemInput{
		DayID:  dayID,
		ItemID: itemID,
		Type:   verdict.Type,
	}); err != nil {
		return fmt.Errorf("classify item %s: %w", itemID, err)
	}

	w.log.InfoContext(ctx, "brain dump item classified",
		slog.String("item_id", itemID.String()),
		slog.String("type", verdict.Type.String()),
	)
	return nil
}

// sendNotification delivers one user notification through the gateway.
func (w *Worker) sendNotification(ctx context.Context, job outbox.Job) error {
	title, _ := job.Payload["title"].(string)
	body, _ := job.Payload["body"].(string)
	if title == "" {
		return permanentErrorf("notification job %s has no title", job.ID)
	}

	return w.notifier.SendNotification(ctx, gateway.Notification{
		UserID: job.UserID,
		Title:  title,
		Body:   body,
	})
}

// syncCalendar pushes the current state of a mirrored entry to the external
// provider.
func (w *Worker) syncCalendar(ctx context.Context, job outbox.Job) error {
	entryID, err := payloadID(job.Payload, "entry_id")
	if err != nil {
		return err
	}

	entry, err := w.calendar.GetEntry(ctx, entryID)
	if err != nil {
		return fmt.Errorf("get calendar entry %s: %w", entryID, err)
	}

	if err := w.sync.UpsertEntry(ctx, entry); err != nil {
		return fmt.Errorf("sync calendar entry %s: %w", entryID, err)
	}

	w.log.InfoContext(ctx, "calendar entry synced",
		slog.String("entry_id", entryID.String()),
	)
	return nil
}

func payloadID(payload map[string]any, key string) (uuid.UUID, error) {
	raw, _ := payload[key].(string)
	if raw == "" {
		return uuid.Nil, permanentErrorf("payload %s: missing", key)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, permanentErrorf("payload %s: %v", key, err)
	}
	return id, nil
}
