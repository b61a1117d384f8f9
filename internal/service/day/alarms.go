package day

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/internal/domain"
	"github.com/daymate/backend/pkg/ctxutil"
)

// AddAlarm schedules an alarm on the day.
func (s *Service) AddAlarm(ctx context.Context, input AddAlarmInput) (*domain.Alarm, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	day, err := s.days.GetByID(ctx, userID, input.DayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	alarm := day.AddAlarm(strings.TrimSpace(input.Label), input.At, s.now())

	if err := s.commitDay(ctx, day, "alarm added"); err != nil {
		return nil, fmt.Errorf("add alarm: %w", err)
	}
	return alarm, nil
}

// RemoveAlarm deletes an alarm from the day.
func (s *Service) RemoveAlarm(ctx context.Context, dayID, alarmID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if dayID == uuid.Nil || alarmID == uuid.Nil {
		return domain.NewValidationError("alarm_id", "day_id and alarm_id required")
	}

	day, err := s.days.GetByID(ctx, userID, dayID)
	if err != nil {
		return fmt.Errorf("get day: %w", err)
	}

	if err := day.RemoveAlarm(alarmID, s.now()); err != nil {
		return fmt.Errorf("alarm %s: %w", alarmID, err)
	}

	if err := s.commitDay(ctx, day, "alarm removed"); err != nil {
		return fmt.Errorf("remove alarm: %w", err)
	}
	return nil
}

// UpdateAlarmStatus transitions an alarm; snoozing requires a timestamp.
func (s *Service) UpdateAlarmStatus(ctx context.Context, input AlarmStatusInput) (*domain.Day, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	day, err := s.days.GetByID(ctx, userID, input.DayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	if err := day.UpdateAlarmStatus(input.AlarmID, input.Status, input.SnoozedUntil, s.now()); err != nil {
		return nil, fmt.Errorf("alarm %s: %w", input.AlarmID, err)
	}

	if err := s.commitDay(ctx, day, "alarm status updated"); err != nil {
		return nil, fmt.Errorf("update alarm status: %w", err)
	}
	return day, nil
}

// TriggerAlarm fires one alarm. The emitted event fans out to notification
// handlers after commit.
func (s *Service) TriggerAlarm(ctx context.Context, dayID, alarmID uuid.UUID) (*domain.Day, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if dayID == uuid.Nil || alarmID == uuid.Nil {
		return nil, domain.NewValidationError("alarm_id", "day_id and alarm_id required")
	}

	day, err := s.days.GetByID(ctx, userID, dayID)
	if err != nil {
		return nil, fmt.Errorf("get day: %w", err)
	}

	if err := day.TriggerAlarm(alarmID, s.now()); err != nil {
		return nil, fmt.Errorf("alarm %s: %w", alarmID, err)
	}

	if err := s.commitDay(ctx, day, "alarm triggered"); err != nil {
		return nil, fmt.Errorf("trigger alarm: %w", err)
	}
	return day, nil
}

// SweepAlarms walks every scheduled day for the date and fires the alarms
// that have come due, including snoozed alarms whose snooze has lapsed. It
// is a system operation driven by the scheduler loop; there is no acting
// user. Returns the number of alarms triggered.
func (s *Service) SweepAlarms(ctx context.Context, now time.Time) (int, error) {
	days, err := s.days.ListByDate(ctx, domain.DateOf(now))
	if err != nil {
		return 0, fmt.Errorf("list days for sweep: %w", err)
	}

	triggered := 0
	for _, day := range days {
		for _, alarm := range dueAlarms(day, now) {
			if err := day.TriggerAlarm(alarm, now); err != nil {
				return triggered, fmt.Errorf("trigger alarm %s: %w", alarm, err)
			}
			triggered++
		}
		if err := s.commitDay(ctx, day, "alarms swept"); err != nil {
			return triggered, fmt.Errorf("sweep alarms for day %s: %w", day.ID, err)
		}
	}

	if triggered > 0 {
		s.log.InfoContext(ctx, "alarm sweep complete",
			slog.Int("triggered", triggered),
			slog.Int("days", len(days)),
		)
	}
	return triggered, nil
}

// dueAlarms returns the IDs of alarms that should fire at the given moment.
func dueAlarms(d *domain.Day, now time.Time) []uuid.UUID {
	var due []uuid.UUID
	for _, a := range d.Alarms {
		switch a.Status {
		case domain.AlarmStatusScheduled:
			if !a.At.After(now) {
				due = append(due, a.ID)
			}
		case domain.AlarmStatusSnoozed:
			if a.SnoozedUntil != nil && !a.SnoozedUntil.After(now) {
				due = append(due, a.ID)
			}
		}
	}
	return due
}
