package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/daymate/backend/pkg/opt"
)

var routineNow = time.Date(2026, 3, 14, 5, 0, 0, 0, time.UTC) // a Saturday

func TestWeekdaysEmptyMeansEveryDay(t *testing.T) {
	t.Parallel()

	var w Weekdays
	for d := time.Sunday; d <= time.Saturday; d++ {
		if !w.Contains(d) {
			t.Errorf("empty set should contain %s", d)
		}
	}
}

func TestWeekdaysOf(t *testing.T) {
	t.Parallel()

	w := WeekdaysOf(time.Monday, time.Wednesday)
	if !w.Contains(time.Monday) || !w.Contains(time.Wednesday) {
		t.Error("set should contain Monday and Wednesday")
	}
	if w.Contains(time.Saturday) {
		t.Error("set should not contain Saturday")
	}
}

func TestRoutineIsDueOn(t *testing.T) {
	t.Parallel()

	r := NewRoutine(uuid.New(), "morning run", WeekdaysOf(time.Saturday), routineNow)
	if !r.IsDueOn(routineNow) {
		t.Error("Saturday routine should be due on a Saturday")
	}
	if r.IsDueOn(routineNow.AddDate(0, 0, 1)) {
		t.Error("Saturday routine should not be due on a Sunday")
	}

	r.Active = false
	if r.IsDueOn(routineNow) {
		t.Error("inactive routine is never due")
	}
}

func TestGenerateTaskCopiesDenormalizedFields(t *testing.T) {
	t.Parallel()

	r := NewRoutine(uuid.New(), "morning run", 0, routineNow)
	category := "health"
	r.Category = &category

	task := r.GenerateTask(routineNow, routineNow)

	if task.RoutineID == nil || *task.RoutineID != r.ID {
		t.Error("generated task should reference its routine")
	}
	if task.Name != "morning run" {
		t.Errorf("name = %q", task.Name)
	}
	if task.Category == nil || *task.Category != "health" {
		t.Errorf("category = %v", task.Category)
	}

	// Later routine edits must not leak into the generated task.
	r.ApplyUpdate(RoutineUpdate{Name: opt.Of("evening run"), Category: opt.Clear[string]()}, routineNow)
	if task.Name != "morning run" {
		t.Error("routine rename leaked into generated task")
	}
	if task.Category == nil || *task.Category != "health" {
		t.Error("routine category change leaked into generated task")
	}
}

func TestRoutineApplyUpdate(t *testing.T) {
	t.Parallel()

	r := NewRoutine(uuid.New(), "stretch", 0, routineNow)
	r.CollectEvents()

	r.ApplyUpdate(RoutineUpdate{
		Weekdays: opt.Of(WeekdaysOf(time.Monday)),
		Active:   opt.Of(false),
	}, routineNow)

	if r.Active {
		t.Error("routine should be inactive")
	}
	if !r.Weekdays.Contains(time.Monday) || r.Weekdays.Contains(time.Friday) {
		t.Error("weekdays not applied")
	}
	events := r.CollectEvents()
	if len(events) != 1 || events[0].Kind != EventRoutineUpdated {
		t.Errorf("events = %v, want one routine.updated", eventKinds(events))
	}
}
