package reminder

import (
	"testing"
	"time"

	"github.com/mei/taskflow/internal/model"
)

var allOn = Prefs{GlobalEnabled: true, PermissionGranted: true}

func dailyHabit(id model.ID, createdAt int64) model.Task {
	return model.Task{
		ID:                  id,
		Title:               "habit " + id.String(),
		Type:                model.TypeHabit,
		Frequency:           &model.Frequency{Value: 1, Unit: model.UnitDay},
		CreatedAt:           createdAt,
		NotificationEnabled: true,
	}
}

func TestEvaluateFiresWhenOverdue(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	now := created.Add(25 * time.Hour)

	tasks := []model.Task{dailyHabit("t1", created.UnixMilli())}

	out, fires := Evaluate(now, tasks, nil, allOn)
	if len(fires) != 1 {
		t.Fatalf("got %d fires, want 1", len(fires))
	}
	if fires[0].Task.ID != "t1" {
		t.Errorf("fired wrong task: %s", fires[0].Task.ID)
	}
	if fires[0].Tag() != "task-t1" {
		t.Errorf("got tag %q, want task-t1", fires[0].Tag())
	}

	// The returned collection carries the notification stamp
	if out[0].LastNotifiedAt == nil || *out[0].LastNotifiedAt != now.UnixMilli() {
		t.Errorf("lastNotifiedAt not stamped: %v", out[0].LastNotifiedAt)
	}

	// The input collection is left untouched
	if tasks[0].LastNotifiedAt != nil {
		t.Error("input slice was mutated")
	}
}

func TestEvaluateDoesNotRefireWithinFrequency(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	first := created.Add(25 * time.Hour)

	tasks := []model.Task{dailyHabit("t1", created.UnixMilli())}

	out, fires := Evaluate(first, tasks, nil, allOn)
	if len(fires) != 1 {
		t.Fatalf("first pass: got %d fires, want 1", len(fires))
	}

	// Ten seconds later the task is still overdue on activity, but the
	// notification clock has not run out. Nothing fires again.
	out2, fires2 := Evaluate(first.Add(10*time.Second), out, nil, allOn)
	if len(fires2) != 0 {
		t.Fatalf("second pass: got %d fires, want 0", len(fires2))
	}
	if out2[0].LastNotifiedAt == nil {
		t.Error("stamp lost between passes")
	}

	// A full day after the first notification it fires again
	_, fires3 := Evaluate(first.Add(25*time.Hour), out, nil, allOn)
	if len(fires3) != 1 {
		t.Fatalf("third pass: got %d fires, want 1", len(fires3))
	}
}

func TestEvaluateActivityResetsTheClock(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	now := created.Add(25 * time.Hour)

	tasks := []model.Task{dailyHabit("t1", created.UnixMilli())}
	logs := []model.TaskLog{
		{ID: "l1", TaskID: "t1", Timestamp: now.Add(-2 * time.Hour).UnixMilli()},
	}

	if _, fires := Evaluate(now, tasks, logs, allOn); len(fires) != 0 {
		t.Fatalf("got %d fires, want 0 after recent activity", len(fires))
	}
}

func TestEvaluateGates(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	now := created.Add(48 * time.Hour)
	overdue := dailyHabit("t1", created.UnixMilli())

	bellOff := overdue
	bellOff.NotificationEnabled = false

	done := overdue
	done.IsCompleted = true

	single := overdue
	single.Type = model.TypeSingle

	cases := []struct {
		name  string
		task  model.Task
		prefs Prefs
	}{
		{"global switch off", overdue, Prefs{GlobalEnabled: false, PermissionGranted: true}},
		{"no notification support", overdue, Prefs{GlobalEnabled: true, PermissionGranted: false}},
		{"task bell off", bellOff, allOn},
		{"completed habit", done, allOn},
		{"single tasks never remind", single, allOn},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, fires := Evaluate(now, []model.Task{tc.task}, nil, tc.prefs)
			if len(fires) != 0 {
				t.Errorf("got %d fires, want 0", len(fires))
			}
			if out[0].LastNotifiedAt != nil {
				t.Error("gated task was stamped")
			}
		})
	}
}

func TestEvaluateDefaultsMissingFrequencyToDaily(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	task := dailyHabit("t1", created.UnixMilli())
	task.Frequency = nil

	if _, fires := Evaluate(created.Add(12*time.Hour), []model.Task{task}, nil, allOn); len(fires) != 0 {
		t.Fatal("fired before the implied daily interval elapsed")
	}
	if _, fires := Evaluate(created.Add(25*time.Hour), []model.Task{task}, nil, allOn); len(fires) != 1 {
		t.Fatal("did not fire after the implied daily interval")
	}
}

func TestEvaluateOnlyCopiesWhenSomethingFires(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	tasks := []model.Task{dailyHabit("t1", created.UnixMilli())}

	out, fires := Evaluate(created.Add(time.Hour), tasks, nil, allOn)
	if len(fires) != 0 {
		t.Fatalf("got %d fires, want 0", len(fires))
	}
	if &out[0] != &tasks[0] {
		t.Error("expected the input slice back when nothing fires")
	}
}

func TestEvaluateStampsOnlyDueTasks(t *testing.T) {
	created := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	now := created.Add(25 * time.Hour)

	due := dailyHabit("due", created.UnixMilli())
	fresh := dailyHabit("fresh", now.Add(-time.Hour).UnixMilli())

	out, fires := Evaluate(now, []model.Task{due, fresh}, nil, allOn)
	if len(fires) != 1 || fires[0].Task.ID != "due" {
		t.Fatalf("got fires %v, want just the overdue task", fires)
	}
	if out[0].LastNotifiedAt == nil {
		t.Error("due task not stamped")
	}
	if out[1].LastNotifiedAt != nil {
		t.Error("fresh task was stamped")
	}
}
