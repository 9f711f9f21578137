package session

import (
	"strings"
	"testing"
	"time"

	"github.com/mei/taskflow/internal/model"
)

func TestExportFileName(t *testing.T) {
	now := time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)
	got := ExportFileName("alice", now)
	if got != "taskflow_alice_export_2026-03-05.txt" {
		t.Errorf("got %q", got)
	}
}

func TestExportTextCoversSelectedTasks(t *testing.T) {
	sess, _ := openTestSession(t, "alice")

	run, _ := sess.CreateTask(habitFields("run"))
	read, _ := sess.CreateTask(habitFields("read"))
	skipped, _ := sess.CreateTask(habitFields("skipped"))

	sess.LogActivity(run.ID, 0, 1800, "morning jog")
	sess.LogActivity(run.ID, 2, 0, "")
	sess.LogActivity(skipped.ID, 1, 0, "")

	now := time.Date(2026, 3, 5, 10, 30, 0, 0, time.UTC)
	out := sess.ExportText([]model.ID{run.ID, read.ID}, now)

	if !strings.Contains(out, "TaskFlow export report (alice) - 2026-03-05 10:30:00") {
		t.Errorf("header missing:\n%s", out)
	}
	if !strings.Contains(out, "Task: run") || !strings.Contains(out, "Task: read") {
		t.Errorf("selected tasks missing:\n%s", out)
	}
	if strings.Contains(out, "Task: skipped") {
		t.Errorf("unselected task leaked into export:\n%s", out)
	}
	if !strings.Contains(out, "Activity log (2 entries):") {
		t.Errorf("log count wrong:\n%s", out)
	}
	if !strings.Contains(out, "(no entries)") {
		t.Errorf("empty history marker missing:\n%s", out)
	}
	if !strings.Contains(out, "Description: none") {
		t.Errorf("empty description fallback missing:\n%s", out)
	}
	if !strings.Contains(out, "Note: morning jog") {
		t.Errorf("note missing:\n%s", out)
	}
}

func TestExportTextEveryLogLineHasAMetric(t *testing.T) {
	sess, _ := openTestSession(t, "alice")
	task, _ := sess.CreateTask(habitFields("mixed"))

	// duration only, count only, both, neither
	sess.LogActivity(task.ID, 0, 120, "")
	sess.LogActivity(task.ID, 5, 0, "")
	sess.LogActivity(task.ID, 3, 60, "")
	sess.LogActivity(task.ID, 0, 0, "")

	out := sess.ExportText([]model.ID{task.ID}, time.Now())

	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "  - [") {
			continue
		}
		if !strings.Contains(line, "Duration:") && !strings.Contains(line, "Count:") {
			t.Errorf("log line carries no metric: %q", line)
		}
	}

	if !strings.Contains(out, "Duration: 0h 2m 0s") {
		t.Errorf("duration-only entry wrong:\n%s", out)
	}
	if !strings.Contains(out, "Count: 5") {
		t.Errorf("count-only entry wrong:\n%s", out)
	}
	if !strings.Contains(out, "Duration: 0h 1m 0s, Count: 3") {
		t.Errorf("combined entry wrong:\n%s", out)
	}
	// A log with nothing tracked still reports Count: 0
	if !strings.Contains(out, "Count: 0") {
		t.Errorf("empty entry should fall back to Count: 0:\n%s", out)
	}
}

func TestExportTextOrdersLogsNewestFirst(t *testing.T) {
	sess, _ := openTestSession(t, "alice")
	task, _ := sess.CreateTask(habitFields("ordered"))

	// Hand-build logs with controlled timestamps
	old := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC).UnixMilli()
	recent := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC).UnixMilli()
	sess.Logs = []model.TaskLog{
		{ID: "l-old", TaskID: task.ID, Timestamp: old, Count: 1},
		{ID: "l-new", TaskID: task.ID, Timestamp: recent, Count: 2},
	}

	out := sess.ExportText([]model.ID{task.ID}, time.Now())

	newIdx := strings.Index(out, "Count: 2")
	oldIdx := strings.Index(out, "Count: 1")
	if newIdx < 0 || oldIdx < 0 || newIdx > oldIdx {
		t.Errorf("logs not newest-first:\n%s", out)
	}
}
