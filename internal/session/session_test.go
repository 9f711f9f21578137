package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/mei/taskflow/internal/db"
	"github.com/mei/taskflow/internal/model"
)

func openTestSession(t *testing.T, username string) (*Session, *db.DB) {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	sess, err := Open(database, username)
	if err != nil {
		t.Fatalf("Failed to open session: %v", err)
	}
	return sess, database
}

func habitFields(title string) TaskFields {
	return TaskFields{
		Title:         title,
		Type:          model.TypeHabit,
		Frequency:     &model.Frequency{Value: 1, Unit: model.UnitDay},
		NeedsTracking: true,
		Color:         "bg-blue-500",
		Icon:          "💧",
	}
}

func TestCreateTaskRejectsEmptyTitle(t *testing.T) {
	sess, _ := openTestSession(t, "alice")

	for _, title := range []string{"", "   ", "\t"} {
		if _, err := sess.CreateTask(habitFields(title)); !errors.Is(err, ErrEmptyTitle) {
			t.Errorf("CreateTask(%q) err = %v, want ErrEmptyTitle", title, err)
		}
	}
	if len(sess.Tasks) != 0 {
		t.Fatalf("rejected creates still grew the collection: %d", len(sess.Tasks))
	}
}

func TestCreateTaskPrependsAndDefaults(t *testing.T) {
	sess, _ := openTestSession(t, "alice")

	first, err := sess.CreateTask(habitFields("first"))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	second, err := sess.CreateTask(habitFields("second"))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	// Newest first
	if sess.Tasks[0].ID != second.ID || sess.Tasks[1].ID != first.ID {
		t.Fatalf("order wrong: %v then %v", sess.Tasks[0].Title, sess.Tasks[1].Title)
	}

	if !second.NotificationEnabled {
		t.Error("new tasks should start with reminders on")
	}
	if second.IsCompleted {
		t.Error("new tasks should start incomplete")
	}
	if second.ID == first.ID {
		t.Error("ids must be unique")
	}
}

func TestUpdateTaskKeepsIdentityFields(t *testing.T) {
	sess, _ := openTestSession(t, "alice")

	created, err := sess.CreateTask(habitFields("stretch"))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if err := sess.ToggleCompletion(created.ID); err != nil {
		t.Fatalf("ToggleCompletion failed: %v", err)
	}

	fields := habitFields("stretch more")
	fields.Type = model.TypeSingle
	if err := sess.UpdateTask(created.ID, fields); err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}

	got := sess.TaskByID(created.ID)
	if got == nil {
		t.Fatal("task vanished after update")
	}
	if got.Title != "stretch more" || got.Type != model.TypeSingle {
		t.Errorf("editable fields not applied: %+v", got)
	}
	if got.CreatedAt != created.CreatedAt {
		t.Error("update must not touch createdAt")
	}
	if !got.IsCompleted {
		t.Error("update must not reset completion")
	}

	if err := sess.UpdateTask(created.ID, habitFields("  ")); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("blank title update err = %v, want ErrEmptyTitle", err)
	}
	if err := sess.UpdateTask("nope", habitFields("x")); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("unknown id update err = %v, want ErrTaskNotFound", err)
	}
}

func TestLogActivityClampsAndNeverMutatesTask(t *testing.T) {
	sess, _ := openTestSession(t, "alice")

	created, err := sess.CreateTask(habitFields("run"))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	before := *sess.TaskByID(created.ID)

	log, err := sess.LogActivity(created.ID, -3, -10, "  felt good  ")
	if err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}
	if log.Count != 0 || log.DurationSeconds != 0 {
		t.Errorf("negative metrics not clamped: %+v", log)
	}
	if log.Note != "felt good" {
		t.Errorf("note not trimmed: %q", log.Note)
	}
	if log.Timestamp == 0 {
		t.Error("timestamp not set")
	}

	after := *sess.TaskByID(created.ID)
	if before != after {
		t.Errorf("logging mutated the task: %+v -> %+v", before, after)
	}

	if _, err := sess.LogActivity("ghost", 1, 1, ""); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("logging to unknown task err = %v, want ErrTaskNotFound", err)
	}
}

func TestDeleteTaskCascadesToOwnLogsOnly(t *testing.T) {
	sess, _ := openTestSession(t, "alice")

	doomed, _ := sess.CreateTask(habitFields("doomed"))
	kept, _ := sess.CreateTask(habitFields("kept"))

	if _, err := sess.LogActivity(doomed.ID, 1, 0, ""); err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}
	if _, err := sess.LogActivity(kept.ID, 2, 0, ""); err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}

	if err := sess.DeleteTask(doomed.ID); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	if sess.TaskByID(doomed.ID) != nil {
		t.Error("task survived delete")
	}
	if sess.TaskByID(kept.ID) == nil {
		t.Error("unrelated task was deleted")
	}
	if len(sess.Logs) != 1 || sess.Logs[0].TaskID.String() != kept.ID.String() {
		t.Fatalf("cascade wrong, remaining logs: %+v", sess.Logs)
	}
}

func TestBatchDelete(t *testing.T) {
	sess, _ := openTestSession(t, "alice")

	a, _ := sess.CreateTask(habitFields("a"))
	b, _ := sess.CreateTask(habitFields("b"))
	c, _ := sess.CreateTask(habitFields("c"))
	sess.LogActivity(a.ID, 1, 0, "")
	sess.LogActivity(c.ID, 1, 0, "")

	if err := sess.BatchDelete([]model.ID{a.ID, b.ID}); err != nil {
		t.Fatalf("BatchDelete failed: %v", err)
	}

	if len(sess.Tasks) != 1 || sess.Tasks[0].ID != c.ID {
		t.Fatalf("remaining tasks wrong: %+v", sess.Tasks)
	}
	if len(sess.Logs) != 1 || sess.Logs[0].TaskID.String() != c.ID.String() {
		t.Fatalf("remaining logs wrong: %+v", sess.Logs)
	}

	// Empty and unknown ids are harmless
	if err := sess.BatchDelete(nil); err != nil {
		t.Fatalf("BatchDelete(nil) failed: %v", err)
	}
	if err := sess.BatchDelete([]model.ID{"ghost"}); err != nil {
		t.Fatalf("BatchDelete(ghost) failed: %v", err)
	}
	if len(sess.Tasks) != 1 {
		t.Fatal("no-op deletes changed the collection")
	}
}

func TestSessionPersistsAcrossReopen(t *testing.T) {
	sess, database := openTestSession(t, "alice")

	created, err := sess.CreateTask(habitFields("persisted"))
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if _, err := sess.LogActivity(created.ID, 3, 90, "note"); err != nil {
		t.Fatalf("LogActivity failed: %v", err)
	}
	if err := sess.SetGlobalNotifications(false); err != nil {
		t.Fatalf("SetGlobalNotifications failed: %v", err)
	}

	reopened, err := Open(database, "alice")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if len(reopened.Tasks) != 1 || reopened.Tasks[0].Title != "persisted" {
		t.Fatalf("tasks did not persist: %+v", reopened.Tasks)
	}
	if len(reopened.Logs) != 1 || reopened.Logs[0].Count != 3 {
		t.Fatalf("logs did not persist: %+v", reopened.Logs)
	}
	if reopened.GlobalNotifications {
		t.Error("global switch did not persist")
	}

	// A different username starts clean
	other, err := Open(database, "bob")
	if err != nil {
		t.Fatalf("Open(bob) failed: %v", err)
	}
	if len(other.Tasks) != 0 || len(other.Logs) != 0 {
		t.Error("namespaces leak between users")
	}
}

func TestImportReplacesCollections(t *testing.T) {
	sess, database := openTestSession(t, "alice")
	sess.CreateTask(habitFields("old"))

	tasks := []model.Task{{ID: "r1", Title: "restored", Type: model.TypeHabit, CreatedAt: 1}}
	logs := []model.TaskLog{{ID: "rl1", TaskID: "r1", Timestamp: 2, Count: 1}}
	if err := sess.Import(tasks, logs); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(sess.Tasks) != 1 || sess.Tasks[0].Title != "restored" {
		t.Fatalf("import did not replace tasks: %+v", sess.Tasks)
	}

	reopened, err := Open(database, "alice")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if len(reopened.Tasks) != 1 || reopened.Tasks[0].ID != "r1" {
		t.Fatalf("import not persisted: %+v", reopened.Tasks)
	}
}

func TestApplyRemindersPersistsStamps(t *testing.T) {
	sess, database := openTestSession(t, "alice")
	created, _ := sess.CreateTask(habitFields("water"))

	stamped := make([]model.Task, len(sess.Tasks))
	copy(stamped, sess.Tasks)
	now := model.Now()
	stamped[0].LastNotifiedAt = &now

	if err := sess.ApplyReminders(stamped); err != nil {
		t.Fatalf("ApplyReminders failed: %v", err)
	}

	reopened, err := Open(database, "alice")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	got := reopened.TaskByID(created.ID)
	if got == nil || got.LastNotifiedAt == nil || *got.LastNotifiedAt != now {
		t.Fatalf("stamp not persisted: %+v", got)
	}
}
