package db

import (
	"path/filepath"
	"testing"

	"github.com/mei/taskflow/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestKVGetSetDelete(t *testing.T) {
	database := openTestDB(t)

	if _, ok, err := database.Get("missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want absent", ok, err)
	}

	if err := database.Set("k", "v1"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if v, ok, _ := database.Get("k"); !ok || v != "v1" {
		t.Fatalf("got %q ok=%v, want v1", v, ok)
	}

	// Overwrite through the upsert path
	if err := database.Set("k", "v2"); err != nil {
		t.Fatalf("Set overwrite failed: %v", err)
	}
	if v, _, _ := database.Get("k"); v != "v2" {
		t.Fatalf("got %q, want v2", v)
	}

	if err := database.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := database.Get("k"); ok {
		t.Fatal("key survived Delete")
	}
}

func TestTasksRoundTripPerUser(t *testing.T) {
	database := openTestDB(t)

	tasks := []model.Task{
		{ID: "t1", Title: "alpha", Type: model.TypeHabit, CreatedAt: 100},
		{ID: "t2", Title: "beta", Type: model.TypeSingle, CreatedAt: 200},
	}
	if err := database.SaveTasks("alice", tasks); err != nil {
		t.Fatalf("SaveTasks failed: %v", err)
	}

	got, err := database.LoadTasks("alice")
	if err != nil {
		t.Fatalf("LoadTasks failed: %v", err)
	}
	if len(got) != 2 || got[0].Title != "alpha" || got[1].Title != "beta" {
		t.Fatalf("got %+v, want the saved tasks back", got)
	}

	// A different username sees an empty namespace
	other, err := database.LoadTasks("bob")
	if err != nil {
		t.Fatalf("LoadTasks(bob) failed: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("bob sees alice's tasks: %+v", other)
	}
}

func TestLoadToleratesCorruptData(t *testing.T) {
	database := openTestDB(t)

	if err := database.Set(userKey("alice", "tasks"), "{not json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := database.Set(userKey("alice", "logs"), "42"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	tasks, err := database.LoadTasks("alice")
	if err != nil || len(tasks) != 0 {
		t.Fatalf("LoadTasks = %v, %v; want empty collection, nil error", tasks, err)
	}
	logs, err := database.LoadLogs("alice")
	if err != nil || len(logs) != 0 {
		t.Fatalf("LoadLogs = %v, %v; want empty collection, nil error", logs, err)
	}
}

func TestGlobalNotificationsDefaultsOn(t *testing.T) {
	database := openTestDB(t)

	on, err := database.GlobalNotifications("alice")
	if err != nil {
		t.Fatalf("GlobalNotifications failed: %v", err)
	}
	if !on {
		t.Error("default should be on")
	}

	if err := database.SetGlobalNotifications("alice", false); err != nil {
		t.Fatalf("SetGlobalNotifications failed: %v", err)
	}
	if on, _ := database.GlobalNotifications("alice"); on {
		t.Error("switch did not stick")
	}

	// Only the literal "false" means off
	if err := database.Set(userKey("alice", "global_notif"), "banana"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if on, _ := database.GlobalNotifications("alice"); !on {
		t.Error("non-false stored value should read as on")
	}
}

func TestCurrentUserLifecycle(t *testing.T) {
	database := openTestDB(t)

	if _, ok, err := database.CurrentUser(); err != nil || ok {
		t.Fatalf("fresh store should have no current user (ok=%v err=%v)", ok, err)
	}

	if err := database.SetCurrentUser("alice"); err != nil {
		t.Fatalf("SetCurrentUser failed: %v", err)
	}
	if u, ok, _ := database.CurrentUser(); !ok || u != "alice" {
		t.Fatalf("got %q ok=%v, want alice", u, ok)
	}

	if err := database.ClearCurrentUser(); err != nil {
		t.Fatalf("ClearCurrentUser failed: %v", err)
	}
	if _, ok, _ := database.CurrentUser(); ok {
		t.Fatal("current user survived logout")
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	database := openTestDB(t)

	token, gistID, err := database.Credentials("alice")
	if err != nil || token != "" || gistID != "" {
		t.Fatalf("fresh credentials = %q/%q/%v, want empty", token, gistID, err)
	}

	if err := database.SaveCredentials("alice", "ghp_secret", "abc123"); err != nil {
		t.Fatalf("SaveCredentials failed: %v", err)
	}
	token, gistID, err = database.Credentials("alice")
	if err != nil || token != "ghp_secret" || gistID != "abc123" {
		t.Fatalf("got %q/%q/%v", token, gistID, err)
	}

	// Per-user, not global
	token, _, _ = database.Credentials("bob")
	if token != "" {
		t.Error("bob sees alice's token")
	}
}
