package db

import (
	"encoding/json"

	"github.com/mei/taskflow/internal/model"
)

// Key layout mirrors the localStorage namespace of the original client:
// tf_<username>_tasks, tf_<username>_logs, tf_<username>_global_notif,
// plus tf_current_user and the per-user backup credentials.
const keyPrefix = "tf"

const currentUserKey = keyPrefix + "_current_user"

func userKey(username, suffix string) string {
	return keyPrefix + "_" + username + "_" + suffix
}

// LoadTasks returns the task collection for a username. Absent or corrupt
// data loads as an empty collection, never an error; only a failing
// database read is reported.
func (db *DB) LoadTasks(username string) ([]model.Task, error) {
	raw, ok, err := db.Get(userKey(username, "tasks"))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var tasks []model.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, nil
	}
	return tasks, nil
}

// SaveTasks persists the full task collection for a username
func (db *DB) SaveTasks(username string, tasks []model.Task) error {
	return db.setJSON(userKey(username, "tasks"), tasks)
}

// LoadLogs returns the log collection for a username, tolerant of corrupt
// data the same way LoadTasks is.
func (db *DB) LoadLogs(username string) ([]model.TaskLog, error) {
	raw, ok, err := db.Get(userKey(username, "logs"))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var logs []model.TaskLog
	if err := json.Unmarshal([]byte(raw), &logs); err != nil {
		return nil, nil
	}
	return logs, nil
}

// SaveLogs persists the full log collection for a username
func (db *DB) SaveLogs(username string, logs []model.TaskLog) error {
	return db.setJSON(userKey(username, "logs"), logs)
}

func (db *DB) setJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.Set(key, string(data))
}

// GlobalNotifications reports the per-user reminder switch. Anything but a
// stored "false" counts as on, matching the original default.
func (db *DB) GlobalNotifications(username string) (bool, error) {
	raw, ok, err := db.Get(userKey(username, "global_notif"))
	if err != nil {
		return true, err
	}
	if ok && raw == "false" {
		return false, nil
	}
	return true, nil
}

// SetGlobalNotifications persists the per-user reminder switch
func (db *DB) SetGlobalNotifications(username string, on bool) error {
	value := "true"
	if !on {
		value = "false"
	}
	return db.Set(userKey(username, "global_notif"), value)
}

// Credentials returns the stored backup token and gist id for a username
func (db *DB) Credentials(username string) (token, gistID string, err error) {
	token, _, err = db.Get(userKey(username, "gh_token"))
	if err != nil {
		return "", "", err
	}
	gistID, _, err = db.Get(userKey(username, "gist_id"))
	if err != nil {
		return "", "", err
	}
	return token, gistID, nil
}

// SaveCredentials persists the backup token and gist id for a username
func (db *DB) SaveCredentials(username, token, gistID string) error {
	if err := db.Set(userKey(username, "gh_token"), token); err != nil {
		return err
	}
	return db.Set(userKey(username, "gist_id"), gistID)
}

// CurrentUser returns the persisted active username, if any
func (db *DB) CurrentUser() (string, bool, error) {
	return db.Get(currentUserKey)
}

// SetCurrentUser persists the active username across restarts
func (db *DB) SetCurrentUser(username string) error {
	return db.Set(currentUserKey, username)
}

// ClearCurrentUser removes the persisted active username on logout
func (db *DB) ClearCurrentUser() error {
	return db.Delete(currentUserKey)
}
