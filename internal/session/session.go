// Package session owns the in-memory task and log collections for one
// logged-in username. Every mutation writes the affected collection back
// to the store, so the database always reflects the latest state.
// Switching users means discarding the Session and opening a new one.
package session

import (
	"errors"
	"strings"

	"github.com/mei/taskflow/internal/db"
	"github.com/mei/taskflow/internal/model"
)

var (
	ErrEmptyTitle   = errors.New("session: task title is required")
	ErrTaskNotFound = errors.New("session: task not found")
)

// Session is the per-user workspace
type Session struct {
	Username            string
	Tasks               []model.Task
	Logs                []model.TaskLog
	GlobalNotifications bool

	db *db.DB
}

// Open loads the collections for a username from the store
func Open(database *db.DB, username string) (*Session, error) {
	tasks, err := database.LoadTasks(username)
	if err != nil {
		return nil, err
	}
	logs, err := database.LoadLogs(username)
	if err != nil {
		return nil, err
	}
	global, err := database.GlobalNotifications(username)
	if err != nil {
		return nil, err
	}
	return &Session{
		Username:            username,
		Tasks:               tasks,
		Logs:                logs,
		GlobalNotifications: global,
		db:                  database,
	}, nil
}

// TaskFields are the user-editable task attributes. Create and Update
// never touch id, createdAt, isCompleted or notificationEnabled.
type TaskFields struct {
	Title         string
	Description   string
	Type          model.TaskType
	Frequency     *model.Frequency
	NeedsTracking bool
	Color         string
	Icon          string
}

// CreateTask validates and prepends a new task (newest-first display order)
func (s *Session) CreateTask(fields TaskFields) (*model.Task, error) {
	if strings.TrimSpace(fields.Title) == "" {
		return nil, ErrEmptyTitle
	}

	task := model.Task{
		ID:                  model.NewID(),
		Title:               fields.Title,
		Description:         fields.Description,
		Type:                fields.Type,
		Frequency:           fields.Frequency,
		NeedsTracking:       fields.NeedsTracking,
		IsCompleted:         false,
		CreatedAt:           model.Now(),
		Color:               fields.Color,
		Icon:                fields.Icon,
		NotificationEnabled: true,
	}

	s.Tasks = append([]model.Task{task}, s.Tasks...)
	if err := s.saveTasks(); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask merges the editable fields into an existing task
func (s *Session) UpdateTask(id model.ID, fields TaskFields) error {
	if strings.TrimSpace(fields.Title) == "" {
		return ErrEmptyTitle
	}

	i := s.indexOf(id)
	if i < 0 {
		return ErrTaskNotFound
	}

	t := &s.Tasks[i]
	t.Title = fields.Title
	t.Description = fields.Description
	t.Type = fields.Type
	t.Frequency = fields.Frequency
	t.NeedsTracking = fields.NeedsTracking
	t.Color = fields.Color
	t.Icon = fields.Icon
	return s.saveTasks()
}

// TaskByID returns the live task with the given id, or nil
func (s *Session) TaskByID(id model.ID) *model.Task {
	i := s.indexOf(id)
	if i < 0 {
		return nil
	}
	return &s.Tasks[i]
}

// ToggleCompletion flips the done flag (archived/paused for habits)
func (s *Session) ToggleCompletion(id model.ID) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	s.Tasks[i].IsCompleted = !s.Tasks[i].IsCompleted
	return s.saveTasks()
}

// ToggleNotification flips the per-task reminder switch, independent of
// the global one.
func (s *Session) ToggleNotification(id model.ID) error {
	i := s.indexOf(id)
	if i < 0 {
		return ErrTaskNotFound
	}
	s.Tasks[i].NotificationEnabled = !s.Tasks[i].NotificationEnabled
	return s.saveTasks()
}

// LogActivity appends a completion record with timestamp=now. The task
// itself is never mutated by logging.
func (s *Session) LogActivity(taskID model.ID, count, durationSeconds int, note string) (*model.TaskLog, error) {
	if s.indexOf(taskID) < 0 {
		return nil, ErrTaskNotFound
	}
	if count < 0 {
		count = 0
	}
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	log := model.TaskLog{
		ID:              model.NewID(),
		TaskID:          taskID,
		Timestamp:       model.Now(),
		Count:           count,
		DurationSeconds: durationSeconds,
		Note:            strings.TrimSpace(note),
	}
	s.Logs = append(s.Logs, log)
	if err := s.saveLogs(); err != nil {
		return nil, err
	}
	return &log, nil
}

// DeleteTask removes a task and cascades to all of its logs
func (s *Session) DeleteTask(id model.ID) error {
	return s.BatchDelete([]model.ID{id})
}

// BatchDelete removes every listed task and their logs in one pass over
// each collection.
func (s *Session) BatchDelete(ids []model.ID) error {
	if len(ids) == 0 {
		return nil
	}

	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id.String()] = struct{}{}
	}

	tasks := s.Tasks[:0]
	for _, t := range s.Tasks {
		if _, gone := doomed[t.ID.String()]; !gone {
			tasks = append(tasks, t)
		}
	}
	s.Tasks = tasks

	logs := s.Logs[:0]
	for _, l := range s.Logs {
		if _, gone := doomed[l.TaskID.String()]; !gone {
			logs = append(logs, l)
		}
	}
	s.Logs = logs

	if err := s.saveTasks(); err != nil {
		return err
	}
	return s.saveLogs()
}

// SetGlobalNotifications persists the per-user reminder switch
func (s *Session) SetGlobalNotifications(on bool) error {
	s.GlobalNotifications = on
	return s.db.SetGlobalNotifications(s.Username, on)
}

// ApplyReminders replaces the task collection with the evaluator's output
// (tasks stamped with lastNotifiedAt) and persists it.
func (s *Session) ApplyReminders(tasks []model.Task) error {
	s.Tasks = tasks
	return s.saveTasks()
}

// Import replaces both collections with restored backup data
func (s *Session) Import(tasks []model.Task, logs []model.TaskLog) error {
	s.Tasks = tasks
	s.Logs = logs
	if err := s.saveTasks(); err != nil {
		return err
	}
	return s.saveLogs()
}

// Credentials returns the stored backup token and gist id
func (s *Session) Credentials() (token, gistID string, err error) {
	return s.db.Credentials(s.Username)
}

// SaveCredentials persists the backup token and gist id
func (s *Session) SaveCredentials(token, gistID string) error {
	return s.db.SaveCredentials(s.Username, token, gistID)
}

func (s *Session) indexOf(id model.ID) int {
	want := id.String()
	for i := range s.Tasks {
		if s.Tasks[i].ID.String() == want {
			return i
		}
	}
	return -1
}

func (s *Session) saveTasks() error {
	return s.db.SaveTasks(s.Username, s.Tasks)
}

func (s *Session) saveLogs() error {
	return s.db.SaveLogs(s.Username, s.Logs)
}
