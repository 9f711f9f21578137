// Package reminder decides which habit tasks are due for a notification.
//
// Evaluate is a pure function over the current collections; the caller
// re-runs it on a fixed tick with fresh data. Scheduling lives entirely
// outside this package so a fired reminder never re-arms any timer.
package reminder

import (
	"time"

	"github.com/mei/taskflow/internal/model"
)

// CheckInterval is how often the evaluator should run
const CheckInterval = 10 * time.Second

// Prefs carries the two global gates for reminder delivery
type Prefs struct {
	GlobalEnabled     bool
	PermissionGranted bool
}

// Fire describes one reminder to deliver. Tag collapses repeat
// notifications for the same task at the desktop.
type Fire struct {
	Task model.Task
	At   int64
}

// Tag returns the notification tag for the fired task
func (f Fire) Tag() string {
	return "task-" + f.Task.ID.String()
}

// Evaluate checks every habit task against its frequency and returns the
// updated task collection plus the reminders to deliver. A task fires only
// when both clocks have run past the frequency: time since the last
// activity and time since the last notification. Tasks that fire get
// LastNotifiedAt stamped to now in the returned collection.
//
// When nothing fires the input slice is returned unchanged.
func Evaluate(now time.Time, tasks []model.Task, logs []model.TaskLog, prefs Prefs) ([]model.Task, []Fire) {
	if !prefs.GlobalEnabled || !prefs.PermissionGranted {
		return tasks, nil
	}

	nowMs := now.UnixMilli()
	var fires []Fire
	var out []model.Task

	for i, t := range tasks {
		if !t.IsHabit() || !t.NotificationEnabled || t.IsCompleted {
			continue
		}

		freqMs := t.Frequency.Interval().Milliseconds()
		sinceActivity := nowMs - model.LastActivity(t, logs)
		if sinceActivity < freqMs {
			continue
		}
		if t.LastNotifiedAt != nil && nowMs-*t.LastNotifiedAt < freqMs {
			continue
		}

		if out == nil {
			out = make([]model.Task, len(tasks))
			copy(out, tasks)
		}
		stamp := nowMs
		out[i].LastNotifiedAt = &stamp
		fires = append(fires, Fire{Task: out[i], At: nowMs})
	}

	if out == nil {
		return tasks, nil
	}
	return out, fires
}
