package model

import (
	"fmt"
	"sort"
)

// TaskLog records one completion of a task: when it happened and the
// tracked metrics. Logs are append-only; they are only ever removed when
// their parent task is deleted.
type TaskLog struct {
	ID              ID     `json:"id"`
	TaskID          ID     `json:"taskId"`
	Timestamp       int64  `json:"timestamp"`
	Count           int    `json:"count"`
	DurationSeconds int    `json:"durationSeconds"`
	Note            string `json:"note,omitempty"`
}

// LogsForTask returns the logs referencing the given task. Ids are
// compared as strings; imported data may mix numeric and UUID ids.
func LogsForTask(logs []TaskLog, taskID ID) []TaskLog {
	var out []TaskLog
	for _, l := range logs {
		if l.TaskID.String() == taskID.String() {
			out = append(out, l)
		}
	}
	return out
}

// SortNewestFirst orders logs by timestamp descending, in place
func SortNewestFirst(logs []TaskLog) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Timestamp > logs[j].Timestamp
	})
}

// LastActivity returns the timestamp of the most recent log for the task,
// or the task's creation time when no logs exist.
func LastActivity(t Task, logs []TaskLog) int64 {
	last := t.CreatedAt
	for _, l := range logs {
		if l.TaskID.String() == t.ID.String() && l.Timestamp > last {
			last = l.Timestamp
		}
	}
	return last
}

// FormatDuration renders tracked seconds as "1h 2m 3s"
func FormatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// FormatClock renders tracked seconds as "01:02:03" for the stopwatch
func FormatClock(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
