package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/mei/taskflow/internal/model"
)

const exportTimeLayout = "2006-01-02 15:04:05"

// ExportFileName names the export artifact after the user and date
func ExportFileName(username string, now time.Time) string {
	return fmt.Sprintf("taskflow_%s_export_%s.txt", username, now.Format("2006-01-02"))
}

// ExportText renders a plain-text report for the selected tasks: one block
// per task, logs newest-first. Every log line carries at least one metric:
// duration when tracked, count when positive or when both metrics are zero.
func (s *Session) ExportText(ids []model.ID, now time.Time) string {
	selected := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		selected[id.String()] = struct{}{}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "TaskFlow export report (%s) - %s\n\n", s.Username, now.Format(exportTimeLayout))

	for _, t := range s.Tasks {
		if _, ok := selected[t.ID.String()]; !ok {
			continue
		}

		b.WriteString("========================================\n")
		fmt.Fprintf(&b, "Task: %s\n", t.Title)
		fmt.Fprintf(&b, "Type: %s\n", taskTypeLabel(t.Type))
		desc := t.Description
		if desc == "" {
			desc = "none"
		}
		fmt.Fprintf(&b, "Description: %s\n", desc)

		logs := model.LogsForTask(s.Logs, t.ID)
		model.SortNewestFirst(logs)
		fmt.Fprintf(&b, "\nActivity log (%d entries):\n", len(logs))

		if len(logs) == 0 {
			b.WriteString("  (no entries)\n")
		}
		for _, l := range logs {
			when := time.UnixMilli(l.Timestamp).Format(exportTimeLayout)
			fmt.Fprintf(&b, "  - [%s] ", when)

			var parts []string
			if l.DurationSeconds > 0 {
				parts = append(parts, "Duration: "+model.FormatDuration(l.DurationSeconds))
			}
			if l.Count > 0 || (l.Count == 0 && l.DurationSeconds == 0) {
				parts = append(parts, fmt.Sprintf("Count: %d", l.Count))
			}
			b.WriteString(strings.Join(parts, ", "))

			if l.Note != "" {
				b.WriteString("\n    Note: " + l.Note)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func taskTypeLabel(t model.TaskType) string {
	if t == model.TypeHabit {
		return "habit"
	}
	return "single"
}
