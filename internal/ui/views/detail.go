package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mei/taskflow/internal/model"
	"github.com/mei/taskflow/internal/session"
	"github.com/mei/taskflow/internal/ui/theme"
)

// DetailView shows one task with its full activity history
type DetailView struct {
	sess   *session.Session
	taskID model.ID
	width  int
	height int
	scroll int
}

// NewDetailView opens the detail view for a task
func NewDetailView(sess *session.Session, taskID model.ID) DetailView {
	return DetailView{sess: sess, taskID: taskID}
}

// SetSize sets the view dimensions
func (v DetailView) SetSize(width, height int) DetailView {
	v.width = width
	v.height = height
	return v
}

// Update handles messages
func (v DetailView) Update(msg tea.Msg) (DetailView, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key.String() {
	case "esc", "o":
		return v, closeCmd()

	case "j", "down":
		v.scroll++

	case "k", "up":
		if v.scroll > 0 {
			v.scroll--
		}

	case "e":
		if t := v.sess.TaskByID(v.taskID); t != nil {
			task := *t
			return v, func() tea.Msg { return OpenFormMsg{Task: &task} }
		}

	case "d":
		t := v.sess.TaskByID(v.taskID)
		if t == nil {
			return v, closeCmd()
		}
		title := t.Title
		if err := v.sess.DeleteTask(v.taskID); err != nil {
			return v, errCmd(err)
		}
		return v, tea.Batch(statusCmd(fmt.Sprintf("Deleted %q", title)), closeCmd())
	}

	return v, nil
}

// View renders the detail view
func (v DetailView) View() string {
	styles := theme.Current.Styles

	task := v.sess.TaskByID(v.taskID)
	if task == nil {
		return styles.Panel.Render("Task no longer exists")
	}

	accent := lipgloss.NewStyle().Foreground(theme.TaskColor(task.Color)).Bold(true)

	var b strings.Builder
	b.WriteString(accent.Render(task.Icon + " " + task.Title))
	b.WriteString("\n")

	var meta []string
	if task.IsHabit() {
		meta = append(meta, "habit")
		if f := task.Frequency; f != nil {
			meta = append(meta, fmt.Sprintf("every %d %s", f.Value, f.Unit))
		}
	} else {
		meta = append(meta, "single")
	}
	if task.IsCompleted {
		meta = append(meta, "completed")
	}
	meta = append(meta, "created "+time.UnixMilli(task.CreatedAt).Format("Jan 2, 2006"))
	b.WriteString(styles.Label.Render(strings.Join(meta, " · ")))
	b.WriteString("\n")

	if task.Description != "" {
		b.WriteString(styles.Subtitle.Render(task.Description))
		b.WriteString("\n")
	}

	logs := model.LogsForTask(v.sess.Logs, task.ID)
	model.SortNewestFirst(logs)

	b.WriteString("\n")
	b.WriteString(styles.PanelTitle.Render(fmt.Sprintf("Activity (%d)", len(logs))))
	b.WriteString("\n")

	if len(logs) == 0 {
		b.WriteString(styles.Label.Render("(no entries)"))
		b.WriteString("\n")
	}

	visible := v.height - 12
	if visible < 3 {
		visible = len(logs)
	}
	start := v.scroll
	if start > len(logs) {
		start = len(logs)
	}
	for i := start; i < len(logs) && i < start+visible; i++ {
		l := logs[i]
		line := "• " + time.UnixMilli(l.Timestamp).Format("2006-01-02 15:04")
		if l.DurationSeconds > 0 {
			line += "  " + model.FormatDuration(l.DurationSeconds)
		}
		if l.Count > 0 || (l.Count == 0 && l.DurationSeconds == 0) {
			line += fmt.Sprintf("  ×%d", l.Count)
		}
		b.WriteString(styles.TaskNormal.Render(line))
		b.WriteString("\n")
		if l.Note != "" {
			b.WriteString(styles.Label.Render("    " + l.Note))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(
		styles.HelpKey.Render("e") + styles.HelpDesc.Render(" edit  ") +
			styles.HelpKey.Render("d") + styles.HelpDesc.Render(" delete  ") +
			styles.HelpKey.Render("j/k") + styles.HelpDesc.Render(" scroll  ") +
			styles.HelpKey.Render("esc") + styles.HelpDesc.Render(" back"))

	panel := styles.Panel.Render(b.String())
	if v.width == 0 {
		return panel
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, panel)
}
