package views

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mei/taskflow/internal/model"
	"github.com/mei/taskflow/internal/session"
	"github.com/mei/taskflow/internal/ui/theme"
)

// DashboardView lists the user's tasks newest-first and hosts the
// selection mode for batch export and delete.
type DashboardView struct {
	sess   *session.Session
	width  int
	height int

	cursor        int
	selectionMode bool
	selected      map[string]bool
}

// NewDashboardView creates a dashboard for the given session
func NewDashboardView(sess *session.Session) DashboardView {
	return DashboardView{
		sess:     sess,
		selected: make(map[string]bool),
	}
}

// SetSize sets the view dimensions
func (v DashboardView) SetSize(width, height int) DashboardView {
	v.width = width
	v.height = height
	return v
}

// ClearReference drops any selection state referencing a deleted task.
// Leaving a stale id here would resurface it the next time selection mode
// opens.
func (v DashboardView) ClearReference(id model.ID) DashboardView {
	delete(v.selected, id.String())
	v.clampCursor()
	return v
}

func (v *DashboardView) clampCursor() {
	if v.cursor >= len(v.sess.Tasks) {
		v.cursor = len(v.sess.Tasks) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v DashboardView) currentTask() *model.Task {
	if len(v.sess.Tasks) == 0 || v.cursor >= len(v.sess.Tasks) {
		return nil
	}
	return &v.sess.Tasks[v.cursor]
}

func (v DashboardView) selectedIDs() []model.ID {
	// Preserve display order
	var ids []model.ID
	for _, t := range v.sess.Tasks {
		if v.selected[t.ID.String()] {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// Update handles messages
func (v DashboardView) Update(msg tea.Msg) (DashboardView, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch key.String() {
	case "j", "down":
		if v.cursor < len(v.sess.Tasks)-1 {
			v.cursor++
		}

	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}

	case "g":
		v.cursor = 0

	case "G":
		if len(v.sess.Tasks) > 0 {
			v.cursor = len(v.sess.Tasks) - 1
		}

	case "v":
		v.selectionMode = !v.selectionMode
		if !v.selectionMode {
			v.selected = make(map[string]bool)
		}

	case "V":
		v.selectionMode = true
		for _, t := range v.sess.Tasks {
			v.selected[t.ID.String()] = true
		}

	case " ":
		if v.selectionMode {
			if t := v.currentTask(); t != nil {
				id := t.ID.String()
				if v.selected[id] {
					delete(v.selected, id)
				} else {
					v.selected[id] = true
				}
			}
		}

	case "enter":
		// Tap routing: selection toggle, tracking flow, or plain toggle
		t := v.currentTask()
		if t == nil {
			return v, nil
		}
		if v.selectionMode {
			id := t.ID.String()
			if v.selected[id] {
				delete(v.selected, id)
			} else {
				v.selected[id] = true
			}
			return v, nil
		}
		if t.NeedsTracking {
			id := t.ID
			return v, func() tea.Msg { return OpenActionMsg{TaskID: id} }
		}
		if err := v.sess.ToggleCompletion(t.ID); err != nil {
			return v, errCmd(err)
		}

	case "a":
		return v, func() tea.Msg { return OpenFormMsg{Task: nil} }

	case "e":
		if t := v.currentTask(); t != nil {
			task := *t
			return v, func() tea.Msg { return OpenFormMsg{Task: &task} }
		}

	case "o":
		if t := v.currentTask(); t != nil {
			id := t.ID
			return v, func() tea.Msg { return OpenDetailMsg{TaskID: id} }
		}

	case "d":
		if t := v.currentTask(); t != nil {
			title := t.Title
			if err := v.sess.DeleteTask(t.ID); err != nil {
				return v, errCmd(err)
			}
			v = v.ClearReference(t.ID)
			return v, statusCmd(fmt.Sprintf("Deleted %q", title))
		}

	case "D":
		if !v.selectionMode {
			return v, nil
		}
		ids := v.selectedIDs()
		if len(ids) == 0 {
			return v, nil
		}
		if err := v.sess.BatchDelete(ids); err != nil {
			return v, errCmd(err)
		}
		v.selected = make(map[string]bool)
		v.selectionMode = false
		v.clampCursor()
		return v, statusCmd(fmt.Sprintf("Deleted %d tasks", len(ids)))

	case "x":
		if !v.selectionMode {
			return v, nil
		}
		ids := v.selectedIDs()
		if len(ids) == 0 {
			return v, nil
		}
		now := time.Now()
		name := session.ExportFileName(v.sess.Username, now)
		content := v.sess.ExportText(ids, now)
		if err := os.WriteFile(name, []byte(content), 0644); err != nil {
			return v, errCmd(fmt.Errorf("export failed: %w", err))
		}
		v.selected = make(map[string]bool)
		v.selectionMode = false
		return v, statusCmd("Exported to " + name)

	case "n":
		if t := v.currentTask(); t != nil {
			if err := v.sess.ToggleNotification(t.ID); err != nil {
				return v, errCmd(err)
			}
		}

	case "N":
		return v, func() tea.Msg { return ToggleGlobalNotifMsg{} }

	case "s":
		return v, func() tea.Msg { return OpenSettingsMsg{} }

	case "ctrl+l":
		return v, func() tea.Msg { return LogoutMsg{} }

	case "esc":
		if v.selectionMode {
			v.selectionMode = false
			v.selected = make(map[string]bool)
		}
	}

	return v, nil
}

// View renders the task list
func (v DashboardView) View() string {
	styles := theme.Current.Styles

	if len(v.sess.Tasks) == 0 {
		empty := styles.Subtitle.Render(fmt.Sprintf("Welcome, %s", v.sess.Username)) + "\n\n" +
			styles.Label.Render("Nothing here yet. Press 'a' to create your first task.")
		return styles.Panel.Render(empty)
	}

	var b strings.Builder
	if v.selectionMode {
		b.WriteString(styles.Title.Render(fmt.Sprintf("Selected %d", len(v.selected))))
		b.WriteString("\n\n")
	}

	visible := v.height - 4
	if visible < 1 {
		visible = len(v.sess.Tasks)
	}
	start := 0
	if v.cursor >= visible {
		start = v.cursor - visible + 1
	}

	for i := start; i < len(v.sess.Tasks) && i < start+visible; i++ {
		t := v.sess.Tasks[i]
		b.WriteString(v.renderTask(t, i == v.cursor))
		b.WriteString("\n")
	}

	return b.String()
}

func (v DashboardView) renderTask(t model.Task, focused bool) string {
	styles := theme.Current.Styles

	prefix := "  "
	if focused {
		prefix = "❯ "
	}
	if v.selectionMode {
		if v.selected[t.ID.String()] {
			prefix += "[x] "
		} else {
			prefix += "[ ] "
		}
	}

	accent := lipgloss.NewStyle().Foreground(theme.TaskColor(t.Color))

	title := t.Title
	titleStyle := styles.TaskNormal
	if t.IsCompleted {
		titleStyle = styles.TaskDone
	} else if focused {
		titleStyle = styles.TaskSelected
	}

	var meta []string
	if t.IsHabit() {
		label := "habit"
		if f := t.Frequency; f != nil {
			label += fmt.Sprintf(" · every %d %s", f.Value, f.Unit)
		}
		meta = append(meta, label)
	} else {
		meta = append(meta, "single")
	}

	logs := model.LogsForTask(v.sess.Logs, t.ID)
	if len(logs) > 0 {
		model.SortNewestFirst(logs)
		meta = append(meta, "last "+time.UnixMilli(logs[0].Timestamp).Format("Jan 2"))
	}

	bell := " "
	if t.IsHabit() && t.NotificationEnabled && !t.IsCompleted {
		bell = "🔔"
	}

	check := "○"
	if t.IsCompleted {
		check = "✓"
	} else if t.NeedsTracking {
		check = "⏱"
	}

	return prefix +
		accent.Render("▌") + " " +
		t.Icon + " " +
		titleStyle.Render(title) + "  " +
		styles.Label.Render(strings.Join(meta, " · ")) + " " +
		bell + " " + check
}

func errCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}

func statusCmd(message string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Message: message} }
}
