package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mei/taskflow/internal/model"
	"github.com/mei/taskflow/internal/session"
	"github.com/mei/taskflow/internal/ui/theme"
)

// ActionView is the tracking modal: a one-second stopwatch, a counter and
// a note, saved together as one activity log.
type ActionView struct {
	sess   *session.Session
	taskID model.ID
	width  int
	height int

	seconds int
	running bool
	count   int

	note        textinput.Model
	noteFocused bool

	statusMsg string
}

type actionTickMsg struct{}

func actionTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return actionTickMsg{}
	})
}

// NewActionView opens the tracking modal for a task
func NewActionView(sess *session.Session, taskID model.ID) ActionView {
	note := textinput.New()
	note.Placeholder = "add a note..."
	note.CharLimit = 200
	note.Width = 40
	return ActionView{
		sess:   sess,
		taskID: taskID,
		note:   note,
	}
}

// SetSize sets the view dimensions
func (v ActionView) SetSize(width, height int) ActionView {
	v.width = width
	v.height = height
	return v
}

func (v ActionView) task() *model.Task {
	return v.sess.TaskByID(v.taskID)
}

// Update handles messages
func (v ActionView) Update(msg tea.Msg) (ActionView, tea.Cmd) {
	switch msg := msg.(type) {
	case actionTickMsg:
		if !v.running {
			// Paused: let this tick chain die, resume starts a new one
			return v, nil
		}
		v.seconds++
		return v, actionTickCmd()

	case tea.KeyMsg:
		if v.noteFocused {
			switch msg.String() {
			case "enter", "tab", "esc":
				v.noteFocused = false
				v.note.Blur()
				return v, nil
			}
			var cmd tea.Cmd
			v.note, cmd = v.note.Update(msg)
			return v, cmd
		}

		switch msg.String() {
		case " ":
			v.running = !v.running
			if v.running {
				return v, actionTickCmd()
			}

		case "r":
			if !v.running {
				v.seconds = 0
			}

		case "+", "=", "l", "right":
			v.count++

		case "-", "h", "left":
			if v.count > 0 {
				v.count--
			}

		case "tab":
			v.noteFocused = true
			v.note.Focus()

		case "b":
			if err := v.sess.ToggleNotification(v.taskID); err != nil {
				return v, errCmd(err)
			}

		case "enter":
			task := v.task()
			if task == nil {
				return v, tea.Batch(errCmd(session.ErrTaskNotFound), closeCmd())
			}
			if _, err := v.sess.LogActivity(v.taskID, v.count, v.seconds, v.note.Value()); err != nil {
				return v, errCmd(err)
			}
			return v, tea.Batch(statusCmd(fmt.Sprintf("Logged activity for %q", task.Title)), closeCmd())

		case "esc":
			return v, closeCmd()
		}
	}

	return v, nil
}

// View renders the tracking modal
func (v ActionView) View() string {
	styles := theme.Current.Styles

	task := v.task()
	if task == nil {
		return styles.Panel.Render("Task no longer exists")
	}

	accent := lipgloss.NewStyle().Foreground(theme.TaskColor(task.Color)).Bold(true)

	var b strings.Builder
	b.WriteString(accent.Render(task.Icon + " " + task.Title))
	if task.Description != "" {
		b.WriteString("\n" + styles.Subtitle.Render(task.Description))
	}
	if task.IsHabit() {
		bell := "reminders off"
		if task.NotificationEnabled {
			bell = "reminders on"
		}
		b.WriteString("\n" + styles.Label.Render("🔔 "+bell+"  (b to toggle)"))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("TIMER"))
	b.WriteString("\n")
	clock := model.FormatClock(v.seconds)
	if v.running {
		b.WriteString(styles.Title.Render(clock) + styles.Subtitle.Render("  ● running"))
	} else {
		b.WriteString(styles.Title.Render(clock) + styles.Label.Render("  ∥ paused"))
	}
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("COUNTER"))
	b.WriteString("\n")
	b.WriteString(styles.Title.Render(fmt.Sprintf("%d", v.count)))
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("NOTE"))
	b.WriteString("\n")
	b.WriteString(v.note.View())
	b.WriteString("\n\n")

	b.WriteString(
		styles.HelpKey.Render("space") + styles.HelpDesc.Render(" start/pause  ") +
			styles.HelpKey.Render("r") + styles.HelpDesc.Render(" reset  ") +
			styles.HelpKey.Render("+/-") + styles.HelpDesc.Render(" count  ") +
			styles.HelpKey.Render("tab") + styles.HelpDesc.Render(" note  ") +
			styles.HelpKey.Render("enter") + styles.HelpDesc.Render(" save  ") +
			styles.HelpKey.Render("esc") + styles.HelpDesc.Render(" cancel"))

	panel := styles.Panel.Render(b.String())
	if v.width == 0 {
		return panel
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, panel)
}

func closeCmd() tea.Cmd {
	return func() tea.Msg { return CloseOverlayMsg{} }
}
