package notify

import (
	"os/exec"
	"strconv"
	"time"

	"github.com/mei/taskflow/internal/model"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
	Tag     string // Repeat notifications with the same tag replace each other
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier
func NewNotifier() *Notifier {
	return &Notifier{
		enabled: true,
	}
}

// SetEnabled enables or disables notifications
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Available reports whether the host can deliver notifications at all.
// This is the closest desktop analog to a granted notification permission.
func (n *Notifier) Available() bool {
	_, err := exec.LookPath("notify-send")
	return err == nil
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	args := []string{}

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	// Timeout in milliseconds
	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}

	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	// Tagged notifications replace the pending one with the same tag
	if notification.Tag != "" {
		args = append(args, "-h", "string:x-canonical-private-synchronous:"+notification.Tag)
	}

	args = append(args, "-a", "taskflow")

	args = append(args, notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	cmd := exec.Command("notify-send", args...)
	return cmd.Run()
}

// SendTaskReminder sends a due reminder for a habit task, tagged by task
// id so repeats collapse instead of stacking.
func (n *Notifier) SendTaskReminder(task model.Task) error {
	return n.Send(Notification{
		Title:   "Time to act: " + task.Title,
		Body:    "It has been a while since the last activity. Keep going!",
		Urgency: UrgencyNormal,
		Timeout: 15 * time.Second,
		Icon:    "appointment-soon-symbolic",
		Tag:     "task-" + task.ID.String(),
	})
}

// SendRemindersEnabled confirms that reminders were just switched on
func (n *Notifier) SendRemindersEnabled() error {
	return n.Send(Notification{
		Title:   "TaskFlow",
		Body:    "Reminders are on. You will be notified on schedule.",
		Urgency: UrgencyNormal,
		Timeout: 5 * time.Second,
	})
}
