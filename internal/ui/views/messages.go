package views

import (
	"github.com/mei/taskflow/internal/model"
)

// Messages for view -> root communication

// LoginSubmitMsg carries the username entered on the login screen
type LoginSubmitMsg struct {
	Username string
}

// LogoutMsg requests ending the current user session
type LogoutMsg struct{}

// OpenFormMsg opens the task form; Task is nil for a new task
type OpenFormMsg struct {
	Task *model.Task
}

// OpenActionMsg opens the tracking modal for a task
type OpenActionMsg struct {
	TaskID model.ID
}

// OpenDetailMsg opens the detail view for a task
type OpenDetailMsg struct {
	TaskID model.ID
}

// OpenSettingsMsg opens the backup settings dialog
type OpenSettingsMsg struct{}

// CloseOverlayMsg dismisses the active dialog
type CloseOverlayMsg struct{}

// ToggleGlobalNotifMsg asks the root to flip the global reminder switch,
// which may involve probing notification support.
type ToggleGlobalNotifMsg struct{}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}
