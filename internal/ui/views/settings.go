package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mei/taskflow/internal/gist"
	"github.com/mei/taskflow/internal/session"
	"github.com/mei/taskflow/internal/ui/theme"
)

// Settings focus targets
const (
	settingsFieldToken = iota
	settingsFieldGistID
	settingsFieldUpload
	settingsFieldLoad
	settingsFieldCount
)

// SettingsView is the backup dialog: a personal access token and a gist
// id, with explicit save/upload and load actions. Nothing here runs
// automatically.
type SettingsView struct {
	sess   *session.Session
	width  int
	height int

	token  textinput.Model
	gistID textinput.Model
	focus  int

	busy      bool
	statusMsg string
	errorMsg  string
}

type syncDoneMsg struct {
	gistID string
	err    error
}

type loadDoneMsg struct {
	backup *gist.Backup
	err    error
}

// NewSettingsView opens the backup dialog with stored credentials
func NewSettingsView(sess *session.Session) SettingsView {
	token := textinput.New()
	token.Placeholder = "ghp_xxxxxxxxxxxx"
	token.EchoMode = textinput.EchoPassword
	token.CharLimit = 120
	token.Width = 40
	token.Focus()

	gistID := textinput.New()
	gistID.Placeholder = "created on first upload"
	gistID.CharLimit = 64
	gistID.Width = 40

	if t, g, err := sess.Credentials(); err == nil {
		token.SetValue(t)
		gistID.SetValue(g)
	}

	return SettingsView{
		sess:   sess,
		token:  token,
		gistID: gistID,
	}
}

// SetSize sets the view dimensions
func (v SettingsView) SetSize(width, height int) SettingsView {
	v.width = width
	v.height = height
	return v
}

func (v *SettingsView) setFocus(target int) {
	v.focus = target
	v.token.Blur()
	v.gistID.Blur()
	switch target {
	case settingsFieldToken:
		v.token.Focus()
	case settingsFieldGistID:
		v.gistID.Focus()
	}
}

func (v *SettingsView) saveCredentials() {
	// Credential persistence is best effort; the action itself reports
	// the meaningful failures
	_ = v.sess.SaveCredentials(strings.TrimSpace(v.token.Value()), strings.TrimSpace(v.gistID.Value()))
}

func (v SettingsView) uploadCmd() tea.Cmd {
	token := strings.TrimSpace(v.token.Value())
	gistID := strings.TrimSpace(v.gistID.Value())
	username := v.sess.Username
	tasks := v.sess.Tasks
	logs := v.sess.Logs
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		client := gist.NewClient(token)
		id, err := client.Upload(ctx, gistID, username, tasks, logs)
		return syncDoneMsg{gistID: id, err: err}
	}
}

func (v SettingsView) loadCmd() tea.Cmd {
	token := strings.TrimSpace(v.token.Value())
	gistID := strings.TrimSpace(v.gistID.Value())
	username := v.sess.Username
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		client := gist.NewClient(token)
		backup, err := client.Download(ctx, gistID, username)
		return loadDoneMsg{backup: backup, err: err}
	}
}

// Update handles messages
func (v SettingsView) Update(msg tea.Msg) (SettingsView, tea.Cmd) {
	switch msg := msg.(type) {
	case syncDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.errorMsg = "Sync failed. Check the token's gist scope and your connection."
			return v, nil
		}
		v.gistID.SetValue(msg.gistID)
		v.saveCredentials()
		v.statusMsg = "Saved. Data synced to gist " + msg.gistID
		return v, nil

	case loadDoneMsg:
		v.busy = false
		if msg.err != nil {
			v.errorMsg = "Read failed. Check the gist id."
			return v, nil
		}
		if err := v.sess.Import(msg.backup.Tasks, msg.backup.Logs); err != nil {
			return v, errCmd(err)
		}
		v.statusMsg = fmt.Sprintf("Loaded %d tasks and %d logs", len(msg.backup.Tasks), len(msg.backup.Logs))
		return v, nil

	case tea.KeyMsg:
		if v.busy {
			// In-flight requests finish on their own; esc just walks away
			if msg.String() == "esc" {
				return v, closeCmd()
			}
			return v, nil
		}

		switch msg.String() {
		case "esc":
			v.saveCredentials()
			return v, closeCmd()

		case "tab", "down":
			v.setFocus((v.focus + 1) % settingsFieldCount)
			return v, nil

		case "shift+tab", "up":
			v.setFocus((v.focus + settingsFieldCount - 1) % settingsFieldCount)
			return v, nil

		case "enter":
			switch v.focus {
			case settingsFieldUpload:
				if strings.TrimSpace(v.token.Value()) == "" {
					v.errorMsg = "A GitHub token is required"
					return v, nil
				}
				v.saveCredentials()
				v.busy = true
				v.statusMsg = ""
				v.errorMsg = ""
				return v, v.uploadCmd()

			case settingsFieldLoad:
				if strings.TrimSpace(v.token.Value()) == "" || strings.TrimSpace(v.gistID.Value()) == "" {
					v.errorMsg = "A token and a gist id are required"
					return v, nil
				}
				v.saveCredentials()
				v.busy = true
				v.statusMsg = ""
				v.errorMsg = ""
				return v, v.loadCmd()

			default:
				v.setFocus((v.focus + 1) % settingsFieldCount)
				return v, nil
			}
		}

		var cmd tea.Cmd
		switch v.focus {
		case settingsFieldToken:
			v.token, cmd = v.token.Update(msg)
		case settingsFieldGistID:
			v.gistID, cmd = v.gistID.Update(msg)
		}
		return v, cmd
	}

	return v, nil
}

// View renders the backup dialog
func (v SettingsView) View() string {
	styles := theme.Current.Styles

	button := func(field int, label string) string {
		style := styles.Input
		if v.focus == field {
			style = styles.InputFocused
		}
		return style.Render("[ " + label + " ]")
	}

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Cloud backup (" + v.sess.Username + ")"))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("Backs up tasks and logs to a private GitHub gist."))
	b.WriteString("\n")
	b.WriteString(styles.Label.Render("The token needs the gist scope."))
	b.WriteString("\n\n")

	b.WriteString(styles.Label.Render("GitHub token"))
	b.WriteString("\n" + v.token.View() + "\n\n")

	b.WriteString(styles.Label.Render("Gist id"))
	b.WriteString("\n" + v.gistID.View() + "\n\n")

	b.WriteString(button(settingsFieldUpload, "Save / upload"))
	b.WriteString("  ")
	b.WriteString(button(settingsFieldLoad, "Load data"))
	b.WriteString("\n\n")

	switch {
	case v.busy:
		b.WriteString(styles.StatusInfo.Render("Working..."))
		b.WriteString("\n")
	case v.errorMsg != "":
		b.WriteString(styles.StatusError.Render(v.errorMsg))
		b.WriteString("\n")
	case v.statusMsg != "":
		b.WriteString(styles.StatusInfo.Render(v.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(
		styles.HelpKey.Render("tab") + styles.HelpDesc.Render(" next field  ") +
			styles.HelpKey.Render("enter") + styles.HelpDesc.Render(" activate  ") +
			styles.HelpKey.Render("esc") + styles.HelpDesc.Render(" close"))

	panel := styles.Panel.Render(b.String())
	if v.width == 0 {
		return panel
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, panel)
}
