package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mei/taskflow/internal/app"
	"github.com/mei/taskflow/internal/reminder"
	"github.com/mei/taskflow/internal/session"
	"github.com/mei/taskflow/internal/ui/theme"
	"github.com/mei/taskflow/internal/ui/views"
)

type screen int

const (
	screenLogin screen = iota
	screenDashboard
)

type overlay int

const (
	overlayNone overlay = iota
	overlayForm
	overlayAction
	overlayDetail
	overlaySettings
)

// ReminderTickMsg drives the periodic reminder check. Seq identifies the
// login session that armed the tick, so a tick from before a logout or
// user switch is recognized as stale and dropped.
type ReminderTickMsg struct {
	Seq int
}

func reminderTickCmd(seq int) tea.Cmd {
	return tea.Tick(reminder.CheckInterval, func(time.Time) tea.Msg {
		return ReminderTickMsg{Seq: seq}
	})
}

// RootModel is the main application model that manages screens and overlays
type RootModel struct {
	app    *app.App
	sess   *session.Session
	keys   KeyMap
	width  int
	height int

	screen  screen
	overlay overlay

	login    views.LoginView
	dash     views.DashboardView
	form     views.FormView
	action   views.ActionView
	detail   views.DetailView
	settings views.SettingsView

	tickSeq int

	statusMsg string
	errorMsg  string
}

// NewRootModel creates the root model, restoring the persisted user
// session when one exists.
func NewRootModel(application *app.App) RootModel {
	m := RootModel{
		app:    application,
		keys:   DefaultKeyMap(),
		screen: screenLogin,
		login:  views.NewLoginView(),
	}

	if username, ok, err := application.DB.CurrentUser(); err == nil && ok && username != "" {
		if sess, err := session.Open(application.DB, username); err == nil {
			m.sess = sess
			m.dash = views.NewDashboardView(sess)
			m.screen = screenDashboard
		}
	}

	return m
}

// Init starts the reminder loop when a session was restored
func (m RootModel) Init() tea.Cmd {
	if m.sess != nil {
		return reminderTickCmd(m.tickSeq)
	}
	return nil
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4
		m.login = m.login.SetSize(m.width, m.height)
		m.dash = m.dash.SetSize(m.width, contentHeight)
		m.form = m.form.SetSize(m.width, contentHeight)
		m.action = m.action.SetSize(m.width, contentHeight)
		m.detail = m.detail.SetSize(m.width, contentHeight)
		m.settings = m.settings.SetSize(m.width, contentHeight)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.errorMsg = ""

		if key.Matches(msg, m.keys.Quit) {
			// ctrl+c always quits; 'q' only where it cannot be typed text
			if msg.String() == "ctrl+c" ||
				(m.screen == screenDashboard && m.overlay == overlayNone) {
				return m, tea.Quit
			}
		}

	case ReminderTickMsg:
		if m.sess == nil || msg.Seq != m.tickSeq {
			return m, nil
		}
		return m, m.runReminderCheck()

	case views.LoginSubmitMsg:
		sess, err := session.Open(m.app.DB, msg.Username)
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		if err := m.app.DB.SetCurrentUser(msg.Username); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.sess = sess
		m.dash = views.NewDashboardView(sess).SetSize(m.width, m.height-4)
		m.screen = screenDashboard
		m.overlay = overlayNone
		m.tickSeq++
		return m, reminderTickCmd(m.tickSeq)

	case views.LogoutMsg:
		if err := m.app.DB.ClearCurrentUser(); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		// Bumping the sequence orphans the in-flight tick
		m.tickSeq++
		m.sess = nil
		m.screen = screenLogin
		m.overlay = overlayNone
		m.login = m.login.Reset()
		return m, nil

	case views.OpenFormMsg:
		m.form = views.NewFormView(m.sess, msg.Task).SetSize(m.width, m.height-4)
		m.overlay = overlayForm
		return m, nil

	case views.OpenActionMsg:
		m.action = views.NewActionView(m.sess, msg.TaskID).SetSize(m.width, m.height-4)
		m.overlay = overlayAction
		return m, nil

	case views.OpenDetailMsg:
		m.detail = views.NewDetailView(m.sess, msg.TaskID).SetSize(m.width, m.height-4)
		m.overlay = overlayDetail
		return m, nil

	case views.OpenSettingsMsg:
		m.settings = views.NewSettingsView(m.sess).SetSize(m.width, m.height-4)
		m.overlay = overlaySettings
		return m, nil

	case views.CloseOverlayMsg:
		m.overlay = overlayNone
		return m, nil

	case views.ToggleGlobalNotifMsg:
		m.toggleGlobalNotifications()
		return m, nil

	case views.ErrorMsg:
		m.errorMsg = msg.Err.Error()
		return m, nil

	case views.StatusMsg:
		m.statusMsg = msg.Message
		return m, nil
	}

	return m.delegate(msg)
}

// delegate routes a message to whichever view currently has focus
func (m RootModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.screen == screenLogin {
		m.login, cmd = m.login.Update(msg)
		return m, cmd
	}

	switch m.overlay {
	case overlayForm:
		m.form, cmd = m.form.Update(msg)
	case overlayAction:
		m.action, cmd = m.action.Update(msg)
	case overlayDetail:
		m.detail, cmd = m.detail.Update(msg)
	case overlaySettings:
		m.settings, cmd = m.settings.Update(msg)
	default:
		m.dash, cmd = m.dash.Update(msg)
	}
	return m, cmd
}

// runReminderCheck evaluates due reminders against the live collections,
// persists the notification stamps and re-arms the tick for this session.
func (m *RootModel) runReminderCheck() tea.Cmd {
	prefs := reminder.Prefs{
		GlobalEnabled:     m.sess.GlobalNotifications,
		PermissionGranted: m.app.Notifier.Available(),
	}

	tasks, fires := reminder.Evaluate(time.Now(), m.sess.Tasks, m.sess.Logs, prefs)
	if len(fires) > 0 {
		if err := m.sess.ApplyReminders(tasks); err != nil {
			m.errorMsg = err.Error()
		}
		for _, f := range fires {
			// Delivery failures are not worth interrupting the user for
			_ = m.app.Notifier.SendTaskReminder(f.Task)
		}
	}

	return reminderTickCmd(m.tickSeq)
}

// toggleGlobalNotifications flips the per-user reminder switch. Turning
// it on requires a working notification path; without one the switch is
// forced off so the stored state never promises reminders that cannot be
// delivered.
func (m *RootModel) toggleGlobalNotifications() {
	if m.sess == nil {
		return
	}

	if m.sess.GlobalNotifications {
		if err := m.sess.SetGlobalNotifications(false); err != nil {
			m.errorMsg = err.Error()
			return
		}
		m.statusMsg = "Reminders are off"
		return
	}

	if !m.app.Notifier.Available() {
		if err := m.sess.SetGlobalNotifications(false); err != nil {
			m.errorMsg = err.Error()
			return
		}
		m.errorMsg = "Cannot enable reminders: notify-send was not found on this system"
		return
	}

	if err := m.sess.SetGlobalNotifications(true); err != nil {
		m.errorMsg = err.Error()
		return
	}
	_ = m.app.Notifier.SendRemindersEnabled()
	m.statusMsg = "Reminders are on"
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.screen == screenLogin {
		return m.login.View()
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	contentHeight := m.height - 4
	var content string
	switch m.overlay {
	case overlayForm:
		content = m.form.View()
	case overlayAction:
		content = m.action.View()
	case overlayDetail:
		content = m.detail.View()
	case overlaySettings:
		content = m.settings.View()
	default:
		content = m.dash.View()
	}

	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content)

	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("taskflow")

	userStyle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	user := userStyle.Render("@" + m.sess.Username)

	bell := "🔕 reminders off"
	if m.sess.GlobalNotifications {
		bell = "🔔 reminders on"
	}
	rightSide := userStyle.Render(bell)

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, user)

	gap := m.width - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if gap < 0 {
		gap = 0
	}

	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderFooter renders the status line and the key hints for the dashboard.
// Overlays carry their own hints inside their panels.
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	hint := func(b key.Binding) string {
		h := b.Help()
		return styles.HelpKey.Render(h.Key) + styles.HelpDesc.Render(" "+h.Desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	if m.overlay == overlayNone {
		line1 = hint(m.keys.Add) + sep +
			hint(m.keys.Open) + sep +
			hint(m.keys.Edit) + sep +
			hint(m.keys.Detail) + sep +
			hint(m.keys.Delete) + sep +
			hint(m.keys.MultiSelect)
		line2 = hint(m.keys.Export) + sep +
			hint(m.keys.TaskBell) + sep +
			hint(m.keys.GlobalBell) + sep +
			hint(m.keys.Settings) + sep +
			hint(m.keys.Logout) + sep +
			hint(m.keys.Quit)
	}

	var lines []string
	if statusLine != "" {
		lines = append(lines, statusLine)
	}
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}

	return strings.Join(lines, "\n")
}
