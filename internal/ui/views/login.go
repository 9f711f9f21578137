package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mei/taskflow/internal/ui/theme"
)

// LoginView is the pseudo-login screen: a free-text username picks the
// data namespace, nothing is authenticated.
type LoginView struct {
	input  textinput.Model
	width  int
	height int
}

// NewLoginView creates the login screen
func NewLoginView() LoginView {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()
	return LoginView{input: ti}
}

// SetSize sets the view dimensions
func (v LoginView) SetSize(width, height int) LoginView {
	v.width = width
	v.height = height
	return v
}

// Reset clears the input for the next login
func (v LoginView) Reset() LoginView {
	v.input.SetValue("")
	v.input.Focus()
	return v
}

// Update handles messages
func (v LoginView) Update(msg tea.Msg) (LoginView, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		username := strings.TrimSpace(v.input.Value())
		if username == "" {
			return v, nil
		}
		return v, func() tea.Msg { return LoginSubmitMsg{Username: username} }
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// View renders the login screen
func (v LoginView) View() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("TaskFlow"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Focus on your goals, manage your time"))
	b.WriteString("\n\n")
	b.WriteString(styles.Label.Render("Username / workspace id"))
	b.WriteString("\n")
	b.WriteString(v.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("The same username opens the same data space."))
	b.WriteString("\n")
	b.WriteString(styles.HelpKey.Render("enter") + styles.HelpDesc.Render(" continue  ") +
		styles.HelpKey.Render("ctrl+c") + styles.HelpDesc.Render(" quit"))

	panel := styles.Panel.Render(b.String())
	if v.width == 0 {
		return panel
	}
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, panel)
}
