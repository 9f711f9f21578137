package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the UI
type Theme struct {
	Name string

	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on a theme
type Styles struct {
	Header lipgloss.Style
	Footer lipgloss.Style

	TaskNormal   lipgloss.Style
	TaskSelected lipgloss.Style
	TaskDone     lipgloss.Style

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Panel      lipgloss.Style
	PanelTitle lipgloss.Style

	HelpKey       lipgloss.Style
	HelpDesc      lipgloss.Style
	HelpSeparator lipgloss.Style

	StatusInfo  lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		TaskSelected: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Background(t.Highlight).
			Padding(0, 1),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Subtitle: lipgloss.NewStyle().
			Foreground(t.Secondary),

		Label: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(1, 2),

		PanelTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Info).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		HelpSeparator: lipgloss.NewStyle().
			Foreground(t.Border),

		StatusInfo: lipgloss.NewStyle().
			Foreground(t.Info),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error),
	}
}

// Slate is the default theme
var Slate = Theme{
	Name:       "slate",
	Background: lipgloss.Color("#1e293b"),
	Foreground: lipgloss.Color("#e2e8f0"),
	Subtle:     lipgloss.Color("#64748b"),
	Highlight:  lipgloss.Color("#334155"),
	Border:     lipgloss.Color("#475569"),
	Primary:    lipgloss.Color("#3b82f6"),
	Secondary:  lipgloss.Color("#a5b4fc"),
	Success:    lipgloss.Color("#22c55e"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Info:       lipgloss.Color("#38bdf8"),
}

// Active holds the current theme and its styles
type Active struct {
	Theme  Theme
	Styles Styles
}

// Current is the active theme used by all views
var Current = Active{Theme: Slate, Styles: NewStyles(Slate)}

// taskColors maps the persisted palette tokens onto terminal colors. The
// tokens come from the original client and survive in stored data, so the
// mapping lives here rather than in the model.
var taskColors = map[string]lipgloss.Color{
	"bg-red-500":     lipgloss.Color("#ef4444"),
	"bg-orange-500":  lipgloss.Color("#f97316"),
	"bg-amber-500":   lipgloss.Color("#f59e0b"),
	"bg-green-500":   lipgloss.Color("#22c55e"),
	"bg-emerald-500": lipgloss.Color("#10b981"),
	"bg-teal-500":    lipgloss.Color("#14b8a6"),
	"bg-cyan-500":    lipgloss.Color("#06b6d4"),
	"bg-blue-500":    lipgloss.Color("#3b82f6"),
	"bg-indigo-500":  lipgloss.Color("#6366f1"),
	"bg-violet-500":  lipgloss.Color("#8b5cf6"),
	"bg-purple-500":  lipgloss.Color("#a855f7"),
	"bg-fuchsia-500": lipgloss.Color("#d946ef"),
	"bg-pink-500":    lipgloss.Color("#ec4899"),
	"bg-rose-500":    lipgloss.Color("#f43f5e"),
}

// TaskColor resolves a stored palette token to a terminal color
func TaskColor(token string) lipgloss.Color {
	if c, ok := taskColors[token]; ok {
		return c
	}
	return Current.Theme.Primary
}
