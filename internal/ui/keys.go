package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the dashboard keybindings
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Selection
	Select      key.Binding
	MultiSelect key.Binding
	SelectAll   key.Binding

	// Task actions
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Open       key.Binding
	Detail     key.Binding
	TaskBell   key.Binding
	GlobalBell key.Binding

	// Batch actions
	Export      key.Binding
	BatchDelete key.Binding

	// App
	Settings key.Binding
	Logout   key.Binding
	Quit     key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		MultiSelect: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "selection mode"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("V"),
			key.WithHelp("V", "select all"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "complete/track"),
		),
		Detail: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "details"),
		),
		TaskBell: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "task reminders"),
		),
		GlobalBell: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "all reminders"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export selection"),
		),
		BatchDelete: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete selection"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
