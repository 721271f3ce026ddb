package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the TUI.
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Tab      key.Binding
	Complete key.Binding
	Add      key.Binding
	Subtask  key.Binding
	Schedule key.Binding
	Migrate  key.Binding
	Delete   key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default key bindings.
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
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "daily / all"),
		),
		Complete: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "complete"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add entry"),
		),
		Subtask: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add subtask"),
		),
		Schedule: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "schedule"),
		),
		Migrate: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "migrate open tasks"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the footer help text.
func (k KeyMap) ShortHelp() string {
	return "↑↓ nav  tab daily/all  space complete  a add  A subtask  s schedule  m migrate  d delete  ? help"
}

// FullHelp returns all key bindings for the help modal.
func (k KeyMap) FullHelp() [][]string {
	return [][]string{
		{"↑/k", "Move up"},
		{"↓/j", "Move down"},
		{"tab", "Switch between today and all entries"},
		{"space/x", "Mark complete"},
		{"a", "Add entry (end with task/note/event to set kind)"},
		{"A", "Add subtask under selected entry"},
		{"s", "Schedule selected entry (YYYYMMDD)"},
		{"m", "Move open tasks to today"},
		{"d", "Delete entry (with confirmation)"},
		{"R", "Reload from disk"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
}
