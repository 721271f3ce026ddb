package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/bujo/pkg/view"
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(view.ColorPurple)

	HeaderCountStyle = lipgloss.NewStyle().
				Foreground(view.ColorGray)

	FooterStyle = lipgloss.NewStyle().
			Foreground(view.ColorGray)

	StatusStyle = lipgloss.NewStyle().
			Foreground(view.ColorCyan)
)

// Tab styles
var (
	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(view.ColorWhite).
			Background(view.ColorPurple).
			Padding(0, 1)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(view.ColorGray).
				Padding(0, 1)
)

// List styles
var (
	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(view.ColorWhite).
			Background(view.ColorSelectionBg)

	IDStyle = lipgloss.NewStyle().
		Foreground(view.ColorYellow)

	TaskStyle = lipgloss.NewStyle().
			Foreground(view.ColorOffWhite)

	NoteStyle = lipgloss.NewStyle().
			Foreground(view.ColorGray)

	EventStyle = lipgloss.NewStyle().
			Foreground(view.ColorCyan)

	CompleteStyle = lipgloss.NewStyle().
			Foreground(view.ColorGreen)

	DoneContentStyle = lipgloss.NewStyle().
				Foreground(view.ColorGray).
				Strikethrough(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(view.ColorGrayDim)

	DepthIndent = "  "
)

// Modal and input styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(view.ColorPurple).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(view.ColorPurple)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(view.ColorPurple).
				Bold(true)
)
