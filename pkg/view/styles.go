package view

import "github.com/charmbracelet/lipgloss"

// Color palette shared with the TUI.
var (
	ColorPurple      = lipgloss.Color("#7D56F4")
	ColorGreen       = lipgloss.Color("#25A065")
	ColorBlue        = lipgloss.Color("#4285F4")
	ColorRed         = lipgloss.Color("#E05252")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorGray        = lipgloss.Color("#626262")
	ColorGrayDim     = lipgloss.Color("#404040")
	ColorWhite       = lipgloss.Color("#FFFFFF")
	ColorOffWhite    = lipgloss.Color("#D0D0D0")
	ColorCyan        = lipgloss.Color("#56B6C2")
	ColorSelectionBg = lipgloss.Color("#2D3B4D")
)

type styles struct {
	border   lipgloss.Style
	title    lipgloss.Style
	key      lipgloss.Style
	date     lipgloss.Style
	task     lipgloss.Style
	note     lipgloss.Style
	event    lipgloss.Style
	complete lipgloss.Style
	done     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		border:   r.NewStyle().Foreground(ColorGray),
		title:    r.NewStyle().Bold(true).Foreground(ColorPurple),
		key:      r.NewStyle().Foreground(ColorYellow),
		date:     r.NewStyle().Foreground(ColorGray),
		task:     r.NewStyle().Foreground(ColorOffWhite),
		note:     r.NewStyle().Foreground(ColorGray),
		event:    r.NewStyle().Foreground(ColorCyan),
		complete: r.NewStyle().Foreground(ColorGreen),
		done:     r.NewStyle().Foreground(ColorGray).Strikethrough(true),
	}
}
