package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/stefanpenner/bujo/pkg/store"
	"github.com/stefanpenner/bujo/pkg/view"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	if m.showDeleteConfirm {
		return placeOverlay(m.renderDeleteModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 3
	footerLines := 2
	if m.input != inputNone {
		headerLines++
	}
	contentHeight := h - headerLines - footerLines

	if m.input != inputNone {
		b.WriteString(m.renderInput())
		b.WriteString("\n")
	}

	leftWidth, rightWidth := panelWidths(w)
	leftPanel := m.renderListPanel(leftWidth, contentHeight)
	rightPanel := m.renderDetailPanel(rightWidth, contentHeight)

	sep := lipgloss.NewStyle().Foreground(view.ColorGrayDim).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// panelWidths splits the terminal between the entry list and the detail
// pane, leaving one column for the divider.
func panelWidths(w int) (left, right int) {
	left = w * 2 / 5
	right = w - left - 1
	if left < 20 {
		left = 20
	}
	if right < 20 {
		right = 20
	}
	return left, right
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("bujo")

	var open, total int
	if m.journal != nil {
		for _, it := range m.items {
			total++
			if it.Record.IsOpen() {
				open++
			}
		}
	}
	stats := HeaderCountStyle.Render(fmt.Sprintf("%d open / %d entries", open, total))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = "  " + StatusStyle.Render(m.statusMsg)
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderTabs() string {
	today := "Today"
	if m.journal != nil {
		today += " " + m.journal.Today().Format("Mon Jan 2")
	}
	tabs := []string{today, "All"}
	active := 0
	if m.showAll {
		active = 1
	}

	var out []string
	for i, t := range tabs {
		if i == active {
			out = append(out, ActiveTabStyle.Render(t))
		} else {
			out = append(out, InactiveTabStyle.Render(t))
		}
	}
	return strings.Join(out, "")
}

func (m Model) renderInput() string {
	var prompt string
	switch m.input {
	case inputAdd:
		prompt = "add › "
	case inputSubtask:
		prompt = "subtask of " + m.inputTarget.Content + " › "
	case inputSchedule:
		prompt = "schedule " + m.inputTarget.Content + " › "
	}
	return InputPromptStyle.Render(prompt) + m.textInput.View()
}

func (m Model) renderListPanel(width, height int) string {
	var lines []string

	// Reserve last line for the data path
	listHeight := height - 1
	if listHeight < 1 {
		listHeight = 1
	}

	if len(m.items) == 0 {
		if m.showAll {
			lines = append(lines, FooterStyle.Render(" Journal is empty. Press 'a' to add."))
		} else {
			lines = append(lines, FooterStyle.Render(" Nothing scheduled for today."))
		}
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.items)
	if len(m.items) > listHeight {
		startIdx = m.cursor - listHeight/2
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + listHeight
		if endIdx > len(m.items) {
			endIdx = len(m.items)
			startIdx = max(endIdx-listHeight, 0)
		}
	}

	lw := labelWidth(m.items)
	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, m.renderItem(m.items[i], lw, i == m.cursor, width))
	}

	for len(lines) < listHeight {
		lines = append(lines, "")
	}

	pathLine := DimStyle.Render(fileHyperlink(m.store.DataPath()))
	lines = append(lines, pathLine)

	return strings.Join(lines, "\n")
}

func (m Model) renderItem(item ListItem, lw int, isSelected bool, width int) string {
	r := item.Record
	indent := strings.Repeat(DepthIndent, item.Depth)
	id := fmt.Sprintf("%*s", lw, item.Label)
	glyph := r.Signifier()

	if isSelected {
		line := " " + id + " " + indent + glyph + " " + r.Content
		if pad := width - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return SelectedStyle.Render(line)
	}

	content := r.Content
	switch {
	case r.Complete:
		glyph = CompleteStyle.Render(glyph)
		content = DoneContentStyle.Render(content)
	case r.Kind == store.KindNote:
		glyph = NoteStyle.Render(glyph)
		content = NoteStyle.Render(content)
	case r.Kind == store.KindEvent:
		glyph = EventStyle.Render(glyph)
		content = EventStyle.Render(content)
	default:
		glyph = TaskStyle.Render(glyph)
		content = TaskStyle.Render(content)
	}

	return " " + IDStyle.Render(id) + " " + indent + glyph + " " + content
}

func (m Model) renderDetailPanel(width, height int) string {
	r := m.selected()
	if r == nil {
		return FooterStyle.Render(" Select an entry to see its details")
	}

	md := m.recordMarkdown(r)

	rendered := md
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			rendered = out
		}
	}

	rendered = strings.TrimRight(rendered, "\n ")
	lines := strings.Split(rendered, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// recordMarkdown describes a record for the detail pane.
func (m Model) recordMarkdown(r *store.Record) string {
	var md strings.Builder

	md.WriteString("# " + r.Signifier() + " " + r.Content + "\n\n")

	status := "open"
	if r.Complete {
		status = "complete"
	}
	meta := []string{"**Kind:** " + r.Kind.String(), "**Status:** " + status}
	if r.DailyID > 0 {
		meta = append(meta, fmt.Sprintf("**Today:** #%d", r.DailyID))
	}
	md.WriteString(strings.Join(meta, " | ") + "\n\n")

	if r.IsRoot() {
		md.WriteString(fmt.Sprintf("- **Key:** %d\n", r.Key))
	} else {
		parent := m.journal.Node(r.Parent)
		md.WriteString(fmt.Sprintf("- **Subtask:** %d of %s\n", r.LocalKey, parent.Content))
	}
	md.WriteString("- **Scheduled:** " + r.EffectiveDate.Format("Monday, January 2 2006") + "\n")
	md.WriteString("- **Created:** " + r.CreatedAt.Format("2006-01-02 15:04") + "\n")
	md.WriteString("- **UUID:** `" + r.UUID + "`\n")

	children := m.journal.Children(r)
	if len(children) > 0 {
		md.WriteString("\n## Subtasks\n\n")
		for _, c := range children {
			box := "[ ]"
			if c.Complete {
				box = "[x]"
			}
			md.WriteString(fmt.Sprintf("- %s %s %s\n", box, c.Kind.Glyph(), c.Content))
		}
	}

	return md.String()
}

func (m Model) renderFooter() string {
	help := m.keys.ShortHelp()
	if m.input != inputNone {
		help = "enter confirm  esc cancel"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(view.ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(view.ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderDeleteModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Delete Entry"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Delete '%s' and all subtasks?\n\n", m.deleteTarget.Content)
	b.WriteString(lipgloss.NewStyle().Foreground(view.ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(view.ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
