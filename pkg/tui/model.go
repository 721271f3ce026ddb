// Package tui is the interactive daily view.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/stefanpenner/bujo/pkg/store"
)

// FileChangedMsg is sent when the file watcher detects changes.
type FileChangedMsg struct{}

type inputMode int

const (
	inputNone inputMode = iota
	inputAdd
	inputSubtask
	inputSchedule
)

// Model is the Bubble Tea model for the journal TUI.
type Model struct {
	store   *store.Store
	keys    KeyMap
	width   int
	height  int
	journal *store.Journal
	items   []ListItem
	cursor  int
	showAll bool

	// Modal state
	showHelpModal     bool
	showDeleteConfirm bool
	deleteTarget      *store.Record

	// Input mode (add, subtask, schedule)
	input       inputMode
	textInput   textinput.Model
	inputTarget *store.Record

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model and loads the journal.
func NewModel(s *store.Store) Model {
	ti := textinput.New()
	ti.CharLimit = 256

	m := Model{
		store:     s,
		keys:      DefaultKeyMap(),
		textInput: ti,
	}
	m.reload()
	return m
}

// Run opens the TUI on s and blocks until the user quits.
func Run(s *store.Store) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())

	cleanup, err := StartWatcher(s.Root, p)
	if err != nil {
		slog.Warn("file watcher failed", "error", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		_, rightWidth := panelWidths(msg.Width)
		m.getGlamourRenderer(rightWidth - 2)
		m.reload()
		return m, tea.ClearScreen

	case FileChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.input != inputNone {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.input != inputNone {
		return m.handleInput(msg)
	}

	if m.showHelpModal {
		switch msg.String() {
		case "esc", "enter", "?", "q":
			m.showHelpModal = false
		}
		return m, nil
	}

	if m.showDeleteConfirm {
		switch msg.String() {
		case "y", "Y":
			target := m.deleteTarget
			if m.mutate(func(j *store.Journal) error { return j.Delete(target.Key) }) {
				m.setStatus("Deleted: " + target.Content)
			}
			m.showDeleteConfirm = false
			m.deleteTarget = nil
		case "n", "N", "esc":
			m.showDeleteConfirm = false
			m.deleteTarget = nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Tab):
		uuid := m.selectedUUID()
		m.showAll = !m.showAll
		m.rebuildItems()
		m.moveCursorTo(uuid)

	case key.Matches(msg, m.keys.Complete):
		r := m.selected()
		if r == nil {
			break
		}
		if r.Complete {
			m.setStatus("Already complete")
			break
		}
		if m.mutate(func(j *store.Journal) error {
			_, err := j.MarkComplete(r.UUID)
			return err
		}) {
			m.setStatus(store.GlyphComplete + " " + r.Content)
		}

	case key.Matches(msg, m.keys.Add):
		return m.startInput(inputAdd, nil, "entry text [task|note|event]")

	case key.Matches(msg, m.keys.Subtask):
		r := m.selectedRoot("subtasks")
		if r == nil {
			break
		}
		return m.startInput(inputSubtask, r, "subtask text [task|note|event]")

	case key.Matches(msg, m.keys.Schedule):
		r := m.selectedRoot("scheduling")
		if r == nil {
			break
		}
		return m.startInput(inputSchedule, r, "YYYYMMDD")

	case key.Matches(msg, m.keys.Migrate):
		var moved []*store.Record
		if m.mutate(func(j *store.Journal) error {
			moved = j.Migrate()
			return nil
		}) {
			m.setStatus(fmt.Sprintf("Migrated %d open tasks to today", len(moved)))
		}

	case key.Matches(msg, m.keys.Delete):
		r := m.selectedRoot("deleting")
		if r == nil {
			break
		}
		m.deleteTarget = r
		m.showDeleteConfirm = true

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		m.setStatus("Reloaded")

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true
	}

	return m, nil
}

func (m Model) startInput(mode inputMode, target *store.Record, placeholder string) (tea.Model, tea.Cmd) {
	m.input = mode
	m.inputTarget = target
	m.textInput.Reset()
	m.textInput.Placeholder = placeholder
	return m, m.textInput.Focus()
}

func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input = inputNone
		m.textInput.Blur()
		return m, nil

	case tea.KeyEnter:
		value := m.textInput.Value()
		mode, target := m.input, m.inputTarget
		m.inputTarget = nil
		m.input = inputNone
		m.textInput.Blur()
		m.commitInput(mode, target, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) commitInput(mode inputMode, target *store.Record, value string) {
	switch mode {
	case inputAdd:
		content, kind := store.SplitKind(strings.Fields(value))
		var added store.Key
		if m.mutate(func(j *store.Journal) error {
			added = j.Add(content, kind)
			return nil
		}) {
			m.setStatus("Added: " + content)
			if r, ok := m.journal.Root(added); ok {
				m.moveCursorTo(r.UUID)
			}
		}

	case inputSubtask:
		content, kind := store.SplitKind(strings.Fields(value))
		var uuid string
		if m.mutate(func(j *store.Journal) error {
			child, err := j.AddSubtask(store.StableRef(target.Key), content, kind)
			if err != nil {
				return err
			}
			uuid = child.UUID
			return nil
		}) {
			m.setStatus("Added subtask: " + content)
			m.moveCursorTo(uuid)
		}

	case inputSchedule:
		date := strings.TrimSpace(value)
		if m.mutate(func(j *store.Journal) error {
			_, err := j.Schedule(store.StableRef(target.Key), date)
			return err
		}) {
			m.setStatus(target.Content + " → " + date)
		}
	}
}

// mutate runs one load, op, save cycle against the data file and then
// reloads. It reports whether the change was saved.
func (m *Model) mutate(op func(j *store.Journal) error) bool {
	j, err := m.store.Load()
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		return false
	}
	if err := op(j); err != nil {
		m.setStatus("Error: " + err.Error())
		return false
	}
	if err := m.store.Save(j); err != nil {
		m.setStatus("Save error: " + err.Error())
		return false
	}
	m.reload()
	return true
}

func (m *Model) reload() {
	uuid := m.selectedUUID()
	j, err := m.store.Load()
	if err != nil {
		m.setStatus("Load error: " + err.Error())
		return
	}
	m.journal = j
	m.rebuildItems()
	m.moveCursorTo(uuid)
}

func (m *Model) rebuildItems() {
	if m.journal == nil {
		m.items = nil
		return
	}
	m.items = BuildItems(m.journal, m.showAll)
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = len(m.items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// moveCursorTo positions the cursor on the record with the given UUID, if
// it is listed.
func (m *Model) moveCursorTo(uuid string) {
	if uuid == "" {
		return
	}
	for i, it := range m.items {
		if it.UUID == uuid {
			m.cursor = i
			return
		}
	}
}

func (m Model) selected() *store.Record {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return m.items[m.cursor].Record
}

func (m Model) selectedUUID() string {
	if r := m.selected(); r != nil {
		return r.UUID
	}
	return ""
}

// selectedRoot returns the selected record if it is a top-level entry, and
// explains otherwise.
func (m *Model) selectedRoot(action string) *store.Record {
	r := m.selected()
	if r == nil {
		return nil
	}
	if !r.IsRoot() {
		m.setStatus(action + " only applies to top-level entries")
		return nil
	}
	return r
}

// getGlamourRenderer returns a cached glamour renderer, creating one if needed
// or if the width changed.
func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}
