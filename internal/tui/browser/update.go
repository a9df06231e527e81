package browser

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/grovetools/foldernote/pkg/gate"
	"github.com/grovetools/foldernote/pkg/models"
)

// headerLines is the number of rows drawn above the tree.
const headerLines = 2

// Update handles messages for the browser TUI.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("editor: %v", msg.err)
		}
		if err := m.reload(); err != nil {
			m.statusMessage = fmt.Sprintf("reload: %v", err)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.filtering && m.filterInput.Focused() {
			return m.handleFilterKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// 'z' fold sequences and 'gg' need a two-key lookahead.
	if m.lastKey == "z" {
		m.lastKey = ""
		switch msg.String() {
		case "a":
			m.foldCursor()
			return m, nil
		case "M":
			for path := range m.controls.folders {
				if path != "" {
					m.controls.collapsed[path] = true
				}
			}
			m.rebuildNodes()
			return m, nil
		case "R":
			m.controls.collapsed = map[string]bool{}
			m.rebuildNodes()
			return m, nil
		}
	}
	if m.lastKey == "g" {
		m.lastKey = ""
		if msg.String() == "g" {
			m.cursor = 0
			m.scrollOffset = 0
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.visibleRows() / 2)

	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.visibleRows() / 2)

	case key.Matches(msg, m.keys.GoToTop):
		m.lastKey = "g"

	case key.Matches(msg, m.keys.GoToBottom):
		m.moveCursor(len(m.nodes))

	case key.Matches(msg, m.keys.FoldPrefix):
		m.lastKey = "z"

	case key.Matches(msg, m.keys.Fold):
		m.foldCursor()

	case key.Matches(msg, m.keys.Open):
		return m.activateCursor()

	case key.Matches(msg, m.keys.ToggleMarker):
		m.toggleMarkerAtCursor()

	case key.Matches(msg, m.keys.Refresh):
		if err := m.reload(); err != nil {
			m.statusMessage = fmt.Sprintf("reload: %v", err)
		} else {
			m.statusMessage = "vault reloaded"
		}

	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.Focus()
		m.rebuildNodes()
		return m, nil
	}

	return m, nil
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filtering = false
		m.filterInput.Blur()
		m.filterInput.SetValue("")
		m.rebuildNodes()
		return m, nil
	case "enter":
		m.filterInput.Blur()
		return m.activateCursor()
	case "up", "down":
		// Let the cursor move without leaving the filter.
		if msg.String() == "up" {
			m.moveCursor(-1)
		} else {
			m.moveCursor(1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.rebuildNodes()
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return m, nil
	case msg.Button == tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	row := msg.Y - headerLines + m.scrollOffset
	if row < 0 || row >= len(m.nodes) {
		return m, nil
	}
	node := m.nodes[row]
	m.cursor = row

	if node.note != nil {
		return m, m.openInEditor(node.note.Path)
	}

	// The fold arrow occupies the two cells right after the indent;
	// everything past it is the folder title.
	arrowStart := node.depth * 2
	onArrow := msg.X >= arrowStart && msg.X < arrowStart+2
	return m.folderClick(node, onArrow)
}

// folderClick routes a click on a folder row through the interaction gate,
// then runs the host's default toggle unless a suppression lease is live.
func (m Model) folderClick(node *displayNode, onArrow bool) (tea.Model, tea.Cmd) {
	result := m.gate.HandleClick(gate.Click{ControlID: node.folder.Path, OnArrow: onArrow})

	var cmd tea.Cmd
	if path, ok := m.opener.take(); ok {
		cmd = m.openInEditor(path)
	}
	if result.Opened != nil {
		m.statusMessage = fmt.Sprintf("opened %s", result.Opened.Path)
	}

	if onArrow || !m.gate.ToggleSuppressed() {
		m.toggleFold(node.folder.Path)
	}

	return m, cmd
}

// activateCursor treats enter like a title click on folders and opens
// notes directly.
func (m Model) activateCursor() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.nodes) {
		return m, nil
	}
	node := m.nodes[m.cursor]
	if node.note != nil {
		return m, m.openInEditor(node.note.Path)
	}
	return m.folderClick(node, false)
}

// foldCursor behaves like an arrow click: it never opens a note and it is
// never suppressed.
func (m *Model) foldCursor() {
	if m.cursor >= len(m.nodes) {
		return
	}
	node := m.nodes[m.cursor]
	if node.folder == nil {
		return
	}
	m.toggleFold(node.folder.Path)
}

func (m *Model) toggleFold(path string) {
	ctrl, ok := m.controls.FindFolderControl(path)
	if !ok {
		return
	}
	ctrl.SetCollapsed(!ctrl.Collapsed())
	m.rebuildNodes()
}

func (m *Model) toggleMarkerAtCursor() {
	if m.cursor >= len(m.nodes) {
		return
	}
	node := m.nodes[m.cursor]
	if node.note == nil {
		return
	}

	var err error
	if node.note.Marker {
		err = m.svc.UnsetMarker(node.note.Path)
	} else {
		err = m.svc.SetMarker(node.note.Path)
	}
	if err != nil {
		m.statusMessage = fmt.Sprintf("marker: %v", err)
		return
	}
	if err := m.reload(); err != nil {
		m.statusMessage = fmt.Sprintf("reload: %v", err)
		return
	}
	m.statusMessage = fmt.Sprintf("toggled marker on %s", node.note.Path)
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.nodes) {
		m.cursor = len(m.nodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	rows := m.visibleRows()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+rows {
		m.scrollOffset = m.cursor - rows + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *Model) visibleRows() int {
	rows := m.height - headerLines - 2 // Status bar and help line
	if rows < 1 {
		rows = 1
	}
	return rows
}

// filteredNotes fuzzy-matches the filter input against every note path.
func (m *Model) filteredNotes() []*models.Note {
	all := m.vault.RootFolder().AllNotes()
	targets := make([]string, len(all))
	for i, note := range all {
		targets[i] = note.Path
	}

	matches := fuzzy.Find(m.filterInput.Value(), targets)
	notes := make([]*models.Note, 0, len(matches))
	for _, match := range matches {
		notes = append(notes, all[match.Index])
	}
	return notes
}
